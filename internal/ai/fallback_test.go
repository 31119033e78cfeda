package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

type scriptedReply struct {
	text string
	err  error
}

// scriptedGenerator answers per model name and records the call order.
type scriptedGenerator struct {
	replies map[string]scriptedReply
	calls   []string
}

func (g *scriptedGenerator) GenerateText(_ context.Context, model, _ string) (string, error) {
	g.calls = append(g.calls, model)
	r := g.replies[model]
	return r.text, r.err
}

func TestFallbackEngine_PrimarySucceeds(t *testing.T) {
	gen := &scriptedGenerator{replies: map[string]scriptedReply{
		"primary": {text: "hello"},
	}}
	e := NewFallbackEngine(gen, nil, "primary", "secondary")

	out, err := e.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
	assert.Equal(t, []string{"primary"}, gen.calls)
}

func TestFallbackEngine_SkipsOnMarkers(t *testing.T) {
	cases := []error{
		errors.New("404 model_not_found: models/x"),
		errors.New("quota_exceeded for project"),
		errors.New("Quota exceeded for metric"),
		&googleapi.Error{Code: http.StatusTooManyRequests, Message: "resource exhausted"},
		fmt.Errorf("wrapped: %w", &googleapi.Error{Code: http.StatusNotFound}),
		fmt.Errorf("%w: gpt-x", ErrModelNotFound),
	}
	for _, cause := range cases {
		t.Run(cause.Error(), func(t *testing.T) {
			gen := &scriptedGenerator{replies: map[string]scriptedReply{
				"primary":   {err: cause},
				"secondary": {text: "from backup"},
			}}
			e := NewFallbackEngine(gen, nil, "primary", "secondary")

			out, err := e.Generate(context.Background(), "hi")
			require.NoError(t, err)
			assert.Equal(t, "from backup", out)
			assert.Equal(t, []string{"primary", "secondary"}, gen.calls)
		})
	}
}

func TestFallbackEngine_AbortsOnOtherErrors(t *testing.T) {
	gen := &scriptedGenerator{replies: map[string]scriptedReply{
		"primary":   {err: errors.New("permission denied")},
		"secondary": {text: "never reached"},
	}}
	e := NewFallbackEngine(gen, nil, "primary", "secondary")

	_, err := e.Generate(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, IsAbort(err))
	assert.False(t, errors.Is(err, ErrAllModelsFailed))
	assert.Equal(t, []string{"primary"}, gen.calls)
}

// slowGenerator stalls the named model until its context ends.
type slowGenerator struct {
	slow string
}

func (g slowGenerator) GenerateText(ctx context.Context, model, _ string) (string, error) {
	if model == g.slow {
		<-ctx.Done()
		return "", fmt.Errorf("gemini %s: generate content: %w", model, ctx.Err())
	}
	return "from " + model, nil
}

func TestFallbackEngine_AttemptTimeoutSkipsToNextModel(t *testing.T) {
	e := NewFallbackEngine(slowGenerator{slow: "primary"}, nil, "primary", "secondary").
		WithAttemptTimeout(20 * time.Millisecond)

	out, err := e.Generate(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "from secondary", out)
}

func TestFallbackEngine_CancelledCallerAborts(t *testing.T) {
	e := NewFallbackEngine(slowGenerator{slow: "primary"}, nil, "primary", "secondary").
		WithAttemptTimeout(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Generate(ctx, "hi")
	assert.True(t, IsAbort(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFallbackEngine_Exhausted(t *testing.T) {
	gen := &scriptedGenerator{replies: map[string]scriptedReply{
		"primary":   {err: errors.New("model_not_found")},
		"secondary": {text: "   "},
	}}
	e := NewFallbackEngine(gen, nil, "primary", "secondary")

	_, err := e.Generate(context.Background(), "hi")
	assert.True(t, errors.Is(err, ErrAllModelsFailed))
	assert.False(t, IsAbort(err))
	assert.Equal(t, []string{"primary", "secondary"}, gen.calls)
}

func TestMultiProvider_RoutesByPrefix(t *testing.T) {
	gem := &scriptedGenerator{replies: map[string]scriptedReply{"gemini-1.5-pro-latest": {text: "g"}}}
	oai := &scriptedGenerator{replies: map[string]scriptedReply{"gpt-4o-mini": {text: "o"}}}
	m := MultiProvider{Gemini: gem, OpenAI: oai}

	out, err := m.GenerateText(context.Background(), "gpt-4o-mini", "p")
	require.NoError(t, err)
	assert.Equal(t, "o", out)

	out, err = m.GenerateText(context.Background(), "gemini-1.5-pro-latest", "p")
	require.NoError(t, err)
	assert.Equal(t, "g", out)
}

func TestMultiProvider_UnconfiguredOpenAIIsSkippable(t *testing.T) {
	m := MultiProvider{Gemini: &scriptedGenerator{}}
	_, err := m.GenerateText(context.Background(), "gpt-4o-mini", "p")
	assert.True(t, IsSkippable(err))
}

func TestOpenAIProvider_GenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"namaste"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL)
	out, err := p.GenerateText(context.Background(), "gpt-4o-mini", "hello")
	require.NoError(t, err)
	assert.Equal(t, "namaste", out)
}

func TestOpenAIProvider_QuotaIsSkippable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", srv.URL)
	_, err := p.GenerateText(context.Background(), "gpt-4o-mini", "hello")
	require.Error(t, err)
	assert.True(t, IsSkippable(err))
}

func TestNewOpenAIProvider_EmptyKey(t *testing.T) {
	assert.Nil(t, NewOpenAIProvider("", ""))
}
