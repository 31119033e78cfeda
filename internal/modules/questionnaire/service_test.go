package questionnaire

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirinfathima/voyabot/internal/ai"
)

type memStore struct {
	saved map[string]Answers
}

func (m *memStore) Questions(context.Context) ([]Question, error) {
	return []Question{{"key": "budget", "question": "What is your budget?"}}, nil
}

func (m *memStore) UpsertResponses(_ context.Context, username string, answers Answers) error {
	if m.saved == nil {
		m.saved = map[string]Answers{}
	}
	m.saved[username] = answers
	return nil
}

func (m *memStore) Responses(_ context.Context, username string) (Answers, error) {
	return m.saved[username], nil
}

// promptEngine answers by prompt prefix and records every prompt.
type promptEngine struct {
	recommendation, assistance error
	prompts                    []string
}

func (e *promptEngine) Generate(_ context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	if strings.HasPrefix(prompt, "User needs assistance") {
		if e.assistance != nil {
			return "", e.assistance
		}
		return "bring the vaccination card", nil
	}
	if e.recommendation != nil {
		return "", e.recommendation
	}
	return "Hampi, Ziro, Gokarna", nil
}

func TestSubmit_RejectsUnanswered(t *testing.T) {
	for name, answers := range map[string]Answers{
		"empty string": {"budget": "", "style": "slow"},
		"empty list":   {"activities": []any{}},
		"null":         {"budget": nil},
		"no answers":   {},
	} {
		t.Run(name, func(t *testing.T) {
			store := &memStore{}
			s := NewService(store, &promptEngine{}, nil)
			_, err := s.Submit(context.Background(), "asha", answers)
			assert.True(t, errors.Is(err, ErrIncomplete))
			assert.Empty(t, store.saved)
		})
	}
}

func TestSubmit_StoresAndRecommends(t *testing.T) {
	store := &memStore{}
	engine := &promptEngine{}
	s := NewService(store, engine, nil)

	answers := Answers{"budget": "low", "special_requirements": []any{"none"}}
	res, err := s.Submit(context.Background(), "asha", answers)
	require.NoError(t, err)
	assert.Equal(t, SubmittedMessage, res.Message)
	assert.Equal(t, "Hampi, Ziro, Gokarna", res.Recommendation)
	assert.Empty(t, res.Assistance)
	assert.Equal(t, answers, store.saved["asha"])
	require.Len(t, engine.prompts, 1)
	assert.Contains(t, engine.prompts[0], "three travel destinations in India")
	assert.Contains(t, engine.prompts[0], `"budget":"low"`)
}

func TestSubmit_Assistance(t *testing.T) {
	tests := []struct {
		name string
		reqs any
	}{
		{"list", []any{"pet assistance"}},
		{"text", "travelling with child care needs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(&memStore{}, &promptEngine{}, nil)
			res, err := s.Submit(context.Background(), "asha", Answers{"special_requirements": tt.reqs})
			require.NoError(t, err)
			assert.Equal(t, "bring the vaccination card", res.Assistance)
		})
	}
}

func TestSubmit_ListTriggersMatchWholeItems(t *testing.T) {
	engine := &promptEngine{}
	s := NewService(&memStore{}, engine, nil)
	_, err := s.Submit(context.Background(), "asha", Answers{"special_requirements": []any{"pet"}})
	require.NoError(t, err)
	assert.Len(t, engine.prompts, 1)
}

func TestSubmit_ModelFailures(t *testing.T) {
	abort := &ai.AbortError{Model: "m", Err: errors.New("permission denied")}

	s := NewService(&memStore{}, &promptEngine{recommendation: ai.ErrAllModelsFailed}, nil)
	_, err := s.Submit(context.Background(), "asha", Answers{"budget": "low"})
	assert.True(t, errors.Is(err, ErrRecommendationFailed))

	s = NewService(&memStore{}, &promptEngine{recommendation: abort}, nil)
	_, err = s.Submit(context.Background(), "asha", Answers{"budget": "low"})
	assert.True(t, ai.IsAbort(err))

	s = NewService(&memStore{}, &promptEngine{assistance: ai.ErrAllModelsFailed}, nil)
	res, err := s.Submit(context.Background(), "asha", Answers{"special_requirements": []any{"medical conditions"}})
	require.NoError(t, err)
	assert.Empty(t, res.Assistance)

	s = NewService(&memStore{}, &promptEngine{assistance: abort}, nil)
	_, err = s.Submit(context.Background(), "asha", Answers{"special_requirements": []any{"medical conditions"}})
	assert.True(t, ai.IsAbort(err))
}

func TestResponses_ReturnsLastSubmission(t *testing.T) {
	store := &memStore{}
	s := NewService(store, &promptEngine{}, nil)

	got, err := s.Responses(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, Answers{}, got)

	_, err = s.Submit(context.Background(), "asha", Answers{"budget": "low"})
	require.NoError(t, err)
	got, err = s.Responses(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, Answers{"budget": "low"}, got)
}
