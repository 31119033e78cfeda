package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
)

var (
	// ErrAllModelsFailed is returned when every model was skipped or answered without text.
	ErrAllModelsFailed = errors.New("all AI models failed")
	// ErrModelNotFound marks a model name no provider can serve; it is skippable.
	ErrModelNotFound = errors.New("model_not_found")
)

// AbortError is a non-skippable model error. The engine stops at the first one.
type AbortError struct {
	Model string
	Err   error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *AbortError) Unwrap() error { return e.Err }

var skipMarkers = []string{
	"model_not_found",
	"model not found",
	"quota_exceeded",
	"quota exceeded",
}

// IsSkippable reports whether err means "try the next model": the model does not
// exist or its quota is used up.
func IsSkippable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelNotFound) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && skippableStatus(gerr.Code) {
		return true
	}
	var oerr *openai.APIError
	if errors.As(err, &oerr) && skippableStatus(oerr.HTTPStatusCode) {
		return true
	}
	var rerr *openai.RequestError
	if errors.As(err, &rerr) && skippableStatus(rerr.HTTPStatusCode) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range skipMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

func skippableStatus(code int) bool {
	return code == http.StatusNotFound || code == http.StatusTooManyRequests
}

// FallbackEngine tries each model in priority order.
type FallbackEngine struct {
	gen            Generator
	models         []string
	attemptTimeout time.Duration
	log            *zap.Logger
}

// NewFallbackEngine returns an engine over models (primary first).
func NewFallbackEngine(gen Generator, log *zap.Logger, models ...string) *FallbackEngine {
	if log == nil {
		log = zap.NewNop()
	}
	return &FallbackEngine{gen: gen, models: models, log: log}
}

// WithAttemptTimeout bounds each model call. A model that runs out of its own
// budget is skipped; a caller whose context is done still aborts.
func (e *FallbackEngine) WithAttemptTimeout(d time.Duration) *FallbackEngine {
	e.attemptTimeout = d
	return e
}

// Models returns the configured model names in priority order.
func (e *FallbackEngine) Models() []string {
	return append([]string(nil), e.models...)
}

// Generate returns the first non-empty completion. A skippable error, a timed
// out attempt or an empty answer moves on to the next model; any other error
// returns *AbortError at once. Exhausting every model returns ErrAllModelsFailed.
func (e *FallbackEngine) Generate(ctx context.Context, prompt string) (string, error) {
	for _, model := range e.models {
		text, timedOut, err := e.attempt(ctx, model, prompt)
		if err != nil {
			if IsSkippable(err) || timedOut {
				e.log.Warn("model skipped", zap.String("model", model), zap.Bool("timed_out", timedOut), zap.Error(err))
				continue
			}
			e.log.Error("model aborted", zap.String("model", model), zap.Error(err))
			return "", &AbortError{Model: model, Err: err}
		}
		if strings.TrimSpace(text) == "" {
			e.log.Warn("model returned no text", zap.String("model", model))
			continue
		}
		return text, nil
	}
	return "", ErrAllModelsFailed
}

// attempt reports timedOut only when the per-model budget expired while ctx is still live.
func (e *FallbackEngine) attempt(ctx context.Context, model, prompt string) (text string, timedOut bool, err error) {
	if e.attemptTimeout <= 0 {
		text, err = e.gen.GenerateText(ctx, model, prompt)
		return text, false, err
	}
	attemptCtx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()
	text, err = e.gen.GenerateText(attemptCtx, model, prompt)
	timedOut = err != nil && ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded)
	return text, timedOut, err
}

// IsAbort reports whether err came from a non-skippable model error.
func IsAbort(err error) bool {
	var aerr *AbortError
	return errors.As(err, &aerr)
}
