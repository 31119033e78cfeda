package ai

import (
	"context"
)

// Generator produces a free-text completion for prompt using the named model.
// An empty string with a nil error means the model answered without any text.
type Generator interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// TextEngine is the contract callers depend on: the first successful completion
// across an ordered list of models, or ErrAllModelsFailed / *AbortError.
type TextEngine interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
