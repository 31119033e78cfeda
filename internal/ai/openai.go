package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Generator for OpenAI chat models (names starting with "gpt-").
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider returns nil when apiKey is empty. baseURL overrides the API root when set.
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	if strings.TrimSpace(apiKey) == "" {
		return nil
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai %s: chat completion: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// MultiProvider dispatches a model name to the provider that serves it.
type MultiProvider struct {
	Gemini Generator
	OpenAI Generator
}

func (m MultiProvider) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	if strings.HasPrefix(model, "gpt-") {
		if m.OpenAI == nil {
			return "", fmt.Errorf("%w: %s (openai not configured)", ErrModelNotFound, model)
		}
		return m.OpenAI.GenerateText(ctx, model, prompt)
	}
	if m.Gemini == nil {
		return "", fmt.Errorf("%w: %s (gemini not configured)", ErrModelNotFound, model)
	}
	return m.Gemini.GenerateText(ctx, model, prompt)
}
