// README: Manual check of model credentials; sends one prompt through the fallback engine.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/shirinfathima/voyabot/internal/ai"
	"github.com/shirinfathima/voyabot/internal/config"
	"github.com/shirinfathima/voyabot/internal/infra"
)

const defaultPrompt = "Suggest three lesser-known hill stations in India for a week in October."

func main() {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	logger, err := infra.NewLogger("debug", true)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	gemini, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer gemini.Close()

	providers := ai.MultiProvider{Gemini: gemini}
	if p := ai.NewOpenAIProvider(os.Getenv("OPENAI_API_KEY"), ""); p != nil {
		providers.OpenAI = p
	}

	models := []string{config.DefaultPrimaryModel, config.DefaultSecondaryModel}
	if extra := os.Getenv("VOYABOT_DEMO_MODELS"); extra != "" {
		models = strings.Split(extra, ",")
	}
	engine := ai.NewFallbackEngine(providers, logger, models...)

	prompt := defaultPrompt
	if len(os.Args) > 1 {
		prompt = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("Models: %s\n", strings.Join(engine.Models(), " -> "))
	fmt.Printf("Prompt: %s\n", prompt)

	text, err := engine.Generate(ctx, prompt)
	var abort *ai.AbortError
	switch {
	case err == nil:
		fmt.Printf("Reply: %s\n", text)
	case errors.Is(err, ai.ErrAllModelsFailed):
		log.Fatal("every model was skipped")
	case errors.As(err, &abort):
		log.Fatalf("model %s aborted: %v", abort.Model, abort.Err)
	default:
		log.Fatal(err)
	}
}
