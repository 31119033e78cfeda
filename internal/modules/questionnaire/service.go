// README: Questionnaire service: stores answers and asks the model for destination picks.
package questionnaire

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/ai"
)

var (
	ErrIncomplete           = errors.New("please answer all questions before submitting")
	ErrRecommendationFailed = errors.New("recommendation model failed")
)

const SubmittedMessage = "Questionnaire submitted successfully!"

// assistanceTriggers are special requirements that earn an extra assistance answer.
var assistanceTriggers = []string{"pet assistance", "medical conditions", "child care"}

// AnswerStore is the persistence the service needs; *Store satisfies it.
type AnswerStore interface {
	Questions(ctx context.Context) ([]Question, error)
	UpsertResponses(ctx context.Context, username string, answers Answers) error
	Responses(ctx context.Context, username string) (Answers, error)
}

type Service struct {
	store  AnswerStore
	engine ai.TextEngine
	log    *zap.Logger
}

func NewService(store AnswerStore, engine ai.TextEngine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, engine: engine, log: log}
}

func (s *Service) Questions(ctx context.Context) ([]Question, error) {
	return s.store.Questions(ctx)
}

// Responses returns the caller's last submitted answers; an empty map when
// they have not submitted yet.
func (s *Service) Responses(ctx context.Context, username string) (Answers, error) {
	answers, err := s.store.Responses(ctx, username)
	if err != nil {
		return nil, err
	}
	if answers == nil {
		answers = Answers{}
	}
	return answers, nil
}

// Submit stores the answers, then generates a recommendation and, when a
// special requirement calls for it, assistance text. A model abort is
// returned as-is (an *ai.AbortError); an exhausted recommendation is
// ErrRecommendationFailed, while exhausted assistance is simply omitted.
func (s *Service) Submit(ctx context.Context, username string, answers Answers) (*Result, error) {
	if len(answers) == 0 {
		return nil, ErrIncomplete
	}
	for _, v := range answers {
		if blank(v) {
			return nil, ErrIncomplete
		}
	}

	if err := s.store.UpsertResponses(ctx, username, answers); err != nil {
		return nil, err
	}

	recommendation, err := s.engine.Generate(ctx, recommendationPrompt(answers))
	if err != nil {
		if errors.Is(err, ai.ErrAllModelsFailed) {
			return nil, ErrRecommendationFailed
		}
		return nil, err
	}
	res := &Result{Message: SubmittedMessage, Recommendation: recommendation}

	reqs := answers["special_requirements"]
	if !needsAssistance(reqs) {
		return res, nil
	}
	assistance, err := s.engine.Generate(ctx, fmt.Sprintf("User needs assistance for: %s\nProvide suitable travel solutions.", render(reqs)))
	switch {
	case err == nil:
		res.Assistance = assistance
	case errors.Is(err, ai.ErrAllModelsFailed):
		s.log.Warn("assistance omitted", zap.String("username", username))
	default:
		return nil, err
	}
	return res, nil
}

func recommendationPrompt(answers Answers) string {
	return fmt.Sprintf("Based on the following user preferences: %s, generate a personalized travel recommendation. "+
		"Suggest at least three travel destinations in India that match the user's interests, preferred activities, and travel style. "+
		"Provide a brief description of each place, highlighting why it would be a great choice. "+
		"Also, include any relevant travel tips or must-visit attractions for each destination.", render(answers))
}

// needsAssistance matches list answers element-wise and free text by substring.
func needsAssistance(v any) bool {
	switch reqs := v.(type) {
	case string:
		for _, t := range assistanceTriggers {
			if strings.Contains(reqs, t) {
				return true
			}
		}
	case []any:
		for _, r := range reqs {
			str, ok := r.(string)
			if !ok {
				continue
			}
			for _, t := range assistanceTriggers {
				if str == t {
					return true
				}
			}
		}
	}
	return false
}

// blank reports the answer values that count as unanswered.
func blank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case float64:
		return x == 0
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
