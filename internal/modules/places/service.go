// README: Underrated places service: random picks enriched with generated descriptions.
package places

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/ai"
)

// PickCount is how many places one request returns.
const PickCount = 3

const (
	DetailsAborted   = "AI data unavailable."
	DetailsExhausted = "AI model failed to provide details."
)

var ErrNoPlaces = errors.New("no places found in the database")

type Lister interface {
	All(ctx context.Context) ([]Place, error)
}

type Service struct {
	store   Lister
	engine  ai.TextEngine
	cache   DescriptionCache
	shuffle func(n int, swap func(i, j int))
	log     *zap.Logger
}

// NewService wires the service; cache may be nil.
func NewService(store Lister, engine ai.TextEngine, cache DescriptionCache, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, engine: engine, cache: cache, shuffle: rand.Shuffle, log: log}
}

// Random returns up to three places in random order. Places without stored
// details get a generated description; missing images get a placeholder.
func (s *Service) Random(ctx context.Context) ([]Place, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNoPlaces
	}
	s.shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	picked := all[:min(PickCount, len(all))]

	var wg sync.WaitGroup
	for i := range picked {
		if picked[i].AIDetails != "" {
			continue
		}
		wg.Add(1)
		go func(p *Place) {
			defer wg.Done()
			p.AIDetails = s.describe(ctx, *p)
		}(&picked[i])
	}
	wg.Wait()

	for i := range picked {
		if picked[i].ImageURL == "" {
			picked[i].ImageURL = PlaceholderImage
		}
	}
	return picked, nil
}

func (s *Service) describe(ctx context.Context, p Place) string {
	if s.cache != nil {
		if v, ok, err := s.cache.Get(ctx, p); err != nil {
			s.log.Warn("description cache read failed", zap.Error(err))
		} else if ok {
			return v
		}
	}

	text, err := s.engine.Generate(ctx, descriptionPrompt(p))
	switch {
	case errors.Is(err, ai.ErrAllModelsFailed):
		return DetailsExhausted
	case err != nil:
		return DetailsAborted
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, p, text); err != nil {
			s.log.Warn("description cache write failed", zap.Error(err))
		}
	}
	return text
}

func descriptionPrompt(p Place) string {
	return fmt.Sprintf("Provide detailed travel information about %s located in %s. "+
		"Include its cultural importance, best travel time, local experiences, and food options.", p.Name, p.Location)
}
