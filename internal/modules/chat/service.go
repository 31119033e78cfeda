// README: Chat router: keyword intents to inventory lookups with an AI summary, else the model fallback.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/ai"
	"github.com/shirinfathima/voyabot/internal/amadeus"
	"github.com/shirinfathima/voyabot/internal/extract"
)

const (
	SummaryAborted   = "AI error: Unable to generate a summary."
	SummaryExhausted = "AI processing failed."
)

var (
	ErrEmptyMessage = errors.New("message is required")
	// errNoResults marks a lookup that succeeded with nothing to show.
	errNoResults = errors.New("no results")
)

// Inventory is the slice of the inventory client the router uses.
type Inventory interface {
	SearchFlights(ctx context.Context, origin, destination, date string) (*amadeus.FlightOffers, error)
	SearchHotelsCombined(ctx context.Context, cityCode, checkIn, checkOut string, adults int) ([]json.RawMessage, error)
}

type CitySource interface {
	Table(ctx context.Context) (extract.CityTable, error)
}

// Reply is the chat answer: structured offers plus a summary, or a plain reply.
type Reply struct {
	Flights []json.RawMessage `json:"flights,omitempty"`
	Hotels  []json.RawMessage `json:"hotels,omitempty"`
	Reply   string            `json:"reply"`
}

type Service struct {
	cities        CitySource
	inventory     Inventory
	engine        ai.TextEngine
	lookupTimeout time.Duration
	now           func() time.Time
	log           *zap.Logger
}

func NewService(cities CitySource, inventory Inventory, engine ai.TextEngine, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{cities: cities, inventory: inventory, engine: engine, now: time.Now, log: log}
}

// WithLookupTimeout bounds each inventory search. The model fallback that
// follows a timed-out search runs on the caller's context, not this budget.
func (s *Service) WithLookupTimeout(d time.Duration) *Service {
	s.lookupTimeout = d
	return s
}

func (s *Service) lookupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.lookupTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.lookupTimeout)
}

// Handle routes msg. Flight and hotel failures are absorbed and the message
// goes to the model fallback instead. The fallback's own errors (an
// *ai.AbortError or ai.ErrAllModelsFailed) are returned to the caller.
func (s *Service) Handle(ctx context.Context, msg string) (*Reply, error) {
	if msg == "" {
		return nil, ErrEmptyMessage
	}

	intent := Classify(msg)
	var (
		reply *Reply
		err   error
	)
	switch intent {
	case FlightIntent:
		reply, err = s.flight(ctx, msg)
	case HotelIntent:
		reply, err = s.hotel(ctx, msg)
	default:
		return s.fallback(ctx, msg)
	}
	if err != nil {
		s.log.Info("chat falling back to model",
			zap.Stringer("intent", intent),
			zap.Error(err))
		return s.fallback(ctx, msg)
	}
	return reply, nil
}

func (s *Service) flight(ctx context.Context, msg string) (*Reply, error) {
	table, err := s.cities.Table(ctx)
	if err != nil {
		return nil, err
	}
	q, err := extract.Flight(msg, table, s.now())
	if err != nil {
		return nil, err
	}
	lookupCtx, cancel := s.lookupContext(ctx)
	offers, err := s.inventory.SearchFlights(lookupCtx, q.Origin, q.Destination, q.Date)
	cancel()
	if err != nil {
		return nil, err
	}
	if offers.Data == nil {
		return nil, fmt.Errorf("flights %s-%s: %w", q.Origin, q.Destination, errNoResults)
	}
	summary := s.summarize(ctx, fmt.Sprintf("Flight options from %s to %s", q.Origin, q.Destination), offers)
	return &Reply{Flights: offers.Data, Reply: summary}, nil
}

func (s *Service) hotel(ctx context.Context, msg string) (*Reply, error) {
	table, err := s.cities.Table(ctx)
	if err != nil {
		return nil, err
	}
	q, err := extract.Hotel(msg, table, s.now())
	if err != nil {
		return nil, err
	}
	lookupCtx, cancel := s.lookupContext(ctx)
	hotels, err := s.inventory.SearchHotelsCombined(lookupCtx, q.CityCode, q.CheckIn, q.CheckOut, q.Adults)
	cancel()
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		return nil, fmt.Errorf("hotels in %s: %w", q.CityCode, errNoResults)
	}
	summary := s.summarize(ctx, fmt.Sprintf("Hotel options in %s", q.CityCode), map[string]any{"hotels": hotels})
	return &Reply{Hotels: hotels, Reply: summary}, nil
}

// summarize never fails; model errors become fixed summary strings.
func (s *Service) summarize(ctx context.Context, title string, data any) string {
	body, err := json.Marshal(data)
	if err != nil {
		body = []byte(fmt.Sprint(data))
	}
	text, err := s.engine.Generate(ctx, title+":\n"+string(body))
	switch {
	case errors.Is(err, ai.ErrAllModelsFailed):
		return SummaryExhausted
	case err != nil:
		return SummaryAborted
	}
	return text
}

func (s *Service) fallback(ctx context.Context, msg string) (*Reply, error) {
	text, err := s.engine.Generate(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &Reply{Reply: text}, nil
}
