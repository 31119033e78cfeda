// README: City table service; loads the reference table and keeps it for a short while.
package citycode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shirinfathima/voyabot/internal/extract"
)

// DefaultRefresh is how long a loaded table is served before it is read again.
const DefaultRefresh = 5 * time.Minute

type Lister interface {
	All(ctx context.Context) ([]Entry, error)
}

type Service struct {
	store   Lister
	refresh time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	table    extract.CityTable
	loadedAt time.Time
}

func NewService(store Lister, refresh time.Duration) *Service {
	if refresh <= 0 {
		refresh = DefaultRefresh
	}
	return &Service{store: store, refresh: refresh, now: time.Now}
}

// Table returns the lowercase city -> IATA code table.
func (s *Service) Table(ctx context.Context) (extract.CityTable, error) {
	s.mu.RLock()
	table, loadedAt := s.table, s.loadedAt
	s.mu.RUnlock()
	if table != nil && s.now().Sub(loadedAt) < s.refresh {
		return table, nil
	}

	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	table = make(extract.CityTable, len(entries))
	for _, e := range entries {
		city := strings.ToLower(strings.TrimSpace(e.City))
		if city == "" || e.IATACode == "" {
			continue
		}
		table[city] = e.IATACode
	}

	s.mu.Lock()
	s.table, s.loadedAt = table, s.now()
	s.mu.Unlock()
	return table, nil
}
