// README: Location resolution: the city table first, then an external geocoder.
package maps

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/extract"
)

// CitySource loads the city->IATA reference table.
type CitySource interface {
	Table(ctx context.Context) (extract.CityTable, error)
}

type Resolver struct {
	cities   CitySource
	geocoder Geocoder
	log      *zap.Logger
}

func NewResolver(cities CitySource, geocoder Geocoder, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{cities: cities, geocoder: geocoder, log: log}
}

// ResolveLocation names the place text refers to. A known city token wins and
// is returned capitalized; otherwise the geocoder's top hit is used. Every
// failure degrades to ("", false).
func (r *Resolver) ResolveLocation(ctx context.Context, text string) (string, bool) {
	if r.cities != nil {
		table, err := r.cities.Table(ctx)
		if err != nil {
			r.log.Warn("city table unavailable", zap.Error(err))
		} else if found := table.Cities(text); len(found) > 0 {
			return capitalize(found[0]), true
		}
	}
	if r.geocoder == nil {
		return "", false
	}
	place, err := r.geocoder.Lookup(ctx, text)
	if err != nil {
		r.log.Warn("geocoding failed", zap.Error(err))
		return "", false
	}
	if place == "" {
		return "", false
	}
	return place, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
