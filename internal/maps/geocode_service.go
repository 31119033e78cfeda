package maps

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// Geocoder turns free text into a place name. An empty name with a nil
// error means the service had no match.
type Geocoder interface {
	Lookup(ctx context.Context, text string) (string, error)
}

// GeocodeService handles interactions with the Google Geocoding API.
type GeocodeService struct {
	client *maps.Client
	region string
}

// NewGeocodeService creates a GeocodeService biased to India.
func NewGeocodeService(apiKey string, opts ...maps.ClientOption) (*GeocodeService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, region: "in"}, nil
}

// Lookup returns the leading component of the top result's formatted address.
func (s *GeocodeService) Lookup(ctx context.Context, text string) (string, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: text,
		Region:  s.region,
	})
	if err != nil {
		return "", fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return firstComponent(results[0].FormattedAddress), nil
}

func firstComponent(name string) string {
	head, _, _ := strings.Cut(name, ",")
	return strings.TrimSpace(head)
}
