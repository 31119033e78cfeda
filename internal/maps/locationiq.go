package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const DefaultLocationIQURL = "https://us1.locationiq.com/v1/search.php"

// LocationIQ is a Geocoder over the LocationIQ forward-search endpoint.
type LocationIQ struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewLocationIQ(apiKey string, client *http.Client) *LocationIQ {
	if client == nil {
		client = http.DefaultClient
	}
	return &LocationIQ{apiKey: apiKey, endpoint: DefaultLocationIQURL, client: client}
}

// WithEndpoint points the client at another search URL.
func (l *LocationIQ) WithEndpoint(endpoint string) *LocationIQ {
	l.endpoint = endpoint
	return l
}

type locationIQResult struct {
	DisplayName string `json:"display_name"`
}

// Lookup returns the first component of the top result's display name.
func (l *LocationIQ) Lookup(ctx context.Context, text string) (string, error) {
	u, err := url.Parse(l.endpoint)
	if err != nil {
		return "", fmt.Errorf("locationiq endpoint: %w", err)
	}
	q := url.Values{}
	q.Set("key", l.apiKey)
	q.Set("q", text)
	q.Set("format", "json")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("locationiq request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	// LocationIQ answers 404 "Unable to geocode" when nothing matches.
	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("locationiq status %d: %s", resp.StatusCode, string(body))
	}

	var results []locationIQResult
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("locationiq decode: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return firstComponent(results[0].DisplayName), nil
}
