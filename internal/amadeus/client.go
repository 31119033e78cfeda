// README: Inventory client for flight offers, the hotel list and hotel offers.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUpstream wraps transport errors and non-2xx answers from the inventory API.
var ErrUpstream = errors.New("inventory upstream failure")

// MaxHotelIDs is how many hotels from the city list are priced.
const MaxHotelIDs = 5

// Tokens supplies bearer tokens; *TokenCache implements it.
type Tokens interface {
	Token(ctx context.Context) (string, error)
}

type Config struct {
	FlightURL      string
	HotelListURL   string
	HotelOffersURL string
	// RateLimit caps outbound requests per second; zero or less disables throttling.
	RateLimit float64
	// SendStayParams adds checkInDate, checkOutDate and adults to offer lookups.
	SendStayParams bool
}

type Client struct {
	cfg     Config
	tokens  Tokens
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

func NewClient(cfg Config, tokens Tokens, client *http.Client, log *zap.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return &Client{cfg: cfg, tokens: tokens, client: client, limiter: limiter, log: log}
}

// FlightOffers is the flight-offers response. Data stays raw so the caller
// can relay the offers untouched; it is nil when the response had no "data" key.
type FlightOffers struct {
	Data []json.RawMessage `json:"data"`
}

// HotelRef is one entry of the hotel list for a city.
type HotelRef struct {
	HotelID  string `json:"hotelId"`
	Name     string `json:"name"`
	IATACode string `json:"iataCode"`
}

type hotelListResponse struct {
	Data []HotelRef `json:"data"`
}

type hotelOffersResponse struct {
	Data []json.RawMessage `json:"data"`
}

// SearchFlights asks for up to five one-adult offers priced in INR.
func (c *Client) SearchFlights(ctx context.Context, origin, destination, date string) (*FlightOffers, error) {
	params := url.Values{}
	params.Set("originLocationCode", origin)
	params.Set("destinationLocationCode", destination)
	params.Set("departureDate", date)
	params.Set("adults", "1")
	params.Set("currencyCode", "INR")
	params.Set("max", "5")

	var out FlightOffers
	if err := c.get(ctx, c.cfg.FlightURL, params, &out); err != nil {
		return nil, fmt.Errorf("flight search: %w", err)
	}
	return &out, nil
}

// HotelsByCity lists hotels within 5 km of the city centre.
func (c *Client) HotelsByCity(ctx context.Context, cityCode string) ([]HotelRef, error) {
	params := url.Values{}
	params.Set("cityCode", cityCode)
	params.Set("radius", "5")
	params.Set("radiusUnit", "KM")

	var out hotelListResponse
	if err := c.get(ctx, c.cfg.HotelListURL, params, &out); err != nil {
		return nil, fmt.Errorf("hotel list: %w", err)
	}
	return out.Data, nil
}

// HotelAvailability fetches the best rate per hotel. The stay window and
// occupancy are only sent when Config.SendStayParams is set.
func (c *Client) HotelAvailability(ctx context.Context, hotelIDs []string, checkIn, checkOut string, adults int) ([]json.RawMessage, error) {
	params := url.Values{}
	params.Set("hotelIds", strings.Join(hotelIDs, ","))
	params.Set("bestRateOnly", "true")
	if c.cfg.SendStayParams {
		params.Set("checkInDate", checkIn)
		params.Set("checkOutDate", checkOut)
		params.Set("adults", strconv.Itoa(adults))
	}

	var out hotelOffersResponse
	if err := c.get(ctx, c.cfg.HotelOffersURL, params, &out); err != nil {
		return nil, fmt.Errorf("hotel offers: %w", err)
	}
	return out.Data, nil
}

// SearchHotelsCombined lists the city's hotels and prices the first five.
// A city without hotels yields (nil, nil).
func (c *Client) SearchHotelsCombined(ctx context.Context, cityCode, checkIn, checkOut string, adults int) ([]json.RawMessage, error) {
	hotels, err := c.HotelsByCity(ctx, cityCode)
	if err != nil {
		return nil, err
	}
	if len(hotels) == 0 {
		c.log.Info("no hotels listed for city", zap.String("city_code", cityCode))
		return nil, nil
	}
	if len(hotels) > MaxHotelIDs {
		hotels = hotels[:MaxHotelIDs]
	}
	ids := make([]string, 0, len(hotels))
	for _, h := range hotels {
		ids = append(ids, h.HotelID)
	}
	return c.HotelAvailability(ctx, ids, checkIn, checkOut, adults)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: bad endpoint %q: %v", ErrUpstream, endpoint, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("inventory request failed",
			zap.String("endpoint", u.Path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	return nil
}
