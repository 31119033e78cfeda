// README: Config loader with env defaults for HTTP, Mongo, Redis, AI, inventory and geocoding settings.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AmadeusConfig struct {
	ClientID       string
	ClientSecret   string
	TokenURL       string
	FlightURL      string
	HotelListURL   string
	HotelOffersURL string
	RateLimit      float64
	// SendStayParams transmits check-in/check-out/adults on hotel offer lookups.
	SendStayParams bool
}

type AIConfig struct {
	GeminiKey      string
	OpenAIKey      string
	PrimaryModel   string
	SecondaryModel string
}

type Config struct {
	HTTP struct {
		Addr        string
		CORSOrigins []string
		// OutboundTimeout bounds each inventory or geocoding request and each model attempt.
		OutboundTimeout time.Duration
	}
	Mongo struct {
		URI      string
		Database string
	}
	Redis struct {
		Addr string
	}
	Session struct {
		Secret string
		TTL    time.Duration
	}
	Geocoding struct {
		LocationIQKey string
		GoogleMapsKey string
	}
	Log struct {
		Level string
		Dev   bool
	}
	Amadeus AmadeusConfig
	AI      AIConfig
}

const (
	DefaultPrimaryModel   = "gemini-1.5-pro-latest"
	DefaultSecondaryModel = "gemini-1.5-flash-latest"
	DefaultHotelOffersURL = "https://test.api.amadeus.com/v3/shopping/hotel-offers"
)

// Load reads a .env file when one exists and then the process environment.
// Every missing required key is reported in one joined error.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	var missing []error
	required := func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		missing = append(missing, errors.New("environment variable "+key+" is required"))
		return ""
	}

	cfg.HTTP.Addr = envOrDefault("VOYABOT_HTTP_ADDR", ":5001")
	cfg.HTTP.CORSOrigins = envList("VOYABOT_CORS_ORIGINS")
	cfg.HTTP.OutboundTimeout = envOrDefaultDuration("VOYABOT_HTTP_TIMEOUT", 30*time.Second)

	cfg.Mongo.URI = required("MONGO_URI")
	cfg.Mongo.Database = envOrDefault("MONGO_DB", "travel_bot")
	cfg.Redis.Addr = os.Getenv("VOYABOT_REDIS_ADDR")

	cfg.Session.Secret = required("JWT_SECRET_KEY")
	cfg.Session.TTL = envOrDefaultDuration("VOYABOT_SESSION_TTL", 15*time.Minute)

	cfg.AI.GeminiKey = required("GEMINI_API_KEY")
	cfg.AI.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AI.PrimaryModel = envOrDefault("VOYABOT_PRIMARY_MODEL", DefaultPrimaryModel)
	cfg.AI.SecondaryModel = envOrDefault("VOYABOT_SECONDARY_MODEL", DefaultSecondaryModel)

	cfg.Amadeus.ClientID = required("AMADEUS_API_KEY")
	cfg.Amadeus.ClientSecret = required("AMADEUS_API_SECRET")
	cfg.Amadeus.TokenURL = required("AMADEUS_TOKEN_URL")
	cfg.Amadeus.FlightURL = required("AMADEUS_FLIGHT_SEARCH_URL")
	cfg.Amadeus.HotelListURL = required("AMADEUS_HOTEL_SEARCH_URL")
	cfg.Amadeus.HotelOffersURL = envOrDefault("AMADEUS_HOTEL_OFFERS_URL", DefaultHotelOffersURL)
	cfg.Amadeus.RateLimit = envOrDefaultFloat("AMADEUS_RATE_LIMIT", 10)
	cfg.Amadeus.SendStayParams = envOrDefaultBool("AMADEUS_HOTEL_STAY_PARAMS", false)

	cfg.Geocoding.LocationIQKey = required("LOCATIONIQ_API_KEY")
	cfg.Geocoding.GoogleMapsKey = os.Getenv("GOOGLE_MAPS_API_KEY")

	cfg.Log.Level = envOrDefault("VOYABOT_LOG_LEVEL", "info")
	cfg.Log.Dev = os.Getenv("GIN_MODE") != "release"

	if len(missing) > 0 {
		return cfg, errors.Join(missing...)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envList(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
