// README: Entry point; loads config, wires services and serves HTTP until SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	gmaps "googlemaps.github.io/maps"

	"github.com/shirinfathima/voyabot/internal/ai"
	"github.com/shirinfathima/voyabot/internal/amadeus"
	"github.com/shirinfathima/voyabot/internal/config"
	httptransport "github.com/shirinfathima/voyabot/internal/http"
	"github.com/shirinfathima/voyabot/internal/infra"
	"github.com/shirinfathima/voyabot/internal/maps"
	"github.com/shirinfathima/voyabot/internal/modules/account"
	"github.com/shirinfathima/voyabot/internal/modules/chat"
	"github.com/shirinfathima/voyabot/internal/modules/citycode"
	"github.com/shirinfathima/voyabot/internal/modules/places"
	"github.com/shirinfathima/voyabot/internal/modules/questionnaire"
	"github.com/shirinfathima/voyabot/internal/modules/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Dev)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := infra.NewMongo(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("mongo init", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(closeCtx)
	}()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessions, err := infra.NewJWTSessions(cfg.Session.Secret, cfg.Session.TTL)
	if err != nil {
		logger.Fatal("session init", zap.Error(err))
	}

	gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey)
	if err != nil {
		logger.Fatal("gemini init", zap.Error(err))
	}
	defer gemini.Close()

	outbound := &http.Client{Timeout: cfg.HTTP.OutboundTimeout}

	providers := ai.MultiProvider{Gemini: gemini}
	if openai := ai.NewOpenAIProvider(cfg.AI.OpenAIKey, ""); openai != nil {
		providers.OpenAI = openai
	}
	engine := ai.NewFallbackEngine(providers, logger.Named("ai"), cfg.AI.PrimaryModel, cfg.AI.SecondaryModel).
		WithAttemptTimeout(cfg.HTTP.OutboundTimeout)

	tokens := amadeus.NewTokenCache(cfg.Amadeus.TokenURL, cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, outbound, logger.Named("amadeus"))
	inventory := amadeus.NewClient(amadeus.Config{
		FlightURL:      cfg.Amadeus.FlightURL,
		HotelListURL:   cfg.Amadeus.HotelListURL,
		HotelOffersURL: cfg.Amadeus.HotelOffersURL,
		RateLimit:      cfg.Amadeus.RateLimit,
		SendStayParams: cfg.Amadeus.SendStayParams,
	}, tokens, outbound, logger.Named("amadeus"))

	citySvc := citycode.NewService(citycode.NewStore(db), citycode.DefaultRefresh)

	var geocoder maps.Geocoder = maps.NewLocationIQ(cfg.Geocoding.LocationIQKey, outbound)
	if cfg.Geocoding.GoogleMapsKey != "" {
		google, err := maps.NewGeocodeService(cfg.Geocoding.GoogleMapsKey, gmaps.WithHTTPClient(outbound))
		if err != nil {
			logger.Fatal("google geocoding init", zap.Error(err))
		}
		geocoder = google
	}
	resolver := maps.NewResolver(citySvc, geocoder, logger.Named("maps"))

	accountStore := account.NewStore(db)
	if err := accountStore.EnsureIndexes(ctx); err != nil {
		logger.Fatal("account indexes", zap.Error(err))
	}
	accountSvc := account.NewService(accountStore, sessions, logger.Named("account"))

	chatSvc := chat.NewService(citySvc, inventory, engine, logger.Named("chat")).WithLookupTimeout(cfg.HTTP.OutboundTimeout)
	questionnaireSvc := questionnaire.NewService(questionnaire.NewStore(db), engine, logger.Named("questionnaire"))
	reviewSvc := review.NewService(review.NewStore(db), logger.Named("review"))

	var descriptions places.DescriptionCache
	if cache := places.NewRedisCache(redisClient, places.DescriptionTTL); cache != nil {
		descriptions = cache
	}
	placesSvc := places.NewService(places.NewStore(db), engine, descriptions, logger.Named("places"))

	server := httptransport.NewServer(httptransport.ServerDeps{
		Accounts:      accountSvc,
		Chat:          chatSvc,
		Questionnaire: questionnaireSvc,
		Reviews:       reviewSvc,
		Places:        placesSvc,
		Locations:     resolver,
		Verifier:      sessions,
		Log:           logger,
		CORSOrigins:   cfg.HTTP.CORSOrigins,
	})

	if err := server.Run(ctx, cfg.HTTP.Addr); err != nil {
		logger.Error("http server", zap.Error(err))
	}
}
