// README: API gateway; builds the gin engine, registers routes and runs the listener.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shirinfathima/voyabot/internal/http/handlers"
	"github.com/shirinfathima/voyabot/internal/infra"
)

type ServerDeps struct {
	Accounts      handlers.AccountService
	Chat          handlers.ChatService
	Questionnaire handlers.QuestionnaireService
	Reviews       handlers.ReviewService
	Places        handlers.PlacesService
	Locations     handlers.LocationResolver
	Verifier      infra.TokenVerifier
	Log           *zap.Logger

	CORSOrigins []string
}

type Server struct {
	deps ServerDeps
	log  *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, log: log}
}

// Routes builds the engine with every endpoint registered.
func (s *Server) Routes() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	registerRoutes(engine, s.deps, s.log)
	return engine
}

const shutdownGrace = 10 * time.Second

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.log.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
