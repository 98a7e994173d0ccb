package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/shagunapp/shagun-api/internal/config"
	"github.com/shagunapp/shagun-api/internal/handler"
	"github.com/shagunapp/shagun-api/internal/middleware"
)

const apiVersion = "1.0.0"

// Handlers bundles the route handlers mounted by the server.
type Handlers struct {
	Auth    *handler.AuthHandler
	Wedding *handler.WeddingHandler
	Guest   *handler.GuestHandler
	Expense *handler.ExpenseHandler
	Shagun  *handler.ShagunHandler
}

// Server is the HTTP front of the application.
type Server struct {
	httpServer      *http.Server
	logger          *zerolog.Logger
	shutdownTimeout time.Duration
}

// New assembles the router and wraps it in an HTTP server.
func New(
	cfg config.ServerConfig,
	logger *zerolog.Logger,
	authn *middleware.Authenticator,
	handlers Handlers,
) *Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("API is running..."))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprintf(w, `{"message":"Shagun API is running","version":%q}`, apiVersion)
		})

		handlers.Auth.RegisterRoutes(r, authn)
		handlers.Wedding.RegisterRoutes(r, authn)
		handlers.Guest.RegisterRoutes(r, authn)
		handlers.Expense.RegisterRoutes(r, authn)
		handlers.Shagun.RegisterRoutes(r, authn)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
