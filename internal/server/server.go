// Package server wires storage, handlers and middleware into an
// http.Server.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dkovalev/bazaar/internal/server/auth"
	"github.com/dkovalev/bazaar/internal/server/handlers"
	"github.com/dkovalev/bazaar/internal/server/middleware"
	"github.com/dkovalev/bazaar/internal/server/storage"
	"github.com/dkovalev/bazaar/internal/server/token"
)

// Storages groups the persistence interfaces the server consumes.
type Storages struct {
	Users       storage.UserStorage
	Items       storage.ItemStorage
	RequestLogs storage.RequestLogStorage
	Pinger      handlers.Pinger
}

// Options configures New.
type Options struct {
	Addr     string
	TokenCfg token.Config
	Version  string
}

// New builds the fully wired http.Server.
func New(logger *slog.Logger, stores Storages, opts Options) *http.Server {
	resolver := auth.NewService(stores.Users)

	authHandler := handlers.NewAuthHandler(logger, stores.Users, resolver, opts.TokenCfg)
	userHandler := handlers.NewUserHandler(logger, stores.Users, stores.Items)
	itemHandler := handlers.NewItemHandler(logger, stores.Items, stores.Users)
	statsHandler := handlers.NewStatsHandler(logger, stores.Users, stores.Items)
	healthHandler := handlers.NewHealthHandler(logger, stores.Pinger, opts.Version)

	gate := middleware.Auth(logger, opts.TokenCfg, resolver)
	active := middleware.RequireActive(logger)
	protected := func(h http.HandlerFunc) http.Handler {
		return gate(active(h))
	}

	mux := http.NewServeMux()

	// Public surface.
	mux.HandleFunc("GET /{$}", healthHandler.Root)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /items/{$}", itemHandler.List)
	mux.HandleFunc("GET /items/{id}", itemHandler.Get)
	mux.HandleFunc("GET /stats", statsHandler.Stats)

	// Everything below requires a valid token for an active account.
	mux.Handle("GET /auth/me", protected(authHandler.Me))
	mux.Handle("GET /users/{$}", protected(userHandler.List))
	mux.Handle("GET /users/{id}", protected(userHandler.Get))
	mux.Handle("POST /items/{$}", protected(itemHandler.Create))
	mux.Handle("GET /my-items/{$}", protected(itemHandler.MyItems))
	mux.Handle("PUT /items/{id}", protected(itemHandler.Update))
	mux.Handle("DELETE /items/{id}", protected(itemHandler.Delete))
	mux.Handle("GET /my-stats", protected(statsHandler.MyStats))

	// Tight limits on the credential endpoints, a loose default elsewhere.
	limits := []middleware.PathRateLimit{
		{Path: "/auth/login", Rate: 10, Window: time.Minute},
		{Path: "/auth/register", Rate: 10, Window: time.Minute},
	}

	var handler http.Handler = mux
	handler = middleware.RateLimitByPath(limits, 300, time.Minute, logger)(handler)
	handler = middleware.LoggingWithSkip(logger, stores.RequestLogs, []string{"/health"})(handler)
	handler = middleware.Recovery(logger)(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Run starts the server and blocks until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errC := make(chan error, 1)

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
