// Package server provides the public entry point for initializing the
// InstaStartup service.
//
// This package exists in pkg/ (not internal/) so that embedders can
// compose the full server with their own middleware:
//
//	srv, err := server.New(ctx)
//	http.ListenAndServe(":8080", srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/instastartup/instastartup/internal/api"
	"github.com/instastartup/instastartup/internal/api/handlers"
	"github.com/instastartup/instastartup/internal/config"
	"github.com/instastartup/instastartup/internal/pipeline"
	"github.com/instastartup/instastartup/internal/registry"
	"github.com/instastartup/instastartup/internal/store"
	"github.com/instastartup/instastartup/internal/telemetry"

	"github.com/rs/zerolog/log"
)

// Server holds the initialized InstaStartup service.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Store is the data store (in-memory with snapshot persistence).
	Store store.Store

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New initializes all service components from environment configuration
// and returns a ready Server.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the service with an explicit configuration.
func NewWithConfig(_ context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	dataStore := store.NewMemoryStore(cfg.DataDir)
	log.Info().Msg("✅ Store initialized")

	reg := registry.New()
	teams := pipeline.NewCoordinator(dataStore, reg)
	runner := pipeline.NewRunner(reg, teams)

	log.Info().Int("units", len(reg.List())).Msg("✅ Task unit registry initialized")
	log.Info().Msg("✅ Pipeline runner initialized")

	h := handlers.New(dataStore, reg, runner, teams, cfg.Providers)
	router := api.NewRouter(cfg, h)

	return &Server{
		Handler:      router,
		Store:        dataStore,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}
