package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/DANIELNAHUN/afiche-generator/auth"
	"github.com/DANIELNAHUN/afiche-generator/config"
	"github.com/DANIELNAHUN/afiche-generator/errors"
	"github.com/DANIELNAHUN/afiche-generator/flyer"
	"github.com/DANIELNAHUN/afiche-generator/store"
)

// Generation requests block on external conversions, so response deadlines
// are far more generous than a typical JSON API.
const (
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 10 * time.Minute
	shutdownTimeout   = 15 * time.Second
)

// Server owns the HTTP surface and the long-lived services behind it: the
// session store, the generation pipeline, the artifact store and its
// sweeper.
type Server struct {
	cfg    *config.Config
	logger *zap.SugaredLogger

	auth      *auth.Service
	generator *flyer.Generator
	artifacts *store.Store
	sweeper   *store.Sweeper

	httpServer *http.Server
}

// New wires the full service graph from configuration.
func New(cfg *config.Config, logger *zap.SugaredLogger) (*Server, error) {
	artifacts, err := store.NewStore(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	templates := flyer.NewTemplateSet(cfg.Templates)
	substituter := flyer.NewSubstituter(templates, logger)
	converter := flyer.NewSofficeConverter(cfg.Converter, logger)
	renderer := flyer.NewPdftoppmRenderer(cfg.Layout, logger)
	layout := flyer.NewLargeFormatTransformer(renderer, cfg.Layout, logger)

	generator, err := flyer.NewGenerator(substituter, converter, layout,
		cfg.Storage.Dir, cfg.Pipeline.VariantWorkers, logger)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(cfg.Auth, logger)
	sweeper := store.NewSweeper(artifacts, cfg.Storage, logger, authService.PruneExpired)

	s := &Server{
		cfg:       cfg,
		logger:    logger.Named("server"),
		auth:      authService,
		generator: generator,
		artifacts: artifacts,
		sweeper:   sweeper,
	}
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	return s, nil
}

// Start begins the sweeper and serves HTTP until Stop or a listener error.
// Blocks until the listener closes.
func (s *Server) Start() error {
	s.sweeper.Start()

	s.logger.Infow("HTTP server listening",
		"addr", s.httpServer.Addr,
		"storage", s.artifacts.Dir(),
		"questions", s.auth.TotalQuestions(),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server failed")
	}
	return nil
}

// Stop drains in-flight requests and stops the sweeper.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.sweeper.Stop()
	if err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}
	s.logger.Infow("Server stopped")
	return nil
}
