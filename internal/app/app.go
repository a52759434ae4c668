package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/causalcore/internal/config"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/graph"
	"github.com/specialistvlad/causalcore/internal/ingest"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	cfg    *Config
	model  *config.Model
	graph  *graph.Manager
	source ingest.Source
}

// Option customizes an App.
type Option func(*App)

// WithSource replaces the socket.io source built from the ingest block.
func WithSource(s ingest.Source) Option {
	return func(a *App) {
		a.source = s
	}
}

// NewApp loads and validates the configuration and builds an App with its
// own isolated logger and an empty graph. A configuration error is returned,
// not logged, so the caller decides the exit code.
func NewApp(outW io.Writer, cfg *Config, loader config.Loader, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, cfg.ConfigPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := config.Validate(model); err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded.", "facts", len(model.Facts), "ingest", model.Ingest != nil, "seed", model.Seed != nil)

	a := &App{
		outW:   outW,
		logger: logger,
		cfg:    cfg,
		model:  model,
		graph:  graph.New(graph.WithWorkers(cfg.WorkerCount)),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.source == nil && model.Ingest != nil {
		a.source, err = ingest.NewSocketIOSource(ingest.SocketIOConfig{
			URL:                model.Ingest.URL,
			Namespace:          model.Ingest.Namespace,
			Event:              model.Ingest.Event,
			ConnectTimeout:     model.Ingest.ConnectTimeout,
			InsecureSkipVerify: model.Ingest.InsecureSkipVerify,
		})
		if err != nil {
			return nil, fmt.Errorf("invalid ingest configuration: %w", err)
		}
	}
	return a, nil
}

// Graph returns the application's graph. This is primarily for testing.
func (a *App) Graph() *graph.Manager {
	return a.graph
}
