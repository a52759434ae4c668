package app

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/specialistvlad/causalcore/internal/api"
	"github.com/specialistvlad/causalcore/internal/ctxlog"
	"github.com/specialistvlad/causalcore/internal/ingest"
	"github.com/specialistvlad/causalcore/internal/seed"
	"github.com/specialistvlad/causalcore/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

// Run seeds the graph and serves until ctx is cancelled. A failure of any
// long-running component, including a failed stream subscription, stops the
// others and is returned.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:   a.model.Telemetry.ServiceName,
		TraceExporter: a.model.Telemetry.TraceExporter,
		OTLPEndpoint:  a.model.Telemetry.OTLPEndpoint,
		Writer:        a.outW,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			a.logger.Warn("Telemetry shutdown failed.", "error", err)
		}
	}()

	if err := seed.Apply(ctx, a.graph, a.model.Facts); err != nil {
		return err
	}
	if a.model.Seed != nil {
		if _, err := seed.Load(ctx, a.graph, a.model.Seed.Path); err != nil {
			return fmt.Errorf("failed to load seed facts: %w", err)
		}
	}
	a.logger.Info("Graph ready.", "facts", a.graph.Len(ctx))

	var srv *api.Server
	if a.cfg.HTTPPort > 0 {
		srv, err = api.Listen(net.JoinHostPort("", strconv.Itoa(a.cfg.HTTPPort)), api.NewRouter(a.graph, a.logger))
		if err != nil {
			return err
		}
	} else {
		a.logger.Warn("HTTP server not started: disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if srv != nil {
		g.Go(func() error { return srv.Serve(gctx) })
	}

	if a.model.Seed != nil && a.model.Seed.Watch {
		w := seed.NewWatcher(a.graph, a.model.Seed.Path, 0)
		g.Go(func() error { return w.Run(gctx) })
	}

	if a.source != nil {
		consumer := ingest.NewConsumer(a.source, a.graph)
		a.logger.Info("🚀 Starting ingestion...", "consumer_id", consumer.ID())
		g.Go(func() error { return consumer.Run(gctx) })
	} else {
		a.logger.Warn("No ingest block configured, event stream disabled.")
	}

	err = g.Wait()
	a.logger.Info("🏁 Shut down.", "facts", a.graph.Len(ctx))
	return err
}
