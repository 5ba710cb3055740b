package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/querystats-lab/querystats/internal/broker"
	corecfg "github.com/querystats-lab/querystats/internal/core/config"
	"github.com/querystats-lab/querystats/internal/core/storage/postgres"
	"github.com/querystats-lab/querystats/internal/ingestion"
	"github.com/querystats-lab/querystats/internal/migrations"
	"github.com/querystats-lab/querystats/internal/query"
	"github.com/querystats-lab/querystats/internal/rollup"
	"github.com/querystats-lab/querystats/internal/scheduler"
	"github.com/querystats-lab/querystats/internal/server"
)

func main() {
	configPath := flag.String("config", "querystats.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	window, interval, warmup, drainBudget, idleTimeout, shutdownTimeout := cfg.Statistics.Durations()

	// 2. Initialize Storage (PostgreSQL)
	eventStore, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer eventStore.Close()

	if err := migrations.Apply(eventStore.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to migrate database schema", "error", err)
		os.Exit(1)
	}

	snapshotStore := postgres.NewSnapshotAdapter(eventStore.DB())

	// 3. Initialize Broker consumer
	source := broker.NewAMQPSource(
		cfg.Broker.URL,
		cfg.Broker.ConnectAttempts,
		cfg.Broker.ConnectBackoffDuration(),
	)
	defer source.Close()

	// 4. Initialize Pipeline services
	ingestionSvc := ingestion.NewService(source, eventStore, idleTimeout, cfg.Statistics.DefaultSource)
	rollupEngine := rollup.NewEngine(eventStore, snapshotStore, rollup.WithAllTime(cfg.Statistics.AllTime))

	sched := scheduler.New(ingestionSvc, rollupEngine, scheduler.Config{
		Queue:       cfg.Broker.Queue,
		BatchSize:   cfg.Statistics.BatchSize,
		DrainBudget: drainBudget,
		Window:      window,
		WarmupDelay: warmup,
		Interval:    interval,
	})

	// 5. Initialize Query API
	querySvc := query.NewService(snapshotStore, interval)

	// 6. Initialize Server
	srv := server.New(
		fmtAddr(cfg.Server.Host, cfg.Server.Port),
		eventStore.DB(),
		cfg.Server.Mode,
		server.WithShutdownTimeout(shutdownTimeout),
	)
	querySvc.RegisterRoutes(srv.Engine)

	// 7. Run until a signal arrives; either component failing stops the other.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sched.Start(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
