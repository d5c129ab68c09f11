package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/buoy-telemetry-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/buoy-telemetry-service/internal/adapter/kafka"
	"github.com/couchcryptid/buoy-telemetry-service/internal/adapter/ndbc"
	"github.com/couchcryptid/buoy-telemetry-service/internal/adapter/store"
	"github.com/couchcryptid/buoy-telemetry-service/internal/config"
	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
	"github.com/couchcryptid/buoy-telemetry-service/internal/scheduler"
	"github.com/couchcryptid/buoy-telemetry-service/internal/stations"
	"github.com/couchcryptid/buoy-telemetry-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()
	registry := stations.Default()

	// Cache store: SQLite when a path is configured, in-memory otherwise.
	var kv store.Store
	var closeStore func() error
	if cfg.StorePath != "" {
		sqlite, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			logger.Error("failed to open cache store", "path", cfg.StorePath, "error", err)
			os.Exit(1)
		}
		kv = sqlite
		closeStore = sqlite.Close
		logger.Info("using sqlite cache store", "path", cfg.StorePath)
	} else {
		kv = store.NewMemory()
		logger.Info("using in-memory cache store")
	}

	feed := ndbc.NewClient(cfg.NDBCBaseURL, cfg.CurrentFetchTimeout, cfg.HistoricalFetchTimeout, logger, metrics)

	currentCache := telemetry.NewCurrentCache(
		feed, kv, registry, clock, logger, metrics,
		cfg.CurrentCacheTTL, cfg.CurrentStaleCutoff,
	)
	historicalCache := telemetry.NewHistoricalCache(
		feed, kv, clock, logger, metrics, cfg.HistoricalCacheTTL,
	)

	// Snapshot publishing is feature-flagged via KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger, metrics)
		logger.Info("kafka snapshot publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	srv := httpadapter.NewServer(cfg, currentCache, historicalCache, registry, clock, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sched *scheduler.Scheduler
	if cfg.RefreshEnabled {
		var pub scheduler.SnapshotPublisher
		if publisher != nil {
			pub = publisher
		}
		sched = scheduler.New(currentCache, pub, cfg.RefreshInterval, logger)
		if err := sched.Start(); err != nil {
			logger.Error("failed to start refresh scheduler", "error", err)
			os.Exit(1)
		}
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if sched != nil {
		sched.Stop()
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Error("cache store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
