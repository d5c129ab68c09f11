// Package scheduler runs the periodic cache refresh so the first request
// after a quiet spell does not pay the upstream fetch latency.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
)

// Refresher forces a cache refresh cycle and exposes the merged result.
type Refresher interface {
	Refresh(ctx context.Context) error
	CurrentReadings(ctx context.Context) ([]domain.StationSnapshot, error)
}

// SnapshotPublisher forwards refreshed readings to downstream consumers.
type SnapshotPublisher interface {
	PublishSnapshots(ctx context.Context, snapshots []domain.StationSnapshot) error
}

// Scheduler periodically refreshes the current-readings cache and, when a
// publisher is configured, pushes each refreshed snapshot set to Kafka.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	publisher SnapshotPublisher
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a refresh scheduler. publisher may be nil.
func New(refresher Refresher, publisher SnapshotPublisher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		publisher: publisher,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(s.runOnce)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.logger.Info("refresh scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.Warn("background refresh failed", "error", err)
		return
	}

	if s.publisher == nil {
		return
	}
	snapshots, err := s.refresher.CurrentReadings(ctx)
	if err != nil {
		s.logger.Warn("snapshot read after refresh failed", "error", err)
		return
	}
	if err := s.publisher.PublishSnapshots(ctx, snapshots); err != nil {
		s.logger.Warn("snapshot publish failed", "error", err)
	}
}
