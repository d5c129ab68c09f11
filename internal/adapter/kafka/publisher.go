package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/buoy-telemetry-service/internal/config"
	"github.com/couchcryptid/buoy-telemetry-service/internal/domain"
	"github.com/couchcryptid/buoy-telemetry-service/internal/observability"
)

// Publisher produces station snapshots to a Kafka topic for downstream
// consumers. It implements scheduler.SnapshotPublisher.
type Publisher struct {
	writer  *kafkago.Writer
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// PublishSnapshots serializes and publishes station snapshots in a single
// WriteMessages call for efficiency.
func (p *Publisher) PublishSnapshots(ctx context.Context, snapshots []domain.StationSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(snapshots))
	for i := range snapshots {
		msg, err := serializeToMessage(snapshots[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish snapshots: %w", err)
	}
	p.metrics.SnapshotsPublished.Add(float64(len(msgs)))
	p.logger.Debug("published station snapshots", "count", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a StationSnapshot into a Kafka message keyed by
// station id so each station's readings land on one partition in order.
func serializeToMessage(snapshot domain.StationSnapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snapshot.Record)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	observedAt := ""
	if snapshot.Record.HasTimestamp() {
		observedAt = snapshot.Record.Timestamp.Format(time.RFC3339)
	}
	return kafkago.Message{
		Key:   []byte(snapshot.StationID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station_id", Value: []byte(snapshot.StationID)},
			{Key: "observed_at", Value: []byte(observedAt)},
		},
	}, nil
}
