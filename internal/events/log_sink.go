package events

import (
	"context"

	"go.uber.org/zap"
)

// LogSink writes events to the structured log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log.Named("journal")}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Write(_ context.Context, batch []Event) error {
	for _, event := range batch {
		s.log.Info("Event",
			zap.String("id", event.ID.String()),
			zap.String("kind", string(event.Kind)),
			zap.Time("occurred_at", event.OccurredAt),
			zap.Int64("driver_id", event.DriverID),
			zap.Int64("order_id", event.OrderID),
			zap.Any("attributes", event.Attributes))
	}
	return nil
}

func (s *LogSink) Close() error {
	// stdout loggers fail Sync on some platforms
	_ = s.log.Sync()
	return nil
}
