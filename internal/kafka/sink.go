package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/events"
)

// Sink publishes journal events to a topic, one message per event keyed by order.
type Sink struct {
	producer Producer
	topic    string
	log      *zap.Logger
}

func NewSink(producer Producer, topic string, log *zap.Logger) *Sink {
	return &Sink{producer: producer, topic: topic, log: log}
}

func (s *Sink) Name() string { return "kafka" }

func (s *Sink) Write(ctx context.Context, batch []events.Event) error {
	for _, event := range batch {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", event.ID, err)
		}
		if err := s.producer.SendMessage(ctx, s.topic, []byte(event.Key()), payload); err != nil {
			return fmt.Errorf("publish event %s: %w", event.ID, err)
		}
	}
	s.log.Debug("Published events", zap.String("topic", s.topic), zap.Int("count", len(batch)))
	return nil
}

func (s *Sink) Close() error {
	return s.producer.Close()
}
