//go:generate mockgen -source ./sink.go -destination=./mocks/sink.go -package=mock_rabbitmq
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/foodify/driver-agent/internal/events"
)

type Publisher interface {
	Publish(ctx context.Context, exchange, key string, body []byte) error
	Close() error
}

// Sink routes each journal event to the exchange as driver.event.<kind>.
type Sink struct {
	publisher Publisher
	exchange  string
}

func NewSink(publisher Publisher, exchange string) *Sink {
	return &Sink{publisher: publisher, exchange: exchange}
}

func RoutingKey(kind events.Kind) string {
	return "driver.event." + string(kind)
}

func (s *Sink) Name() string { return "rabbitmq" }

func (s *Sink) Write(ctx context.Context, batch []events.Event) error {
	for _, event := range batch {
		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", event.ID, err)
		}
		if err := s.publisher.Publish(ctx, s.exchange, RoutingKey(event.Kind), body); err != nil {
			return fmt.Errorf("publish event %s: %w", event.ID, err)
		}
	}
	return nil
}

func (s *Sink) Close() error {
	return s.publisher.Close()
}
