package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/config"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/logger"
)

const groupID = "driver-event-consumer-group"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config")
	group := flag.String("group", groupID, "consumer group id")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("info").Fatal("Failed to load config", zap.Error(err))
	}
	log := logger.New(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	brokers := cfg.Events.Brokers()
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is not set")
	}

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        *group,
		Topic:          cfg.Events.KafkaTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})
	defer func() {
		log.Info("Closing Kafka reader")
		if err := r.Close(); err != nil {
			log.Error("Error closing Kafka reader", zap.Error(err))
		}
	}()

	log.Info("Consumer connected", zap.String("topic", cfg.Events.KafkaTopic), zap.Strings("brokers", brokers))

	for {
		m, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Shutdown signal received, stopping consumer")
				return
			}
			log.Error("Error reading message", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(5 * time.Second):
			}
			continue
		}

		var event events.Event
		if err := json.Unmarshal(m.Value, &event); err != nil {
			log.Warn("Skipping undecodable event", zap.String("key", string(m.Key)), zap.Int64("offset", m.Offset), zap.Error(err))
			continue
		}

		log.Info("Driver event",
			zap.String("kind", string(event.Kind)),
			zap.Int64("driver_id", event.DriverID),
			zap.Int64("order_id", event.OrderID),
			zap.Any("attributes", event.Attributes),
			zap.Time("occurred_at", event.OccurredAt),
			zap.Int("partition", m.Partition),
			zap.Int64("offset", m.Offset),
		)
	}
}
