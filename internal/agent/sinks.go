package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/config"
	"github.com/foodify/driver-agent/internal/db"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/kafka"
	"github.com/foodify/driver-agent/internal/rabbitmq"
	"github.com/foodify/driver-agent/internal/repository/postgresql"
	"github.com/foodify/driver-agent/internal/server"
)

// openSinks builds the journal sinks the configuration asks for. Order history is
// served from PostgreSQL when it is configured, otherwise from memory.
func openSinks(ctx context.Context, cfg config.EventsConfig, log *zap.Logger) ([]events.Sink, server.History, error) {
	memory := events.NewMemorySink(events.DefaultMemoryCapacity)
	sinks := []events.Sink{memory}
	var history server.History = memory

	if cfg.Console {
		sinks = append(sinks, events.NewLogSink(log))
	}

	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer, err := kafka.NewWriterProducer(brokers, log.Named("kafka"))
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, kafka.NewSink(producer, cfg.KafkaTopic, log.Named("kafka")))
	} else if cfg.Console {
		sinks = append(sinks, kafka.NewSink(kafka.NewConsoleProducer(log), cfg.KafkaTopic, log.Named("kafka")))
	}

	if cfg.AMQPURL != "" {
		client, err := rabbitmq.Dial(cfg.AMQPURL)
		if err != nil {
			closeAll(sinks, log)
			return nil, nil, err
		}
		if err := client.DeclareTopic(cfg.AMQPExchange); err != nil {
			_ = client.Close()
			closeAll(sinks, log)
			return nil, nil, fmt.Errorf("declare exchange %s: %w", cfg.AMQPExchange, err)
		}
		log.Info("Publishing events to RabbitMQ", zap.String("exchange", cfg.AMQPExchange))
		sinks = append(sinks, rabbitmq.NewSink(client, cfg.AMQPExchange))
	}

	if cfg.PostgresDSN != "" {
		database, err := db.NewDb(ctx, cfg.PostgresDSN)
		if err != nil {
			closeAll(sinks, log)
			return nil, nil, err
		}
		repo := postgresql.NewEventRepo(database)
		if err := repo.EnsureSchema(ctx); err != nil {
			database.Close()
			closeAll(sinks, log)
			return nil, nil, err
		}
		log.Info("Journaling events to PostgreSQL")
		sinks = append(sinks, repo)
		history = repo
	}

	return sinks, history, nil
}

func closeAll(sinks []events.Sink, log *zap.Logger) {
	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			log.Warn("Failed to close event sink", zap.String("sink", sink.Name()), zap.Error(err))
		}
	}
}
