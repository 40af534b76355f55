//go:generate mockgen -source ./producer.go -destination=./mocks/producer.go -package=mock_kafka
package kafka

import (
	"context"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Producer interface {
	SendMessage(ctx context.Context, topic string, key []byte, value []byte) error
	Close() error
}

// ConsoleProducer prints messages instead of publishing them. Used when no brokers
// are configured.
type ConsoleProducer struct {
	log *zap.Logger
}

func NewConsoleProducer(log *zap.Logger) *ConsoleProducer {
	log.Info("Initialized console Kafka producer")
	return &ConsoleProducer{log: log.Named("kafka-console")}
}

func (p *ConsoleProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	if err := ctx.Err(); err != nil {
		p.log.Warn("Message cancelled", zap.String("topic", topic), zap.ByteString("key", key))
		return err
	}
	p.log.Info("Message",
		zap.String("topic", topic),
		zap.ByteString("key", key),
		zap.ByteString("value", value))
	return nil
}

func (p *ConsoleProducer) Close() error {
	p.log.Info("Closing console Kafka producer")
	return nil
}

// WriterProducer publishes to a Kafka cluster. Messages with the same key land on the
// same partition.
type WriterProducer struct {
	writer *kafkago.Writer
	log    *zap.Logger
}

func NewWriterProducer(brokers []string, log *zap.Logger) (*WriterProducer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka producer: no brokers")
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}
	log.Info("Initialized Kafka producer", zap.Strings("brokers", brokers))
	return &WriterProducer{writer: w, log: log}, nil
}

func (p *WriterProducer) SendMessage(ctx context.Context, topic string, key []byte, value []byte) error {
	err := p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   key,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("kafka write to %s: %w", topic, err)
	}
	return nil
}

func (p *WriterProducer) Close() error {
	p.log.Info("Closing Kafka producer")
	return p.writer.Close()
}
