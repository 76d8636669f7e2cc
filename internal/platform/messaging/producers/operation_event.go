package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/multiwallet-ledger/internal/config"
	"github.com/segmentio/kafka-go"
)

// OperationEventProducer publishes committed operation events to the event
// feed. Publication is best effort; the HTTP response never waits on it.
type OperationEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewOperationEventProducer creates the producer and ensures the topic exists
func NewOperationEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*OperationEventProducer, error) {
	if cfg.EventTopic == "" {
		return nil, fmt.Errorf("kafka event topic is not configured")
	}

	conn, err := kafka.Dial("tcp", cfg.Brokers)
	if err != nil {
		return nil, fmt.Errorf("failed to dial kafka for operation event producer: %w", err)
	}
	defer conn.Close()

	if err := createKafkaTopicIfNotExists(conn, cfg.EventTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure event topic %s exists: %w", cfg.EventTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.EventTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true, // The request path never blocks on the feed
		WriteTimeout: cfg.MaxWait,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write operation events asynchronously", "topic", cfg.EventTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Successfully wrote operation events asynchronously", "topic", cfg.EventTopic, "count", len(messages))
			}
		},
	}

	return &OperationEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.EventTopic,
	}, nil
}

func (p *OperationEventProducer) Publish(ctx context.Context, key string, value interface{}) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal operation event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: jsonValue,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish operation event",
			"topic", p.topic,
			"key", key,
			"error", err,
		)
		return fmt.Errorf("failed to publish operation event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published operation event",
		"topic", p.topic,
		"key", key,
	)
	return nil
}

func (p *OperationEventProducer) Close() error {
	p.logger.Info("Closing operation event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
