package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trogers1052/position-service/internal/models"
)

// Producer handles publishing events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishRefreshRequested asks the upstream collector for a fresh
// positions snapshot.
func (p *Producer) PublishRefreshRequested(ctx context.Context, source string) error {
	event := models.PositionsEvent{
		EventType: models.EventTypeRefreshRequested,
		Source:    source,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, source, event)
}

// PublishPositionsUpdated notifies downstream consumers that a new
// snapshot has been stored.
func (p *Producer) PublishPositionsUpdated(ctx context.Context, source string, count int) error {
	event := models.PositionsUpdatedEvent{
		EventType: models.EventTypePositionsUpdated,
		Source:    source,
		Count:     count,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, source, event)
}

func (p *Producer) publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
