package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/trogers1052/position-service/internal/models"
	"github.com/trogers1052/position-service/internal/positions"
)

// PositionRepository defines the interface for position database operations
type PositionRepository interface {
	ReplaceAllPositions(records []*models.PositionRecord) error
}

// SnapshotCache is the cache the consumer invalidates after storing a
// new snapshot. May be nil when no cache is configured.
type SnapshotCache interface {
	Invalidate(ctx context.Context) error
}

// UpdateNotifier publishes the updated-count notification after a
// snapshot is stored. May be nil when no producer is configured.
type UpdateNotifier interface {
	PublishPositionsUpdated(ctx context.Context, source string, count int) error
}

// messageReader abstracts the kafka reader for testing
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
	Config() kafka.ReaderConfig
}

// PositionsConsumer consumes brokerage position snapshot events. Each
// snapshot is normalized as a whole and replaces the stored positions;
// a snapshot that fails to normalize is logged and skipped entirely,
// never stored partially.
type PositionsConsumer struct {
	reader   messageReader
	repo     PositionRepository
	cache    SnapshotCache
	notifier UpdateNotifier
}

// NewPositionsConsumer creates a new Kafka consumer for position snapshots
func NewPositionsConsumer(brokers []string, topic, groupID string, repo PositionRepository, cache SnapshotCache, notifier UpdateNotifier) *PositionsConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})

	return &PositionsConsumer{
		reader:   reader,
		repo:     repo,
		cache:    cache,
		notifier: notifier,
	}
}

// Start begins consuming messages from Kafka
func (c *PositionsConsumer) Start(ctx context.Context) error {
	log.Printf("Starting positions consumer for topic: %s", c.reader.Config().Topic)

	for {
		select {
		case <-ctx.Done():
			log.Println("Positions consumer shutting down...")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				log.Printf("Error reading message: %v", err)
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				log.Printf("Error processing message: %v", err)
				// Continue processing other messages
			}
		}
	}
}

// processMessage handles a single snapshot message
func (c *PositionsConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var event models.PositionsEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal positions event: %w", err)
	}

	// Only process snapshot events
	if event.EventType != models.EventTypePositionsSnapshot {
		log.Printf("Ignoring event type: %s", event.EventType)
		return nil
	}

	holdings, err := positions.Parse(event.Data)
	if err != nil {
		return fmt.Errorf("failed to normalize snapshot from %s: %w", event.Source, err)
	}

	records := make([]*models.PositionRecord, len(holdings))
	for i, h := range holdings {
		records[i] = models.NewPositionRecord(h)
	}

	if err := c.repo.ReplaceAllPositions(records); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Invalidate(ctx); err != nil {
			// Stale cache entries expire on their own; the snapshot is stored.
			log.Printf("Failed to invalidate positions cache: %v", err)
		}
	}

	if c.notifier != nil {
		if err := c.notifier.PublishPositionsUpdated(ctx, event.Source, len(records)); err != nil {
			// The notification is advisory; the snapshot is stored.
			log.Printf("Failed to publish positions updated event: %v", err)
		}
	}

	log.Printf("Stored positions snapshot from %s: %d positions", event.Source, len(records))
	return nil
}

// Close closes the Kafka consumer
func (c *PositionsConsumer) Close() error {
	return c.reader.Close()
}
