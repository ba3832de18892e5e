package models

import (
	"encoding/json"
	"time"
)

// Positions event type constants
const (
	EventTypePositionsSnapshot = "POSITIONS_SNAPSHOT"
	EventTypePositionsUpdated  = "POSITIONS_UPDATED"
	EventTypeRefreshRequested  = "REFRESH_REQUESTED"
)

// PositionsEvent is the Kafka envelope around a raw brokerage positions
// document. Data holds the document as delivered by the collector, with
// its top-level "items" array; the consumer hands it to the normalizer
// untouched.
type PositionsEvent struct {
	EventType string          `json:"event_type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// PositionsUpdatedEvent notifies downstream consumers that a new
// snapshot has been stored.
type PositionsUpdatedEvent struct {
	EventType string    `json:"event_type"`
	Source    string    `json:"source"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}
