// Package events publishes document lifecycle events after a transaction commits.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fekuna/omnipos-backoffice-service/internal/broker"
	"github.com/google/uuid"
)

const (
	OrderCreated    = "OrderCreated"
	OrderUpdated    = "OrderUpdated"
	OrderDeleted    = "OrderDeleted"
	ShipmentCreated = "ShipmentCreated"
	ShipmentUpdated = "ShipmentUpdated"
	ShipmentDeleted = "ShipmentDeleted"
)

type Event struct {
	EventID     string      `json:"event_id"`
	EventType   string      `json:"event_type"`
	AggregateID int64       `json:"aggregate_id"`
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

func New(eventType string, aggregateID int64, payload interface{}) Event {
	return Event{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Timestamp:   time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type KafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

// Publish keys messages by aggregate id so events of one document stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.producer.Publish(ctx, []byte(strconv.FormatInt(event.AggregateID, 10)), value)
}
