package telemetry

import (
	"context"
	"log"
	"time"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
	Close() error
}

// Emitter publishes domain events describing friend-graph changes.
type Emitter struct {
	publisher   Publisher
	service     string
	environment string
}

type EventEnvelope struct {
	SchemaVersion int    `json:"schema_version"`
	EventType     string `json:"event_type"`
	OccurredAt    string `json:"occurred_at"`
	Service       string `json:"service"`
	Environment   string `json:"environment"`
	RequestID     string `json:"request_id"`
	UserID        *int   `json:"user_id,omitempty"`
	Payload       any    `json:"payload,omitempty"`
}

func NewEmitter(publisher Publisher, service, environment string) *Emitter {
	return &Emitter{
		publisher:   publisher,
		service:     service,
		environment: environment,
	}
}

// Emit publishes one event; the event type doubles as the routing key.
func (e *Emitter) Emit(ctx context.Context, eventType, requestID string, userID *int, payload any) {
	if e == nil || e.publisher == nil {
		return
	}

	envelope := EventEnvelope{
		SchemaVersion: 1,
		EventType:     eventType,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339Nano),
		Service:       e.service,
		Environment:   e.environment,
		RequestID:     requestID,
		UserID:        userID,
		Payload:       payload,
	}

	if err := e.publisher.Publish(ctx, eventType, envelope); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
