package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/core/port"
	"github.com/onmind/role-service/internal/infra/config"
)

const schemaVersion = "1.0"

// Event types carried on the bus.
const (
	EventRoleCreated = "role.created"
	EventRoleUpdated = "role.updated"
	EventRoleDeleted = "role.deleted"
)

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishRoleCreated publishes roles.role.created events.
func (p *EventPublisher) PublishRoleCreated(ctx context.Context, event domain.RoleCreatedEvent) error {
	payload := struct {
		RoleID    int64     `json:"role_id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"created_at"`
	}{
		RoleID:    event.RoleID,
		Name:      event.Name,
		CreatedAt: event.CreatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, EventRoleCreated, event.CreatedAt, payload)
}

// PublishRoleUpdated publishes roles.role.updated events.
func (p *EventPublisher) PublishRoleUpdated(ctx context.Context, event domain.RoleUpdatedEvent) error {
	payload := struct {
		RoleID       int64     `json:"role_id"`
		Name         string    `json:"name"`
		PreviousName string    `json:"previous_name"`
		UpdatedAt    time.Time `json:"updated_at"`
	}{
		RoleID:       event.RoleID,
		Name:         event.Name,
		PreviousName: event.PreviousName,
		UpdatedAt:    event.UpdatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, EventRoleUpdated, event.UpdatedAt, payload)
}

// PublishRoleDeleted publishes roles.role.deleted events.
func (p *EventPublisher) PublishRoleDeleted(ctx context.Context, event domain.RoleDeletedEvent) error {
	payload := struct {
		RoleID    int64     `json:"role_id"`
		Name      string    `json:"name"`
		DeletedAt time.Time `json:"deleted_at"`
	}{
		RoleID:    event.RoleID,
		Name:      event.Name,
		DeletedAt: event.DeletedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, EventRoleDeleted, event.DeletedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
