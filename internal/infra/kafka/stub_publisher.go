package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for
// development environments without a broker.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("stub event published",
		zap.String("event_type", eventType),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishRoleCreated logs role.created events.
func (p *StubPublisher) PublishRoleCreated(_ context.Context, event domain.RoleCreatedEvent) error {
	p.logEvent(EventRoleCreated, event.CreatedAt, map[string]any{
		"role_id":    event.RoleID,
		"name":       event.Name,
		"created_at": event.CreatedAt,
	})
	return nil
}

// PublishRoleUpdated logs role.updated events.
func (p *StubPublisher) PublishRoleUpdated(_ context.Context, event domain.RoleUpdatedEvent) error {
	p.logEvent(EventRoleUpdated, event.UpdatedAt, map[string]any{
		"role_id":       event.RoleID,
		"name":          event.Name,
		"previous_name": event.PreviousName,
		"updated_at":    event.UpdatedAt,
	})
	return nil
}

// PublishRoleDeleted logs role.deleted events.
func (p *StubPublisher) PublishRoleDeleted(_ context.Context, event domain.RoleDeletedEvent) error {
	p.logEvent(EventRoleDeleted, event.DeletedAt, map[string]any{
		"role_id":    event.RoleID,
		"name":       event.Name,
		"deleted_at": event.DeletedAt,
	})
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
