package port

import (
	"context"

	"github.com/onmind/role-service/internal/core/domain"
)

// EventPublisher publishes role lifecycle events to the message bus.
type EventPublisher interface {
	PublishRoleCreated(ctx context.Context, event domain.RoleCreatedEvent) error
	PublishRoleUpdated(ctx context.Context, event domain.RoleUpdatedEvent) error
	PublishRoleDeleted(ctx context.Context, event domain.RoleDeletedEvent) error
}
