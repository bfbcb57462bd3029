package port

import (
	"context"

	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// EventPublisher publishes domain events to the message bus.
type EventPublisher interface {
	PublishPageAccessChanged(ctx context.Context, event domain.PageAccessChangedEvent) error
	PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error
	PublishUserDeactivated(ctx context.Context, event domain.UserDeactivatedEvent) error
	PublishManagerAssigned(ctx context.Context, event domain.ManagerAssignedEvent) error
}
