package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishPageAccessChanged logs uas.page_access.changed events.
func (p *StubPublisher) PublishPageAccessChanged(_ context.Context, event domain.PageAccessChangedEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"enterprise_id": event.EnterpriseID,
		"page":          string(event.Page),
		"granted":       event.Granted,
		"changed_by":    event.ChangedBy,
		"reason":        event.Reason,
		"changed_at":    event.ChangedAt,
	}
	p.logEvent("page_access.changed", event.UserID, event.ChangedAt, payload)
	return nil
}

// PublishUserCreated logs uas.user.created events.
func (p *StubPublisher) PublishUserCreated(_ context.Context, event domain.UserCreatedEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"enterprise_id": event.EnterpriseID,
		"email":         event.Email,
		"role":          string(event.Role),
		"created_by":    event.CreatedBy,
		"created_at":    event.CreatedAt,
	}
	p.logEvent("user.created", event.UserID, event.CreatedAt, payload)
	return nil
}

// PublishUserDeactivated logs uas.user.deactivated events.
func (p *StubPublisher) PublishUserDeactivated(_ context.Context, event domain.UserDeactivatedEvent) error {
	payload := map[string]any{
		"user_id":        event.UserID,
		"enterprise_id":  event.EnterpriseID,
		"deactivated_by": event.DeactivatedBy,
		"deactivated_at": event.DeactivatedAt,
	}
	p.logEvent("user.deactivated", event.UserID, event.DeactivatedAt, payload)
	return nil
}

// PublishManagerAssigned logs uas.user.manager_assigned events.
func (p *StubPublisher) PublishManagerAssigned(_ context.Context, event domain.ManagerAssignedEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"enterprise_id": event.EnterpriseID,
		"manager_id":    event.ManagerID,
		"assigned_by":   event.AssignedBy,
		"assigned_at":   event.AssignedAt,
	}
	p.logEvent("user.manager_assigned", event.UserID, event.AssignedAt, payload)
	return nil
}

var _ port.EventPublisher = (*StubPublisher)(nil)
