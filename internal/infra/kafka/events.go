package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/infra/config"
)

const schemaVersion = "1.0"

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
	UserID    string           `json:"user_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	envelope := eventEnvelope{
		EventID:   uuid.NewString(),
		EventType: eventType,
		UserID:    userID,
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
		Key:   sarama.StringEncoder(userID),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishPageAccessChanged publishes uas.page_access.changed events.
func (p *EventPublisher) PublishPageAccessChanged(ctx context.Context, event domain.PageAccessChangedEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		EnterpriseID string    `json:"enterprise_id"`
		Page         string    `json:"page"`
		Granted      bool      `json:"granted"`
		ChangedBy    string    `json:"changed_by"`
		Reason       string    `json:"reason,omitempty"`
		ChangedAt    time.Time `json:"changed_at"`
	}{
		UserID:       event.UserID,
		EnterpriseID: event.EnterpriseID,
		Page:         string(event.Page),
		Granted:      event.Granted,
		ChangedBy:    event.ChangedBy,
		Reason:       event.Reason,
		ChangedAt:    event.ChangedAt.UTC(),
	}

	return p.publish(ctx, "page_access.changed", event.UserID, event.ChangedAt, payload)
}

// PublishUserCreated publishes uas.user.created events.
func (p *EventPublisher) PublishUserCreated(ctx context.Context, event domain.UserCreatedEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		EnterpriseID string    `json:"enterprise_id"`
		Email        string    `json:"email"`
		Role         string    `json:"role"`
		CreatedBy    string    `json:"created_by"`
		CreatedAt    time.Time `json:"created_at"`
	}{
		UserID:       event.UserID,
		EnterpriseID: event.EnterpriseID,
		Email:        event.Email,
		Role:         string(event.Role),
		CreatedBy:    event.CreatedBy,
		CreatedAt:    event.CreatedAt.UTC(),
	}

	return p.publish(ctx, "user.created", event.UserID, event.CreatedAt, payload)
}

// PublishUserDeactivated publishes uas.user.deactivated events.
func (p *EventPublisher) PublishUserDeactivated(ctx context.Context, event domain.UserDeactivatedEvent) error {
	payload := struct {
		UserID        string    `json:"user_id"`
		EnterpriseID  string    `json:"enterprise_id"`
		DeactivatedBy string    `json:"deactivated_by"`
		DeactivatedAt time.Time `json:"deactivated_at"`
	}{
		UserID:        event.UserID,
		EnterpriseID:  event.EnterpriseID,
		DeactivatedBy: event.DeactivatedBy,
		DeactivatedAt: event.DeactivatedAt.UTC(),
	}

	return p.publish(ctx, "user.deactivated", event.UserID, event.DeactivatedAt, payload)
}

// PublishManagerAssigned publishes uas.user.manager_assigned events.
func (p *EventPublisher) PublishManagerAssigned(ctx context.Context, event domain.ManagerAssignedEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		EnterpriseID string    `json:"enterprise_id"`
		ManagerID    string    `json:"manager_id"`
		AssignedBy   string    `json:"assigned_by"`
		AssignedAt   time.Time `json:"assigned_at"`
	}{
		UserID:       event.UserID,
		EnterpriseID: event.EnterpriseID,
		ManagerID:    event.ManagerID,
		AssignedBy:   event.AssignedBy,
		AssignedAt:   event.AssignedAt.UTC(),
	}

	return p.publish(ctx, "user.manager_assigned", event.UserID, event.AssignedAt, payload)
}

var _ port.EventPublisher = (*EventPublisher)(nil)
