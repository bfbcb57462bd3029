package domain

import "time"

// PageAccessChangedEvent is emitted whenever an override is written, for both
// grants and revokes.
type PageAccessChangedEvent struct {
	UserID       string
	EnterpriseID string
	Page         Page
	Granted      bool
	ChangedBy    string
	Reason       string
	ChangedAt    time.Time
}

// UserCreatedEvent is emitted after a user is provisioned.
type UserCreatedEvent struct {
	UserID       string
	EnterpriseID string
	Email        string
	Role         Role
	CreatedBy    string
	CreatedAt    time.Time
}

// UserDeactivatedEvent is emitted after a user is soft-deleted.
type UserDeactivatedEvent struct {
	UserID        string
	EnterpriseID  string
	DeactivatedBy string
	DeactivatedAt time.Time
}

// ManagerAssignedEvent is emitted after a manager reference changes.
type ManagerAssignedEvent struct {
	UserID       string
	EnterpriseID string
	ManagerID    string
	AssignedBy   string
	AssignedAt   time.Time
}
