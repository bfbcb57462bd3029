package domain

import "time"

// User mirrors the persisted representation in the users table. The
// authorization engine treats it as read-only input; every user belongs to
// exactly one enterprise except SUPER_ADMIN, which is enterprise-unbound.
type User struct {
	ID           string
	EnterpriseID string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	ManagerID    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName returns the display name for the user.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// SameEnterprise reports whether both users belong to the same enterprise.
func (u User) SameEnterprise(other User) bool {
	return u.EnterpriseID == other.EnterpriseID
}
