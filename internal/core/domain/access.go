package domain

import "time"

// PageAccess is an explicit per-user, per-page decision that supersedes the
// catalog default in both directions. At most one record exists per
// (user, page) pair; a later grant or revoke mutates the existing record
// rather than creating a new one.
type PageAccess struct {
	ID         string
	UserID     string
	Page       Page
	Granted    bool
	GrantedBy  string
	Reason     string
	CreatedAt  time.Time
	ModifiedAt time.Time
}
