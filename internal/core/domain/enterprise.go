package domain

import "time"

// Enterprise is the tenant boundary. Users and page access overrides are
// scoped to exactly one enterprise.
type Enterprise struct {
	ID        string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}
