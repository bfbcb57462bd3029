package port

import (
	"context"
	"time"

	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// PageAccessWrite captures the fields written on every grant or revoke.
type PageAccessWrite struct {
	UserID    string
	Page      domain.Page
	GrantedBy string
	Reason    string
	At        time.Time
}

// PageAccessRepository persists per-(user, page) override records. The store
// performs no user or page existence validation; that is the engine's job.
// Upserts must be atomic per (user, page) key so that at most one record ever
// exists per pair.
type PageAccessRepository interface {
	Find(ctx context.Context, userID string, page domain.Page) (*domain.PageAccess, error)
	UpsertGrant(ctx context.Context, write PageAccessWrite) (*domain.PageAccess, error)
	UpsertRevoke(ctx context.Context, write PageAccessWrite) (*domain.PageAccess, error)
	ListForUser(ctx context.Context, userID string) ([]domain.PageAccess, error)
	ListGranted(ctx context.Context, userID string) ([]domain.PageAccess, error)
	ListRevoked(ctx context.Context, userID string) ([]domain.PageAccess, error)
}
