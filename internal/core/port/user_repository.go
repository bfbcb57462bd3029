package port

import (
	"context"

	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// UserRepository exposes persistence behavior for users. The authorization
// engine consumes it read-only except for deactivation and manager updates.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmailAndEnterprise(ctx context.Context, email, enterpriseID string) (*domain.User, error)
	ListByEnterprise(ctx context.Context, enterpriseID string) ([]domain.User, error)
	ListByRoleInEnterprise(ctx context.Context, enterpriseID string, role domain.Role) ([]domain.User, error)
	ListReports(ctx context.Context, managerID, enterpriseID string) ([]domain.User, error)
	Deactivate(ctx context.Context, id string) error
	SetManager(ctx context.Context, id, managerID string) error
}
