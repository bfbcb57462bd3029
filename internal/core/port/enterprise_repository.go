package port

import (
	"context"

	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// EnterpriseRepository exposes persistence behavior for enterprises.
type EnterpriseRepository interface {
	Create(ctx context.Context, enterprise domain.Enterprise) error
	GetByID(ctx context.Context, id string) (*domain.Enterprise, error)
	List(ctx context.Context) ([]domain.Enterprise, error)
}
