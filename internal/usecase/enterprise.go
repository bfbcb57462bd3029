package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/repository"
)

// EnterpriseService manages the enterprise registry. Only roles with the
// enterprise-management flag may write to it.
type EnterpriseService struct {
	enterprises port.EnterpriseRepository
	perms       *PermissionService
	logger      *zap.Logger
	now         func() time.Time
}

// NewEnterpriseService constructs an EnterpriseService.
func NewEnterpriseService(enterprises port.EnterpriseRepository, perms *PermissionService, log *zap.Logger) *EnterpriseService {
	if log == nil {
		log = zap.NewNop()
	}
	return &EnterpriseService{
		enterprises: enterprises,
		perms:       perms,
		logger:      log,
		now:         time.Now,
	}
}

// CreateEnterprise registers a new enterprise.
func (s *EnterpriseService) CreateEnterprise(ctx context.Context, actor domain.User, name string) (*domain.Enterprise, error) {
	if !s.perms.CanManageEnterprise(actor) {
		return nil, ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("enterprise name is required")
	}

	enterprise := domain.Enterprise{
		ID:        uuid.NewString(),
		Name:      name,
		IsActive:  true,
		CreatedAt: s.now().UTC(),
	}

	if err := s.enterprises.Create(ctx, enterprise); err != nil {
		return nil, fmt.Errorf("create enterprise: %w", err)
	}

	s.logger.Info("enterprise created",
		zap.String("enterprise_id", enterprise.ID),
		zap.String("created_by", actor.ID),
	)

	return &enterprise, nil
}

// GetEnterprise returns an enterprise by id.
func (s *EnterpriseService) GetEnterprise(ctx context.Context, actor domain.User, id string) (*domain.Enterprise, error) {
	if !s.perms.CanManageEnterprise(actor) && actor.EnterpriseID != id {
		return nil, ErrPermissionDenied
	}

	enterprise, err := s.enterprises.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("get enterprise: %w", err)
	}

	return enterprise, nil
}

// ListEnterprises returns every registered enterprise.
func (s *EnterpriseService) ListEnterprises(ctx context.Context, actor domain.User) ([]domain.Enterprise, error) {
	if !s.perms.CanManageEnterprise(actor) {
		return nil, ErrPermissionDenied
	}
	return s.enterprises.List(ctx)
}
