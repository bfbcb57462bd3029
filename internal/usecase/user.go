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
	"github.com/peoplehub/user-access-service/internal/infra/logger"
	"github.com/peoplehub/user-access-service/internal/infra/security"
	"github.com/peoplehub/user-access-service/internal/repository"
)

// CreateUserInput captures the payload for provisioning a user.
type CreateUserInput struct {
	EnterpriseID string
	Email        string
	FirstName    string
	LastName     string
	Password     string
	RoleCode     string
	ManagerID    *string
}

// UserService manages user lifecycle, gated by the permission decision core.
type UserService struct {
	users       port.UserRepository
	enterprises port.EnterpriseRepository
	perms       *PermissionService
	events      port.EventPublisher
	validator   *security.PasswordValidator
	logger      *zap.Logger
	now         func() time.Time
}

// NewUserService constructs a UserService.
func NewUserService(users port.UserRepository, enterprises port.EnterpriseRepository, perms *PermissionService, events port.EventPublisher, validator *security.PasswordValidator, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{
		users:       users,
		enterprises: enterprises,
		perms:       perms,
		events:      events,
		validator:   validator,
		logger:      log,
		now:         time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (s *UserService) WithClock(now func() time.Time) *UserService {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateUser provisions a new user after checking the actor's creation rights
// against the role table and the enterprise boundary.
func (s *UserService) CreateUser(ctx context.Context, actor domain.User, input CreateUserInput) (*domain.User, error) {
	role, err := domain.ParseRole(input.RoleCode)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	if !s.perms.CanCreateUser(actor, role, input.EnterpriseID) {
		s.logger.Warn("user creation denied",
			zap.String("actor_email", logger.MaskEmail(actor.Email)),
			zap.String("target_role", string(role)),
		)
		return nil, ErrPermissionDenied
	}

	if _, err := s.enterprises.GetByID(ctx, input.EnterpriseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnterpriseNotFound
		}
		return nil, fmt.Errorf("get enterprise: %w", err)
	}

	if existing, err := s.users.GetByEmailAndEnterprise(ctx, email, input.EnterpriseID); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("lookup user by email: %w", err)
	}

	if err := s.validator.Validate(input.Password); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	createdAt := s.now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		EnterpriseID: input.EnterpriseID,
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		ManagerID:    input.ManagerID,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.events != nil {
		event := domain.UserCreatedEvent{
			UserID:       user.ID,
			EnterpriseID: user.EnterpriseID,
			Email:        user.Email,
			Role:         user.Role,
			CreatedBy:    actor.ID,
			CreatedAt:    createdAt,
		}
		if err := s.events.PublishUserCreated(ctx, event); err != nil {
			s.logger.Warn("publish user created event failed", zap.Error(err))
		}
	}

	return &user, nil
}

// GetUser retrieves a user, subject to the viewer's visibility rules.
func (s *UserService) GetUser(ctx context.Context, viewer domain.User, targetID string) (*domain.User, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !s.perms.CanViewUserDetails(viewer, *target) {
		return nil, ErrPermissionDenied
	}

	return target, nil
}

// ListEnterpriseUsers returns the active users of an enterprise for viewers
// with enterprise-wide visibility.
func (s *UserService) ListEnterpriseUsers(ctx context.Context, viewer domain.User, enterpriseID string) ([]domain.User, error) {
	if !s.perms.HasEnterpriseVisibility(viewer, enterpriseID) {
		return nil, ErrPermissionDenied
	}
	return s.users.ListByEnterprise(ctx, enterpriseID)
}

// ListUsersByRole returns the active users holding a role in an enterprise.
// The role code is resolved against the closed role set; anything else is a
// data-integrity error, never silently matched.
func (s *UserService) ListUsersByRole(ctx context.Context, viewer domain.User, enterpriseID, roleCode string) ([]domain.User, error) {
	role, err := domain.ParseRole(roleCode)
	if err != nil {
		return nil, err
	}
	if !s.perms.HasEnterpriseVisibility(viewer, enterpriseID) {
		return nil, ErrPermissionDenied
	}
	return s.users.ListByRoleInEnterprise(ctx, enterpriseID, role)
}

// ManagerReports returns the direct reports of a manager.
func (s *UserService) ManagerReports(ctx context.Context, viewer domain.User, managerID string) ([]domain.User, error) {
	manager, err := s.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get manager: %w", err)
	}

	if viewer.ID != manager.ID && !s.perms.HasEnterpriseVisibility(viewer, manager.EnterpriseID) {
		return nil, ErrPermissionDenied
	}

	return s.users.ListReports(ctx, manager.ID, manager.EnterpriseID)
}

// DeactivateUser soft-deletes the target after consulting the deactivation
// table. A revoked user keeps any issued credentials until their next check.
func (s *UserService) DeactivateUser(ctx context.Context, actor domain.User, targetID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get target user: %w", err)
	}

	if !s.perms.CanDeactivateUser(actor, *target) {
		return ErrPermissionDenied
	}

	if err := s.users.Deactivate(ctx, target.ID); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	s.logger.Info("user deactivated",
		zap.String("target_email", logger.MaskEmail(target.Email)),
		zap.String("actor_email", logger.MaskEmail(actor.Email)),
	)

	if s.events != nil {
		event := domain.UserDeactivatedEvent{
			UserID:        target.ID,
			EnterpriseID:  target.EnterpriseID,
			DeactivatedBy: actor.ID,
			DeactivatedAt: s.now().UTC(),
		}
		if err := s.events.PublishUserDeactivated(ctx, event); err != nil {
			s.logger.Warn("publish user deactivated event failed", zap.Error(err))
		}
	}

	return nil
}

// AssignManager sets the target's manager reference after consulting the
// assignment rules.
func (s *UserService) AssignManager(ctx context.Context, actor domain.User, targetID, managerID string) error {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get target user: %w", err)
	}

	candidate, err := s.users.GetByID(ctx, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get candidate manager: %w", err)
	}

	if !s.perms.CanAssignManager(actor, *target, *candidate) {
		return ErrPermissionDenied
	}

	if err := s.users.SetManager(ctx, target.ID, candidate.ID); err != nil {
		return fmt.Errorf("set manager: %w", err)
	}

	if s.events != nil {
		event := domain.ManagerAssignedEvent{
			UserID:       target.ID,
			EnterpriseID: target.EnterpriseID,
			ManagerID:    candidate.ID,
			AssignedBy:   actor.ID,
			AssignedAt:   s.now().UTC(),
		}
		if err := s.events.PublishManagerAssigned(ctx, event); err != nil {
			s.logger.Warn("publish manager assigned event failed", zap.Error(err))
		}
	}

	return nil
}
