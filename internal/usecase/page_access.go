package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/infra/logger"
	"github.com/peoplehub/user-access-service/internal/repository"
)

// DecisionRecorder counts access decisions for observability.
type DecisionRecorder interface {
	RecordDecision(outcome, source string)
}

// PageAccessService combines the page catalog defaults with per-user
// overrides. An override always wins over the catalog default, in both
// directions; the catalog is only the fallback.
type PageAccessService struct {
	users     port.UserRepository
	access    port.PageAccessRepository
	perms     *PermissionService
	events    port.EventPublisher
	decisions DecisionRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewPageAccessService constructs a PageAccessService.
func NewPageAccessService(users port.UserRepository, access port.PageAccessRepository, perms *PermissionService, events port.EventPublisher, log *zap.Logger) *PageAccessService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PageAccessService{
		users:  users,
		access: access,
		perms:  perms,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// WithClock allows injection of a custom clock (primarily for testing).
func (s *PageAccessService) WithClock(now func() time.Time) *PageAccessService {
	if now != nil {
		s.now = now
	}
	return s
}

// WithDecisionRecorder attaches a decision counter.
func (s *PageAccessService) WithDecisionRecorder(recorder DecisionRecorder) *PageAccessService {
	s.decisions = recorder
	return s
}

func (s *PageAccessService) recordDecision(allowed bool, source string) {
	if s.decisions == nil {
		return
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	s.decisions.RecordDecision(outcome, source)
}

// EffectiveAccess decides whether the user may reach the page. An existing
// override is returned verbatim; absence falls back to the catalog default.
// A store failure propagates as an error and is never coerced to a decision.
func (s *PageAccessService) EffectiveAccess(ctx context.Context, user domain.User, page domain.Page) (bool, error) {
	record, err := s.access.Find(ctx, user.ID, page)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			allowed := page.AllowsRole(user.Role)
			s.recordDecision(allowed, "default")
			return allowed, nil
		}
		return false, fmt.Errorf("find page access: %w", err)
	}
	s.recordDecision(record.Granted, "override")
	return record.Granted, nil
}

// Grant writes a force-allow override for the target user and page.
func (s *PageAccessService) Grant(ctx context.Context, admin domain.User, targetUserID string, page domain.Page, reason string) (*domain.PageAccess, error) {
	target, err := s.authorizeOverride(ctx, admin, targetUserID)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, admin, *target, page, reason, true)
}

// Revoke writes a force-deny override for the target user and page.
func (s *PageAccessService) Revoke(ctx context.Context, admin domain.User, targetUserID string, page domain.Page, reason string) (*domain.PageAccess, error) {
	target, err := s.authorizeOverride(ctx, admin, targetUserID)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, admin, *target, page, reason, false)
}

// PageAccessItemResult carries the per-page outcome of a batch operation.
type PageAccessItemResult struct {
	Page   domain.Page
	Record *domain.PageAccess
	Err    error
}

// GrantMany grants each page independently. Every page is a separate atomic
// upsert; one failed item does not roll back the others.
func (s *PageAccessService) GrantMany(ctx context.Context, admin domain.User, targetUserID string, pages []domain.Page, reason string) ([]PageAccessItemResult, error) {
	return s.writeMany(ctx, admin, targetUserID, pages, reason, true)
}

// RevokeMany revokes each page independently, mirroring GrantMany.
func (s *PageAccessService) RevokeMany(ctx context.Context, admin domain.User, targetUserID string, pages []domain.Page, reason string) ([]PageAccessItemResult, error) {
	return s.writeMany(ctx, admin, targetUserID, pages, reason, false)
}

func (s *PageAccessService) writeMany(ctx context.Context, admin domain.User, targetUserID string, pages []domain.Page, reason string, granted bool) ([]PageAccessItemResult, error) {
	target, err := s.authorizeOverride(ctx, admin, targetUserID)
	if err != nil {
		return nil, err
	}

	results := make([]PageAccessItemResult, 0, len(pages))
	for _, page := range pages {
		record, err := s.write(ctx, admin, *target, page, reason, granted)
		results = append(results, PageAccessItemResult{Page: page, Record: record, Err: err})
	}
	return results, nil
}

// ListOverrides returns every override recorded for the target user, for an
// admin eligible to manage page access in the target's enterprise.
func (s *PageAccessService) ListOverrides(ctx context.Context, admin domain.User, targetUserID string) ([]domain.PageAccess, error) {
	target, err := s.authorizeOverride(ctx, admin, targetUserID)
	if err != nil {
		if errors.Is(err, ErrCannotManageAdminAccess) {
			// Viewing override history is allowed even for roles whose
			// overrides cannot be written.
			return s.access.ListForUser(ctx, targetUserID)
		}
		return nil, err
	}
	return s.access.ListForUser(ctx, target.ID)
}

// MyOverrides returns the calling user's own override records.
func (s *PageAccessService) MyOverrides(ctx context.Context, user domain.User) ([]domain.PageAccess, error) {
	return s.access.ListForUser(ctx, user.ID)
}

// AccessiblePages returns the pages the user can reach right now: the role
// defaults, plus custom grants, minus custom revokes, ordered by page id.
func (s *PageAccessService) AccessiblePages(ctx context.Context, user domain.User) ([]domain.Page, error) {
	allowed := make(map[domain.Page]bool)
	for _, page := range domain.AccessiblePages(user.Role) {
		allowed[page] = true
	}

	granted, err := s.access.ListGranted(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list granted overrides: %w", err)
	}
	for _, record := range granted {
		allowed[record.Page] = true
	}

	revoked, err := s.access.ListRevoked(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list revoked overrides: %w", err)
	}
	for _, record := range revoked {
		delete(allowed, record.Page)
	}

	pages := make([]domain.Page, 0, len(allowed))
	for page := range allowed {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i] < pages[j] })

	return pages, nil
}

// authorizeOverride runs the override-management preconditions in order,
// first failure wins: admin eligibility, target existence, enterprise
// boundary (SUPER_ADMIN is enterprise-unbound), and the target-role guard.
func (s *PageAccessService) authorizeOverride(ctx context.Context, admin domain.User, targetUserID string) (*domain.User, error) {
	if !s.perms.CanManagePageAccess(admin) {
		return nil, ErrPermissionDenied
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get target user: %w", err)
	}

	if admin.Role != domain.RoleSuperAdmin && admin.EnterpriseID != target.EnterpriseID {
		return nil, ErrCrossEnterpriseDenied
	}

	if target.Role == domain.RoleSuperAdmin || target.Role == domain.RoleCEO {
		return nil, ErrCannotManageAdminAccess
	}

	return target, nil
}

func (s *PageAccessService) write(ctx context.Context, admin domain.User, target domain.User, page domain.Page, reason string, granted bool) (*domain.PageAccess, error) {
	write := port.PageAccessWrite{
		UserID:    target.ID,
		Page:      page,
		GrantedBy: admin.ID,
		Reason:    reason,
		At:        s.now().UTC(),
	}

	var (
		record *domain.PageAccess
		err    error
	)
	if granted {
		record, err = s.access.UpsertGrant(ctx, write)
	} else {
		record, err = s.access.UpsertRevoke(ctx, write)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert page access: %w", err)
	}

	s.logger.Info("page access override written",
		zap.String("page", string(page)),
		zap.Bool("granted", granted),
		zap.String("target_email", logger.MaskEmail(target.Email)),
		zap.String("admin_email", logger.MaskEmail(admin.Email)),
	)

	if s.events != nil {
		event := domain.PageAccessChangedEvent{
			UserID:       target.ID,
			EnterpriseID: target.EnterpriseID,
			Page:         page,
			Granted:      granted,
			ChangedBy:    admin.ID,
			Reason:       reason,
			ChangedAt:    record.ModifiedAt,
		}
		if err := s.events.PublishPageAccessChanged(ctx, event); err != nil {
			s.logger.Warn("publish page access event failed", zap.Error(err))
		}
	}

	return record, nil
}
