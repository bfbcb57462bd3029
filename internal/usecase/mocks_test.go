package usecase

import (
	"context"
	"sort"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.User

	getErr error
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User, len(users))}
	for i := range users {
		user := users[i]
		repo.users[user.ID] = &user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user domain.User) error {
	r.users[user.ID] = &user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmailAndEnterprise(_ context.Context, email, enterpriseID string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.EnterpriseID == enterpriseID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ListByEnterprise(_ context.Context, enterpriseID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.EnterpriseID == enterpriseID && user.IsActive {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByRoleInEnterprise(_ context.Context, enterpriseID string, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.EnterpriseID == enterpriseID && user.Role == role && user.IsActive {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListReports(_ context.Context, managerID, enterpriseID string) ([]domain.User, error) {
	var out []domain.User
	for _, user := range r.users {
		if user.EnterpriseID == enterpriseID && user.ManagerID != nil && *user.ManagerID == managerID {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.IsActive = false
	return nil
}

func (r *fakeUserRepo) SetManager(_ context.Context, id, managerID string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.ManagerID = &managerID
	return nil
}

var _ port.UserRepository = (*fakeUserRepo)(nil)

type fakePageAccessRepo struct {
	records map[string]*domain.PageAccess

	findErr    error
	upsertErr  map[domain.Page]error
	nextRecord int
}

func newFakePageAccessRepo() *fakePageAccessRepo {
	return &fakePageAccessRepo{
		records:   make(map[string]*domain.PageAccess),
		upsertErr: make(map[domain.Page]error),
	}
}

func (r *fakePageAccessRepo) key(userID string, page domain.Page) string {
	return userID + "|" + string(page)
}

func (r *fakePageAccessRepo) Find(_ context.Context, userID string, page domain.Page) (*domain.PageAccess, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	record, ok := r.records[r.key(userID, page)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

func (r *fakePageAccessRepo) upsert(write port.PageAccessWrite, granted bool) (*domain.PageAccess, error) {
	if err := r.upsertErr[write.Page]; err != nil {
		return nil, err
	}

	key := r.key(write.UserID, write.Page)
	if existing, ok := r.records[key]; ok {
		existing.Granted = granted
		existing.GrantedBy = write.GrantedBy
		existing.Reason = write.Reason
		existing.ModifiedAt = write.At
		copied := *existing
		return &copied, nil
	}

	r.nextRecord++
	record := &domain.PageAccess{
		ID:         string(rune('a' + r.nextRecord)),
		UserID:     write.UserID,
		Page:       write.Page,
		Granted:    granted,
		GrantedBy:  write.GrantedBy,
		Reason:     write.Reason,
		CreatedAt:  write.At,
		ModifiedAt: write.At,
	}
	r.records[key] = record
	copied := *record
	return &copied, nil
}

func (r *fakePageAccessRepo) UpsertGrant(_ context.Context, write port.PageAccessWrite) (*domain.PageAccess, error) {
	return r.upsert(write, true)
}

func (r *fakePageAccessRepo) UpsertRevoke(_ context.Context, write port.PageAccessWrite) (*domain.PageAccess, error) {
	return r.upsert(write, false)
}

func (r *fakePageAccessRepo) list(userID string, filter func(*domain.PageAccess) bool) []domain.PageAccess {
	var out []domain.PageAccess
	for _, record := range r.records {
		if record.UserID == userID && filter(record) {
			out = append(out, *record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Page < out[j].Page })
	return out
}

func (r *fakePageAccessRepo) ListForUser(_ context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(userID, func(*domain.PageAccess) bool { return true }), nil
}

func (r *fakePageAccessRepo) ListGranted(_ context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(userID, func(rec *domain.PageAccess) bool { return rec.Granted }), nil
}

func (r *fakePageAccessRepo) ListRevoked(_ context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(userID, func(rec *domain.PageAccess) bool { return !rec.Granted }), nil
}

var _ port.PageAccessRepository = (*fakePageAccessRepo)(nil)

type fakeEnterpriseRepo struct {
	enterprises map[string]*domain.Enterprise
}

func newFakeEnterpriseRepo(enterprises ...domain.Enterprise) *fakeEnterpriseRepo {
	repo := &fakeEnterpriseRepo{enterprises: make(map[string]*domain.Enterprise, len(enterprises))}
	for i := range enterprises {
		enterprise := enterprises[i]
		repo.enterprises[enterprise.ID] = &enterprise
	}
	return repo
}

func (r *fakeEnterpriseRepo) Create(_ context.Context, enterprise domain.Enterprise) error {
	r.enterprises[enterprise.ID] = &enterprise
	return nil
}

func (r *fakeEnterpriseRepo) GetByID(_ context.Context, id string) (*domain.Enterprise, error) {
	enterprise, ok := r.enterprises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *enterprise
	return &copied, nil
}

func (r *fakeEnterpriseRepo) List(_ context.Context) ([]domain.Enterprise, error) {
	var out []domain.Enterprise
	for _, enterprise := range r.enterprises {
		out = append(out, *enterprise)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var _ port.EnterpriseRepository = (*fakeEnterpriseRepo)(nil)

type fakePublisher struct {
	pageAccessEvents  []domain.PageAccessChangedEvent
	userCreated       []domain.UserCreatedEvent
	userDeactivated   []domain.UserDeactivatedEvent
	managerAssignment []domain.ManagerAssignedEvent
}

func (p *fakePublisher) PublishPageAccessChanged(_ context.Context, event domain.PageAccessChangedEvent) error {
	p.pageAccessEvents = append(p.pageAccessEvents, event)
	return nil
}

func (p *fakePublisher) PublishUserCreated(_ context.Context, event domain.UserCreatedEvent) error {
	p.userCreated = append(p.userCreated, event)
	return nil
}

func (p *fakePublisher) PublishUserDeactivated(_ context.Context, event domain.UserDeactivatedEvent) error {
	p.userDeactivated = append(p.userDeactivated, event)
	return nil
}

func (p *fakePublisher) PublishManagerAssigned(_ context.Context, event domain.ManagerAssignedEvent) error {
	p.managerAssignment = append(p.managerAssignment, event)
	return nil
}

var _ port.EventPublisher = (*fakePublisher)(nil)
