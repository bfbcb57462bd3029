package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/infra/security"
)

const strongPassword = "Tr1cky-Viaduct-99!"

func newUserFixture(enterprises []domain.Enterprise, users ...domain.User) (*UserService, *fakeUserRepo, *fakePublisher) {
	userRepo := newFakeUserRepo(users...)
	publisher := &fakePublisher{}
	svc := NewUserService(userRepo, newFakeEnterpriseRepo(enterprises...), NewPermissionService(), publisher, security.DefaultPasswordValidator(), nil)
	return svc, userRepo, publisher
}

func TestCreateUser(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	svc, userRepo, publisher := newUserFixture([]domain.Enterprise{{ID: "ent-1", Name: "Acme"}}, ceo)

	created := time.Date(2026, time.April, 2, 10, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return created })

	user, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "  New.Hire@Example.COM ",
		FirstName:    "New",
		LastName:     "Hire",
		Password:     strongPassword,
		RoleCode:     "hr",
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if user.Email != "new.hire@example.com" {
		t.Errorf("email = %q, want normalized lowercase", user.Email)
	}
	if user.Role != domain.RoleHR {
		t.Errorf("role = %s, want hr", user.Role)
	}
	if !user.IsActive {
		t.Error("new users start active")
	}
	if user.PasswordHash == strongPassword || user.PasswordHash == "" {
		t.Error("password must be stored hashed")
	}
	ok, err := security.VerifyPassword(strongPassword, user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored hash must verify against the original password (ok=%v, err=%v)", ok, err)
	}
	if !user.CreatedAt.Equal(created) {
		t.Errorf("created at = %v, want %v", user.CreatedAt, created)
	}

	if _, err := userRepo.GetByID(context.Background(), user.ID); err != nil {
		t.Errorf("created user must be persisted: %v", err)
	}
	if len(publisher.userCreated) != 1 {
		t.Fatalf("expected 1 user created event, got %d", len(publisher.userCreated))
	}
	if publisher.userCreated[0].CreatedBy != ceo.ID {
		t.Errorf("event creator = %q, want %q", publisher.userCreated[0].CreatedBy, ceo.ID)
	}
}

func TestCreateUserDeniedByRoleTable(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	svc, _, publisher := newUserFixture([]domain.Enterprise{{ID: "ent-1"}}, ceo)

	_, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "m@example.com",
		Password:     strongPassword,
		RoleCode:     "manager",
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
	if len(publisher.userCreated) != 0 {
		t.Error("denied creation must publish nothing")
	}
}

func TestCreateUserUnknownRole(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	svc, _, _ := newUserFixture([]domain.Enterprise{{ID: "ent-1"}}, ceo)

	_, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "x@example.com",
		Password:     strongPassword,
		RoleCode:     "intern",
	})
	if !errors.Is(err, domain.ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestCreateUserEnterpriseNotFound(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	svc, _, _ := newUserFixture(nil, ceo)

	_, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "x@example.com",
		Password:     strongPassword,
		RoleCode:     "hr",
	})
	if !errors.Is(err, ErrEnterpriseNotFound) {
		t.Fatalf("expected ErrEnterpriseNotFound, got %v", err)
	}
}

func TestCreateUserEmailTaken(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	existing := testUser("hr1", "ent-1", domain.RoleHR)
	existing.Email = "taken@example.com"
	svc, _, _ := newUserFixture([]domain.Enterprise{{ID: "ent-1"}}, ceo, existing)

	_, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "Taken@Example.com",
		Password:     strongPassword,
		RoleCode:     "hr",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreateUserWeakPassword(t *testing.T) {
	ceo := testUser("ceo", "ent-1", domain.RoleCEO)
	svc, _, _ := newUserFixture([]domain.Enterprise{{ID: "ent-1"}}, ceo)

	_, err := svc.CreateUser(context.Background(), ceo, CreateUserInput{
		EnterpriseID: "ent-1",
		Email:        "x@example.com",
		Password:     "short",
		RoleCode:     "hr",
	})
	var policyErr *security.PasswordValidationError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected a password validation error, got %v", err)
	}
}

func TestGetUserVisibility(t *testing.T) {
	employee := testUser("emp", "ent-1", domain.RoleEmployee)
	peer := testUser("peer", "ent-1", domain.RoleEmployee)
	hr := testUser("hr", "ent-1", domain.RoleHR)
	svc, _, _ := newUserFixture(nil, employee, peer, hr)

	if _, err := svc.GetUser(context.Background(), hr, employee.ID); err != nil {
		t.Errorf("hr should see enterprise users: %v", err)
	}
	if _, err := svc.GetUser(context.Background(), peer, employee.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("peer visibility: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.GetUser(context.Background(), hr, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing target: expected ErrUserNotFound, got %v", err)
	}
}

func TestListEnterpriseUsers(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	manager := testUser("mgr", "ent-1", domain.RoleManager)
	inactive := testUser("old", "ent-1", domain.RoleEmployee)
	inactive.IsActive = false
	svc, _, _ := newUserFixture(nil, hr, manager, inactive)

	users, err := svc.ListEnterpriseUsers(context.Background(), hr, "ent-1")
	if err != nil {
		t.Fatalf("ListEnterpriseUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 active users, got %d", len(users))
	}

	if _, err := svc.ListEnterpriseUsers(context.Background(), manager, "ent-1"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("manager listing: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := svc.ListEnterpriseUsers(context.Background(), hr, "ent-2"); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("foreign enterprise: expected ErrPermissionDenied, got %v", err)
	}
}

func TestListUsersByRole(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	mgr1 := testUser("mgr1", "ent-1", domain.RoleManager)
	mgr2 := testUser("mgr2", "ent-1", domain.RoleManager)
	emp := testUser("emp", "ent-1", domain.RoleEmployee)
	svc, _, _ := newUserFixture(nil, hr, mgr1, mgr2, emp)

	users, err := svc.ListUsersByRole(context.Background(), hr, "ent-1", "Manager")
	if err != nil {
		t.Fatalf("ListUsersByRole: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 managers, got %d", len(users))
	}

	if _, err := svc.ListUsersByRole(context.Background(), hr, "ent-1", "supervisor"); !errors.Is(err, domain.ErrUnknownRole) {
		t.Errorf("unknown role code: expected ErrUnknownRole, got %v", err)
	}
}

func TestManagerReports(t *testing.T) {
	managerID := "mgr"
	manager := testUser(managerID, "ent-1", domain.RoleManager)
	report := testUser("emp", "ent-1", domain.RoleEmployee)
	report.ManagerID = &managerID
	other := testUser("emp2", "ent-1", domain.RoleEmployee)
	hr := testUser("hr", "ent-1", domain.RoleHR)
	svc, _, _ := newUserFixture(nil, manager, report, other, hr)

	reports, err := svc.ManagerReports(context.Background(), manager, managerID)
	if err != nil {
		t.Fatalf("ManagerReports: %v", err)
	}
	if len(reports) != 1 || reports[0].ID != report.ID {
		t.Errorf("unexpected reports: %+v", reports)
	}

	if _, err := svc.ManagerReports(context.Background(), hr, managerID); err != nil {
		t.Errorf("hr should read any manager's reports: %v", err)
	}
	if _, err := svc.ManagerReports(context.Background(), other, managerID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("employee reading another's reports: expected ErrPermissionDenied, got %v", err)
	}
}

func TestDeactivateUser(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	employee := testUser("emp", "ent-1", domain.RoleEmployee)
	svc, userRepo, publisher := newUserFixture(nil, hr, employee)

	if err := svc.DeactivateUser(context.Background(), hr, employee.ID); err != nil {
		t.Fatalf("DeactivateUser: %v", err)
	}

	stored, err := userRepo.GetByID(context.Background(), employee.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.IsActive {
		t.Error("target must be marked inactive")
	}
	if len(publisher.userDeactivated) != 1 {
		t.Fatalf("expected 1 deactivation event, got %d", len(publisher.userDeactivated))
	}
	if publisher.userDeactivated[0].DeactivatedBy != hr.ID {
		t.Errorf("event actor = %q, want %q", publisher.userDeactivated[0].DeactivatedBy, hr.ID)
	}
}

func TestDeactivateUserSelfDenied(t *testing.T) {
	apex := testUser("root", "", domain.RoleSuperAdmin)
	svc, userRepo, _ := newUserFixture(nil, apex)

	if err := svc.DeactivateUser(context.Background(), apex, apex.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("self deactivation: expected ErrPermissionDenied, got %v", err)
	}
	stored, _ := userRepo.GetByID(context.Background(), apex.ID)
	if !stored.IsActive {
		t.Error("denied deactivation must leave the account active")
	}
}

func TestAssignManager(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	employee := testUser("emp", "ent-1", domain.RoleEmployee)
	manager := testUser("mgr", "ent-1", domain.RoleManager)
	svc, userRepo, publisher := newUserFixture(nil, hr, employee, manager)

	if err := svc.AssignManager(context.Background(), hr, employee.ID, manager.ID); err != nil {
		t.Fatalf("AssignManager: %v", err)
	}

	stored, _ := userRepo.GetByID(context.Background(), employee.ID)
	if stored.ManagerID == nil || *stored.ManagerID != manager.ID {
		t.Error("manager reference must be persisted")
	}
	if len(publisher.managerAssignment) != 1 {
		t.Fatalf("expected 1 assignment event, got %d", len(publisher.managerAssignment))
	}
}

func TestAssignManagerIneligibleCandidate(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	employee := testUser("emp", "ent-1", domain.RoleEmployee)
	peer := testUser("emp2", "ent-1", domain.RoleEmployee)
	svc, userRepo, _ := newUserFixture(nil, hr, employee, peer)

	if err := svc.AssignManager(context.Background(), hr, employee.ID, peer.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("employee candidate: expected ErrPermissionDenied, got %v", err)
	}
	stored, _ := userRepo.GetByID(context.Background(), employee.ID)
	if stored.ManagerID != nil {
		t.Error("denied assignment must write nothing")
	}
}

func TestAssignManagerMissingCandidate(t *testing.T) {
	hr := testUser("hr", "ent-1", domain.RoleHR)
	employee := testUser("emp", "ent-1", domain.RoleEmployee)
	svc, _, _ := newUserFixture(nil, hr, employee)

	if err := svc.AssignManager(context.Background(), hr, employee.ID, "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing candidate: expected ErrUserNotFound, got %v", err)
	}
}
