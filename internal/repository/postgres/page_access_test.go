package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/repository"
)

func pageAccessRows(mock pgxmock.PgxPoolIface, records ...domain.PageAccess) *pgxmock.Rows {
	rows := mock.NewRows([]string{"id", "user_id", "page_id", "granted", "granted_by", "reason", "created_at", "modified_at"})
	for _, r := range records {
		rows.AddRow(r.ID, r.UserID, string(r.Page), r.Granted, r.GrantedBy, r.Reason, r.CreatedAt, r.ModifiedAt)
	}
	return rows
}

func TestPageAccessRepository_UpsertGrant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPageAccessRepository(mock)

	now := time.Now().UTC()
	stored := domain.PageAccess{
		ID:         "pa-1",
		UserID:     "user-1",
		Page:       domain.PageSalaryManagement,
		Granted:    true,
		GrantedBy:  "admin-1",
		Reason:     "temporary audit access",
		CreatedAt:  now,
		ModifiedAt: now,
	}

	mock.ExpectQuery(`INSERT INTO uas\.user_page_access`).
		WithArgs(pgxmock.AnyArg(), "user-1", "salary_management", true, "admin-1", "temporary audit access", now).
		WillReturnRows(pageAccessRows(mock, stored))

	record, err := repo.UpsertGrant(context.Background(), port.PageAccessWrite{
		UserID:    "user-1",
		Page:      domain.PageSalaryManagement,
		GrantedBy: "admin-1",
		Reason:    "temporary audit access",
		At:        now,
	})
	if err != nil {
		t.Fatalf("UpsertGrant returned error: %v", err)
	}

	if !record.Granted {
		t.Errorf("expected granted record, got revoked")
	}
	if record.Page != domain.PageSalaryManagement {
		t.Errorf("expected page %q, got %q", domain.PageSalaryManagement, record.Page)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPageAccessRepository_UpsertRevoke(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPageAccessRepository(mock)

	now := time.Now().UTC()
	stored := domain.PageAccess{
		ID:         "pa-1",
		UserID:     "user-1",
		Page:       domain.PageReports,
		Granted:    false,
		GrantedBy:  "admin-1",
		Reason:     "offboarding",
		CreatedAt:  now.Add(-time.Hour),
		ModifiedAt: now,
	}

	mock.ExpectQuery(`INSERT INTO uas\.user_page_access`).
		WithArgs(pgxmock.AnyArg(), "user-1", "reports", false, "admin-1", "offboarding", now).
		WillReturnRows(pageAccessRows(mock, stored))

	record, err := repo.UpsertRevoke(context.Background(), port.PageAccessWrite{
		UserID:    "user-1",
		Page:      domain.PageReports,
		GrantedBy: "admin-1",
		Reason:    "offboarding",
		At:        now,
	})
	if err != nil {
		t.Fatalf("UpsertRevoke returned error: %v", err)
	}

	if record.Granted {
		t.Errorf("expected revoked record, got granted")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPageAccessRepository_FindNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPageAccessRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM uas\.user_page_access`).
		WithArgs("reports", "user-1").
		WillReturnRows(pageAccessRows(mock))

	_, err = repo.Find(context.Background(), "user-1", domain.PageReports)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPageAccessRepository_ListForUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewPageAccessRepository(mock)

	now := time.Now().UTC()
	first := domain.PageAccess{ID: "pa-1", UserID: "user-1", Page: domain.PageAttendance, Granted: true, GrantedBy: "admin-1", Reason: "audit", CreatedAt: now, ModifiedAt: now}
	second := domain.PageAccess{ID: "pa-2", UserID: "user-1", Page: domain.PageReports, Granted: false, GrantedBy: "admin-1", Reason: "offboarding", CreatedAt: now, ModifiedAt: now}

	mock.ExpectQuery(`SELECT .+ FROM uas\.user_page_access`).
		WithArgs("user-1").
		WillReturnRows(pageAccessRows(mock, first, second))

	records, err := repo.ListForUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListForUser returned error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Page != domain.PageAttendance || records[1].Page != domain.PageReports {
		t.Errorf("unexpected page order: %q, %q", records[0].Page, records[1].Page)
	}
}
