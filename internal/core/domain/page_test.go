package domain

import (
	"errors"
	"testing"
)

func TestPageCatalogIntegrity(t *testing.T) {
	pages := Pages()
	if len(pages) != 19 {
		t.Fatalf("expected 19 pages, got %d", len(pages))
	}

	seen := make(map[Page]bool, len(pages))
	for _, page := range pages {
		if seen[page] {
			t.Errorf("duplicate page %s in catalog order", page)
		}
		seen[page] = true

		if !page.Valid() {
			t.Errorf("page %s should be valid", page)
		}
		if page.DisplayName() == "" {
			t.Errorf("page %s has no display name", page)
		}
		if len(page.DefaultAllowedRoles()) == 0 {
			t.Errorf("page %s is unreachable by every role", page)
		}
	}
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage("  Salary_Management ")
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if page != PageSalaryManagement {
		t.Fatalf("ParsePage = %q, want %q", page, PageSalaryManagement)
	}

	if _, err := ParsePage("payroll"); !errors.Is(err, ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestPageAllowsRole(t *testing.T) {
	if !PageSystemAdmin.AllowsRole(RoleSuperAdmin) {
		t.Error("system_admin must allow super_admin")
	}
	if PageSystemAdmin.AllowsRole(RoleCEO) {
		t.Error("system_admin must not allow ceo by default")
	}
	if !PageSalaryManagement.AllowsRole(RoleAdminHR) {
		t.Error("salary_management must allow admin_hr by default")
	}
	if PageSalaryManagement.AllowsRole(RoleHR) {
		t.Error("salary_management must not allow hr by default")
	}
	if !PageProfile.AllowsRole(RoleEmployee) {
		t.Error("profile must allow employee by default")
	}
}

// TestAccessiblePagesPerRole checks the default page count for each role and
// the subset relation down the hierarchy.
func TestAccessiblePagesPerRole(t *testing.T) {
	counts := map[Role]int{
		RoleSuperAdmin: 19,
		RoleCEO:        17,
		RoleAdminHR:    14,
		RoleHR:         13,
		RoleManager:    7,
		RoleEmployee:   5,
	}

	for role, want := range counts {
		pages := AccessiblePages(role)
		if len(pages) != want {
			t.Errorf("AccessiblePages(%s) returned %d pages, want %d", role, len(pages), want)
		}
	}

	// Employee defaults are exactly the self-service pages.
	wantEmployee := []Page{PageEmployeeDashboard, PageProfile, PageMyLeave, PageMyAttendance, PageMyPayslip}
	gotEmployee := AccessiblePages(RoleEmployee)
	if len(gotEmployee) != len(wantEmployee) {
		t.Fatalf("employee pages = %v", gotEmployee)
	}
	for i, page := range wantEmployee {
		if gotEmployee[i] != page {
			t.Errorf("employee page %d = %s, want %s", i, gotEmployee[i], page)
		}
	}
}
