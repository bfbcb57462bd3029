package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{"super_admin", RoleSuperAdmin, false},
		{"CEO", RoleCEO, false},
		{"  admin_hr  ", RoleAdminHR, false},
		{"Hr", RoleHR, false},
		{"manager", RoleManager, false},
		{"EMPLOYEE", RoleEmployee, false},
		{"admin", "", true},
		{"", "", true},
		{"ceo2", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.input)
		if tc.wantErr {
			if !errors.Is(err, ErrUnknownRole) {
				t.Errorf("ParseRole(%q): expected ErrUnknownRole, got %v", tc.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q): unexpected error %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseRole(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestRoleRankOrdering(t *testing.T) {
	roles := Roles()
	if len(roles) != 6 {
		t.Fatalf("expected 6 roles, got %d", len(roles))
	}

	for i := 1; i < len(roles); i++ {
		if !roles[i-1].HigherPrivilegeThan(roles[i]) {
			t.Errorf("%s should outrank %s", roles[i-1], roles[i])
		}
	}

	if RoleEmployee.HigherPrivilegeThan(RoleManager) {
		t.Error("employee must not outrank manager")
	}
	if RoleCEO.HigherPrivilegeThan(RoleCEO) {
		t.Error("a role must not outrank itself")
	}
}

// TestRoleCanCreate enumerates the full creator/target matrix. The table is
// deliberately explicit: creation rights are not derivable from rank.
func TestRoleCanCreate(t *testing.T) {
	allowed := map[Role]map[Role]bool{
		RoleSuperAdmin: {RoleCEO: true, RoleAdminHR: true},
		RoleCEO:        {RoleAdminHR: true, RoleHR: true},
		RoleAdminHR:    {RoleManager: true, RoleEmployee: true},
		RoleHR:         {RoleManager: true, RoleEmployee: true},
		RoleManager:    {},
		RoleEmployee:   {},
	}

	for _, creator := range Roles() {
		for _, target := range Roles() {
			want := allowed[creator][target]
			if got := creator.CanCreate(target); got != want {
				t.Errorf("%s.CanCreate(%s) = %v, want %v", creator, target, got, want)
			}
		}
	}
}

func TestRoleManagementFlags(t *testing.T) {
	cases := []struct {
		role        Role
		enterprises bool
		hr          bool
		employees   bool
		pageAccess  bool
	}{
		{RoleSuperAdmin, true, true, true, true},
		{RoleCEO, true, true, false, true},
		{RoleAdminHR, true, false, false, true},
		{RoleHR, false, false, false, false},
		{RoleManager, false, false, false, false},
		{RoleEmployee, false, false, false, false},
	}

	for _, tc := range cases {
		if got := tc.role.ManagesEnterprises(); got != tc.enterprises {
			t.Errorf("%s.ManagesEnterprises() = %v, want %v", tc.role, got, tc.enterprises)
		}
		if got := tc.role.ManagesHR(); got != tc.hr {
			t.Errorf("%s.ManagesHR() = %v, want %v", tc.role, got, tc.hr)
		}
		if got := tc.role.ManagesEmployees(); got != tc.employees {
			t.Errorf("%s.ManagesEmployees() = %v, want %v", tc.role, got, tc.employees)
		}
		if got := tc.role.ManagesPageAccess(); got != tc.pageAccess {
			t.Errorf("%s.ManagesPageAccess() = %v, want %v", tc.role, got, tc.pageAccess)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range Roles() {
		if !role.Valid() {
			t.Errorf("%s should be valid", role)
		}
	}
	if Role("admin").Valid() {
		t.Error("admin is not part of the role set")
	}
}
