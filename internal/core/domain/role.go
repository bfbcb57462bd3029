package domain

import (
	"errors"
	"strings"
)

// ErrUnknownRole indicates a role code outside the closed role set.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies one tier of the enterprise hierarchy. Only the code is ever
// persisted; it must round-trip through ParseRole to exactly one Role.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleCEO        Role = "ceo"
	RoleAdminHR    Role = "admin_hr"
	RoleHR         Role = "hr"
	RoleManager    Role = "manager"
	RoleEmployee   Role = "employee"
)

type roleInfo struct {
	rank               int
	description        string
	managesEnterprises bool
	managesHR          bool
	managesEmployees   bool
	managesPageAccess  bool
}

// roleCatalog is the closed set of roles. Rank is privilege order, lower wins.
var roleCatalog = map[Role]roleInfo{
	RoleSuperAdmin: {rank: 0, description: "System administrator", managesEnterprises: true, managesHR: true, managesEmployees: true, managesPageAccess: true},
	RoleCEO:        {rank: 1, description: "Enterprise head", managesEnterprises: true, managesHR: true, managesEmployees: false, managesPageAccess: true},
	RoleAdminHR:    {rank: 2, description: "HR department head", managesEnterprises: true, managesHR: false, managesEmployees: false, managesPageAccess: true},
	RoleHR:         {rank: 3, description: "Human resources", managesEnterprises: false, managesHR: false, managesEmployees: false, managesPageAccess: false},
	RoleManager:    {rank: 4, description: "Team lead", managesEnterprises: false, managesHR: false, managesEmployees: false, managesPageAccess: false},
	RoleEmployee:   {rank: 5, description: "Regular staff member", managesEnterprises: false, managesHR: false, managesEmployees: false, managesPageAccess: false},
}

// roleCreation is the explicit "who can create whom" table. It is deliberately
// enumerated per role rather than derived from rank: some adjacent-rank pairs
// (for example CEO -> CEO) are disallowed.
var roleCreation = map[Role][]Role{
	RoleSuperAdmin: {RoleCEO, RoleAdminHR},
	RoleCEO:        {RoleAdminHR, RoleHR},
	RoleAdminHR:    {RoleManager, RoleEmployee},
	RoleHR:         {RoleManager, RoleEmployee},
	RoleManager:    {},
	RoleEmployee:   {},
}

// Roles returns every role ordered by rank, most privileged first.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}
}

// ParseRole resolves a persisted or external role code. Codes are matched
// case-insensitively; anything outside the closed set is a data-integrity
// error, never silently matched.
func ParseRole(code string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(code)))
	if _, ok := roleCatalog[role]; !ok {
		return "", ErrUnknownRole
	}
	return role, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	_, ok := roleCatalog[r]
	return ok
}

// Rank returns the privilege rank of the role, lower is more privileged.
func (r Role) Rank() int {
	return roleCatalog[r].rank
}

// Description returns the human-readable role description.
func (r Role) Description() string {
	return roleCatalog[r].description
}

// ManagesEnterprises reports whether the role may manage enterprise records.
func (r Role) ManagesEnterprises() bool {
	return roleCatalog[r].managesEnterprises
}

// ManagesHR reports whether the role may manage the HR tier.
func (r Role) ManagesHR() bool {
	return roleCatalog[r].managesHR
}

// ManagesEmployees reports whether the role may manage the employee tier.
func (r Role) ManagesEmployees() bool {
	return roleCatalog[r].managesEmployees
}

// ManagesPageAccess reports whether the role may grant or revoke page access
// overrides for other users.
func (r Role) ManagesPageAccess() bool {
	return roleCatalog[r].managesPageAccess
}

// CanCreate reports whether this role may create users of the target role,
// strictly per the roleCreation table.
func (r Role) CanCreate(target Role) bool {
	for _, allowed := range roleCreation[r] {
		if allowed == target {
			return true
		}
	}
	return false
}

// HigherPrivilegeThan reports whether this role outranks the other.
func (r Role) HigherPrivilegeThan(other Role) bool {
	return roleCatalog[r].rank < roleCatalog[other].rank
}
