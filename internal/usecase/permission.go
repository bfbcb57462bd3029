package usecase

import (
	"github.com/peoplehub/user-access-service/internal/core/domain"
)

// PermissionService is the stateless decision core. Every method is a pure
// function of its inputs, recomputed per call; there is no caching so policy
// always reflects the latest state the caller passes in.
//
// The management and deactivation rules are deliberately kept as explicit
// per-role tables rather than derived from rank comparisons: the hierarchy is
// not a simple total order for management purposes (ADMIN_HR and HR have
// different deactivation rights despite adjacent ranks).
type PermissionService struct{}

// NewPermissionService constructs a PermissionService.
func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// manageTable lists which roles an actor may manage within its own
// enterprise. SUPER_ADMIN is handled separately and is enterprise-unbound.
var manageTable = map[domain.Role]map[domain.Role]bool{
	domain.RoleCEO: {
		domain.RoleAdminHR:  true,
		domain.RoleHR:       true,
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
	domain.RoleAdminHR: {
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
	domain.RoleHR: {
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
}

// deactivateTable is stricter than manageTable and enforced independently:
// a CEO manages ADMIN_HR users but cannot deactivate them.
var deactivateTable = map[domain.Role]map[domain.Role]bool{
	domain.RoleCEO: {
		domain.RoleHR:       true,
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
	domain.RoleAdminHR: {
		domain.RoleHR:       true,
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
	domain.RoleHR: {
		domain.RoleManager:  true,
		domain.RoleEmployee: true,
	},
}

// managerEligibleRoles are the only roles that can be set as someone's manager.
var managerEligibleRoles = map[domain.Role]bool{
	domain.RoleManager: true,
	domain.RoleAdminHR: true,
	domain.RoleCEO:     true,
}

// fullEnterpriseVisibility marks roles that may view any user in their own enterprise.
var fullEnterpriseVisibility = map[domain.Role]bool{
	domain.RoleCEO:     true,
	domain.RoleAdminHR: true,
	domain.RoleHR:      true,
}

// CanCreateUser reports whether the actor may create a user with the target
// role in the target enterprise. The role pairing comes strictly from the
// role-creation table; every role except SUPER_ADMIN is additionally bound to
// its own enterprise.
func (s *PermissionService) CanCreateUser(actor domain.User, targetRole domain.Role, targetEnterpriseID string) bool {
	if !actor.Role.CanCreate(targetRole) {
		return false
	}
	if actor.Role != domain.RoleSuperAdmin && actor.EnterpriseID != targetEnterpriseID {
		return false
	}
	return true
}

// CanManageUser reports whether the actor may manage the target user.
func (s *PermissionService) CanManageUser(actor, target domain.User) bool {
	if actor.Role == domain.RoleSuperAdmin {
		return true
	}
	if !actor.SameEnterprise(target) {
		return false
	}
	return manageTable[actor.Role][target.Role]
}

// CanDeactivateUser reports whether the actor may deactivate the target user.
// Self-deactivation is always false, including for SUPER_ADMIN.
func (s *PermissionService) CanDeactivateUser(actor, target domain.User) bool {
	if actor.ID == target.ID {
		return false
	}
	if actor.Role == domain.RoleSuperAdmin {
		return true
	}
	if !actor.SameEnterprise(target) {
		return false
	}
	return deactivateTable[actor.Role][target.Role]
}

// CanAssignManager reports whether the actor may set candidate as the
// target's manager. The candidate must belong to the actor's enterprise
// (or the target's, when the actor is the enterprise-unbound SUPER_ADMIN)
// and hold a manager-eligible role.
func (s *PermissionService) CanAssignManager(actor, target, candidate domain.User) bool {
	if !s.CanManageUser(actor, target) {
		return false
	}
	if actor.Role == domain.RoleSuperAdmin {
		if !candidate.SameEnterprise(target) {
			return false
		}
	} else if candidate.EnterpriseID != actor.EnterpriseID {
		return false
	}
	return managerEligibleRoles[candidate.Role]
}

// CanViewUserDetails reports whether the viewer may read the target's details.
func (s *PermissionService) CanViewUserDetails(viewer, target domain.User) bool {
	if viewer.Role == domain.RoleSuperAdmin {
		return true
	}
	if viewer.ID == target.ID {
		return true
	}
	if !viewer.SameEnterprise(target) {
		return false
	}
	if fullEnterpriseVisibility[viewer.Role] {
		return true
	}
	if viewer.Role == domain.RoleManager {
		return target.ManagerID != nil && *target.ManagerID == viewer.ID
	}
	return false
}

// CanManageEnterprise reports whether the user may manage enterprise records.
func (s *PermissionService) CanManageEnterprise(user domain.User) bool {
	return user.Role.ManagesEnterprises()
}

// CanManagePageAccess reports whether the admin may grant or revoke page
// access overrides at all.
func (s *PermissionService) CanManagePageAccess(admin domain.User) bool {
	return admin.Role.ManagesPageAccess()
}

// HasEnterpriseVisibility reports whether the viewer may list users of the
// given enterprise.
func (s *PermissionService) HasEnterpriseVisibility(viewer domain.User, enterpriseID string) bool {
	if viewer.Role == domain.RoleSuperAdmin {
		return true
	}
	return viewer.EnterpriseID == enterpriseID && fullEnterpriseVisibility[viewer.Role]
}

// DefaultAccessiblePages returns the catalog defaults for a role, ignoring
// overrides.
func (s *PermissionService) DefaultAccessiblePages(role domain.Role) []domain.Page {
	return domain.AccessiblePages(role)
}
