package domain

import (
	"errors"
	"strings"
)

// ErrUnknownPage indicates a page id outside the fixed catalog.
var ErrUnknownPage = errors.New("unknown page")

// Page identifies a protected page or view. Only the id is ever persisted.
type Page string

const (
	// System level, SUPER_ADMIN only.
	PageSystemAdmin          Page = "system_admin"
	PageEnterpriseManagement Page = "enterprise_management"

	// Enterprise level.
	PageEnterpriseDashboard Page = "enterprise_dashboard"
	PageEnterpriseSettings  Page = "enterprise_settings"
	PageBillingManagement   Page = "billing_management"

	// HR level.
	PageHRDashboard        Page = "hr_dashboard"
	PageEmployeeManagement Page = "employee_management"
	PageEmployeeRecords    Page = "employee_records"
	PageSalaryManagement   Page = "salary_management"
	PageAttendance         Page = "attendance"
	PageLeaveManagement    Page = "leave_management"
	PageReports            Page = "reports"

	// Manager level.
	PageManagerDashboard Page = "manager_dashboard"
	PageTeamManagement   Page = "team_management"

	// Employee level.
	PageEmployeeDashboard Page = "employee_dashboard"
	PageProfile           Page = "profile"
	PageMyLeave           Page = "my_leave"
	PageMyAttendance      Page = "my_attendance"
	PageMyPayslip         Page = "my_payslip"
)

type pageInfo struct {
	displayName  string
	defaultRoles []Role
}

// pageCatalog maps every page to its display name and default-allowed role
// set. It is process-wide immutable state; every page is reachable by at least
// one role.
var pageCatalog = map[Page]pageInfo{
	PageSystemAdmin:          {"System Administration", []Role{RoleSuperAdmin}},
	PageEnterpriseManagement: {"Enterprise Management", []Role{RoleSuperAdmin}},
	PageEnterpriseDashboard:  {"Enterprise Dashboard", []Role{RoleSuperAdmin, RoleCEO}},
	PageEnterpriseSettings:   {"Enterprise Settings", []Role{RoleSuperAdmin, RoleCEO}},
	PageBillingManagement:    {"Billing & Subscription", []Role{RoleSuperAdmin, RoleCEO}},
	PageHRDashboard:          {"HR Dashboard", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageEmployeeManagement:   {"Employee Management", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageEmployeeRecords:      {"Employee Records", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageSalaryManagement:     {"Salary Management", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR}},
	PageAttendance:           {"Attendance Management", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageLeaveManagement:      {"Leave Management", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageReports:              {"HR Reports", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR}},
	PageManagerDashboard:     {"Manager Dashboard", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager}},
	PageTeamManagement:       {"Team Management", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager}},
	PageEmployeeDashboard:    {"Employee Dashboard", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}},
	PageProfile:              {"My Profile", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}},
	PageMyLeave:              {"My Leave", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}},
	PageMyAttendance:         {"My Attendance", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}},
	PageMyPayslip:            {"My Payslip", []Role{RoleSuperAdmin, RoleCEO, RoleAdminHR, RoleHR, RoleManager, RoleEmployee}},
}

// pageOrder fixes a stable iteration order over the catalog.
var pageOrder = []Page{
	PageSystemAdmin,
	PageEnterpriseManagement,
	PageEnterpriseDashboard,
	PageEnterpriseSettings,
	PageBillingManagement,
	PageHRDashboard,
	PageEmployeeManagement,
	PageEmployeeRecords,
	PageSalaryManagement,
	PageAttendance,
	PageLeaveManagement,
	PageReports,
	PageManagerDashboard,
	PageTeamManagement,
	PageEmployeeDashboard,
	PageProfile,
	PageMyLeave,
	PageMyAttendance,
	PageMyPayslip,
}

// Pages returns the full catalog in stable order.
func Pages() []Page {
	pages := make([]Page, len(pageOrder))
	copy(pages, pageOrder)
	return pages
}

// ParsePage resolves a persisted or external page id, case-insensitively.
func ParsePage(id string) (Page, error) {
	page := Page(strings.ToLower(strings.TrimSpace(id)))
	if _, ok := pageCatalog[page]; !ok {
		return "", ErrUnknownPage
	}
	return page, nil
}

// Valid reports whether the page belongs to the fixed catalog.
func (p Page) Valid() bool {
	_, ok := pageCatalog[p]
	return ok
}

// DisplayName returns the human-readable page name.
func (p Page) DisplayName() string {
	return pageCatalog[p].displayName
}

// DefaultAllowedRoles returns a copy of the default-allowed role set.
func (p Page) DefaultAllowedRoles() []Role {
	info := pageCatalog[p]
	roles := make([]Role, len(info.defaultRoles))
	copy(roles, info.defaultRoles)
	return roles
}

// AllowsRole reports whether the role has default access to the page.
func (p Page) AllowsRole(role Role) bool {
	for _, allowed := range pageCatalog[p].defaultRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

// AccessiblePages returns every page whose default-allowed set contains the
// role, in catalog order. The catalog is small; a full scan per call keeps the
// lookup trivially consistent.
func AccessiblePages(role Role) []Page {
	pages := make([]Page, 0, len(pageOrder))
	for _, page := range pageOrder {
		if page.AllowsRole(role) {
			pages = append(pages, page)
		}
	}
	return pages
}
