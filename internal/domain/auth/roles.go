package auth

import "strings"

// Role is the single authority tag carried by every identity. The string
// forms match what lives in the users table, including the legacy
// capitalisations ("Manager", "CEO").
type Role string

const (
	RolePendingApproval Role = "pending_approval"
	RoleEmployee        Role = "employee"
	RoleHR              Role = "hr"
	RoleManager         Role = "Manager"
	RoleAdmin           Role = "admin"
	RoleCEO             Role = "CEO"
	RoleCommander       Role = "commander"
)

var allRoles = []Role{
	RolePendingApproval,
	RoleEmployee,
	RoleHR,
	RoleManager,
	RoleAdmin,
	RoleCEO,
	RoleCommander,
}

// ParseRole maps a stored role string onto the enum, case-insensitively.
// Unknown or empty values resolve to pending_approval so a half-registered
// identity never gains access by accident.
func ParseRole(value string) Role {
	trimmed := strings.TrimSpace(value)
	for _, role := range allRoles {
		if strings.EqualFold(trimmed, string(role)) {
			return role
		}
	}
	return RolePendingApproval
}

// Activated reports whether the identity has been approved into a working
// role. Pending accounts are confined to their own profile: no request
// submission, no directory browsing, no live feeds.
func Activated(role Role) bool {
	return role != RolePendingApproval
}

// Unlimited reports whether the role bypasses every page restriction.
func Unlimited(role Role) bool {
	return role == RoleCEO || role == RoleCommander
}

// Elevated reports whether the role may reach the elevated pages
// (admin, employee list, OT approval).
func Elevated(role Role) bool {
	switch role {
	case RoleManager, RoleHR, RoleCEO, RoleCommander:
		return true
	}
	return false
}

// CanApprove reports whether the role may transition a request out of
// pending.
func CanApprove(role Role) bool {
	switch role {
	case RoleHR, RoleManager, RoleCEO, RoleCommander:
		return true
	}
	return false
}

// CanManageUsers covers role/department changes and soft deletion in the
// employee directory. admin joins the approver roles here and only here.
func CanManageUsers(role Role) bool {
	return role == RoleAdmin || CanApprove(role)
}

// CanManageHolidays covers holiday assignment create/delete.
func CanManageHolidays(role Role) bool {
	return role == RoleAdmin || role == RoleHR || Unlimited(role)
}

// CanManagePayslips covers writing payslips and editing their lines.
func CanManagePayslips(role Role) bool {
	return role == RoleHR || Unlimited(role)
}

// CanEditCompanyProfile is restricted to the two highest-privilege roles.
func CanEditCompanyProfile(role Role) bool {
	return Unlimited(role)
}
