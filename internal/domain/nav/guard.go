package nav

import "hrportal/internal/domain/auth"

// elevatedPages need an elevated role; everyone else is bounced to the
// leave form rather than shown a dead end.
var elevatedPages = map[Page]bool{
	PageAdmin:        true,
	PageEmployeeList: true,
	PageOTApproval:   true,
}

// ResolvePage maps a requested page and a role to the page the caller may
// actually see. It is pure and must be re-evaluated on every navigation
// attempt: the role is loaded once per session but page requests keep
// arriving (deep links included).
//
// Disallowed navigations redirect silently instead of erroring; the few
// surfaces that do render an explicit denial (company profile management,
// payslip management) enforce that at the handler layer.
func ResolvePage(requested Page, role auth.Role) Page {
	if role == auth.RolePendingApproval {
		return PageProfile
	}
	if auth.Unlimited(role) {
		return requested
	}
	if requested == PageCompanyProfile {
		return PageDashboard
	}
	if elevatedPages[requested] && !auth.Elevated(role) {
		return PageLeaveForm
	}
	return requested
}
