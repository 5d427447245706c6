package nav

import (
	"testing"

	"hrportal/internal/domain/auth"
)

func TestResolvePage(t *testing.T) {
	cases := []struct {
		name      string
		requested Page
		role      auth.Role
		want      Page
	}{
		{"employee blocked from admin", PageAdmin, auth.RoleEmployee, PageLeaveForm},
		{"employee blocked from employee list", PageEmployeeList, auth.RoleEmployee, PageLeaveForm},
		{"employee blocked from ot approval", PageOTApproval, auth.RoleEmployee, PageLeaveForm},
		{"hr reaches admin", PageAdmin, auth.RoleHR, PageAdmin},
		{"manager reaches ot approval", PageOTApproval, auth.RoleManager, PageOTApproval},
		{"manager bounced from company profile", PageCompanyProfile, auth.RoleManager, PageDashboard},
		{"hr bounced from company profile", PageCompanyProfile, auth.RoleHR, PageDashboard},
		{"ceo reaches company profile", PageCompanyProfile, auth.RoleCEO, PageCompanyProfile},
		{"commander reaches company profile", PageCompanyProfile, auth.RoleCommander, PageCompanyProfile},
		{"employee keeps plain pages", PageLeaveHistory, auth.RoleEmployee, PageLeaveHistory},
		{"ceo keeps anything", PageAdmin, auth.RoleCEO, PageAdmin},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolvePage(tc.requested, tc.role); got != tc.want {
				t.Fatalf("ResolvePage(%q, %q) = %q, want %q", tc.requested, tc.role, got, tc.want)
			}
		})
	}
}

func TestResolvePagePendingApprovalForcedToProfile(t *testing.T) {
	for page := range knownPages {
		if got := ResolvePage(page, auth.RolePendingApproval); got != PageProfile {
			t.Fatalf("ResolvePage(%q, pending_approval) = %q, want profile", page, got)
		}
	}
}

func TestResolvePageIsReevaluatedPerRequest(t *testing.T) {
	// Same session, different page requests: each call stands alone.
	if got := ResolvePage(PageAdmin, auth.RoleEmployee); got != PageLeaveForm {
		t.Fatalf("first call = %q", got)
	}
	if got := ResolvePage(PageDashboard, auth.RoleEmployee); got != PageDashboard {
		t.Fatalf("second call = %q", got)
	}
}
