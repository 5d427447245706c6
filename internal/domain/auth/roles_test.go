package auth

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
	}{
		{"employee", RoleEmployee},
		{"Manager", RoleManager},
		{"manager", RoleManager},
		{"CEO", RoleCEO},
		{"ceo", RoleCEO},
		{"commander", RoleCommander},
		{"hr", RoleHR},
		{"HR", RoleHR},
		{"admin", RoleAdmin},
		{"pending_approval", RolePendingApproval},
		{"", RolePendingApproval},
		{"something_else", RolePendingApproval},
		{"  employee  ", RoleEmployee},
	}
	for _, tc := range cases {
		if got := ParseRole(tc.in); got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanApprove(t *testing.T) {
	approvers := []Role{RoleHR, RoleManager, RoleCEO, RoleCommander}
	for _, role := range approvers {
		if !CanApprove(role) {
			t.Fatalf("expected %q to approve", role)
		}
	}
	for _, role := range []Role{RoleEmployee, RolePendingApproval, RoleAdmin} {
		if CanApprove(role) {
			t.Fatalf("expected %q not to approve", role)
		}
	}
}

func TestAdminJoinsUserManagementOnly(t *testing.T) {
	if !CanManageUsers(RoleAdmin) {
		t.Fatal("admin must manage users")
	}
	if CanApprove(RoleAdmin) {
		t.Fatal("admin must not approve requests")
	}
}

func TestActivated(t *testing.T) {
	if Activated(RolePendingApproval) {
		t.Fatal("pending_approval must not be activated")
	}
	for _, role := range []Role{RoleEmployee, RoleHR, RoleManager, RoleAdmin, RoleCEO, RoleCommander} {
		if !Activated(role) {
			t.Fatalf("%q must be activated", role)
		}
	}
}

func TestUnlimited(t *testing.T) {
	if !Unlimited(RoleCEO) || !Unlimited(RoleCommander) {
		t.Fatal("ceo and commander are unlimited")
	}
	for _, role := range []Role{RoleEmployee, RoleHR, RoleManager, RoleAdmin, RolePendingApproval} {
		if Unlimited(role) {
			t.Fatalf("%q must not be unlimited", role)
		}
	}
}
