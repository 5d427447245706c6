package company

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

type fakeStore struct {
	profile Profile
	set     bool
}

func (f *fakeStore) Get(context.Context) (Profile, error) {
	if !f.set {
		return Profile{}, ErrNotConfigured
	}
	return f.profile, nil
}

func (f *fakeStore) Upsert(_ context.Context, p Profile) error {
	f.profile = p
	f.set = true
	return nil
}

type fakeAuditor struct {
	actions []string
}

func (f *fakeAuditor) Record(_ context.Context, _, action, _, _ string, _, _ any) error {
	f.actions = append(f.actions, action)
	return nil
}

func TestUpdateRestrictedToUnlimitedRoles(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAuditor{})

	for _, role := range []auth.Role{auth.RoleEmployee, auth.RoleHR, auth.RoleManager, auth.RoleAdmin} {
		_, err := svc.Update(context.Background(), request.Actor{UserID: "u1", Role: role}, Profile{NameEN: "Acme"})
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("role %s: expected ErrPermission, got %v", role, err)
		}
	}
}

func TestUpdateStampsActorAndAudits(t *testing.T) {
	store := &fakeStore{}
	audit := &fakeAuditor{}
	svc := NewService(store, audit)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	got, err := svc.Update(context.Background(), request.Actor{UserID: "ceo-1", Role: "CEO"}, Profile{
		NameEN: "Acme Co.", NameTH: "บริษัท แอคมี่", TaxID: "0105551234567",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.UpdatedBy != "ceo-1" {
		t.Fatalf("updatedBy = %q", got.UpdatedBy)
	}
	if !got.UpdatedAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("updatedAt = %v", got.UpdatedAt)
	}
	if len(audit.actions) != 1 || audit.actions[0] != "company.update" {
		t.Fatalf("audit actions = %v", audit.actions)
	}

	reread, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.NameEN != "Acme Co." {
		t.Fatalf("nameEn = %q", reread.NameEN)
	}
}

func TestGetUnconfigured(t *testing.T) {
	svc := NewService(&fakeStore{}, &fakeAuditor{})
	if _, err := svc.Get(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
