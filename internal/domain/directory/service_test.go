package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

type fakeStore struct {
	byID   map[string]Identity
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]Identity{}}
}

func (f *fakeStore) Insert(_ context.Context, email, _, name string) (string, error) {
	for _, identity := range f.byID {
		if identity.Email == email {
			return "", ErrEmailTaken
		}
	}
	f.nextID++
	id := fmt.Sprintf("user-%d", f.nextID)
	f.byID[id] = Identity{ID: id, Email: email, Name: name, Role: string(auth.RolePendingApproval)}
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Identity, error) {
	identity, ok := f.byID[id]
	if !ok {
		return Identity{}, ErrNotFound
	}
	return identity, nil
}

func (f *fakeStore) List(_ context.Context, includeDeleted bool) ([]Identity, error) {
	var out []Identity
	for _, identity := range f.byID {
		if identity.IsDeleted && !includeDeleted {
			continue
		}
		out = append(out, identity)
	}
	return out, nil
}

func (f *fakeStore) ApplyProfileEdit(_ context.Context, id string, edit ProfileEdit) error {
	identity := f.byID[id]
	identity.Name = edit.Name
	identity.Position = edit.Position
	identity.NationalID = edit.NationalID
	identity.DateOfBirth = edit.DateOfBirth
	identity.ProfileEditedTimes++
	f.byID[id] = identity
	return nil
}

func (f *fakeStore) SetRole(_ context.Context, id, role string) error {
	identity := f.byID[id]
	identity.Role = role
	f.byID[id] = identity
	return nil
}

func (f *fakeStore) SetDepartment(_ context.Context, id, department string) error {
	identity := f.byID[id]
	identity.Department = department
	f.byID[id] = identity
	return nil
}

func (f *fakeStore) SetProfileImageURL(_ context.Context, id, url string) error {
	identity := f.byID[id]
	identity.ProfileImageURL = url
	f.byID[id] = identity
	return nil
}

func (f *fakeStore) SoftDelete(_ context.Context, id string) error {
	identity := f.byID[id]
	identity.IsDeleted = true
	f.byID[id] = identity
	return nil
}

func (f *fakeStore) DepartmentsByUserID(_ context.Context, userIDs []string) (map[string]string, error) {
	out := map[string]string{}
	for _, id := range userIDs {
		if identity, ok := f.byID[id]; ok {
			out[id] = identity.Department
		}
	}
	return out, nil
}

var adminActor = request.Actor{UserID: "admin-1", Role: auth.RoleAdmin}

func TestRegisterStartsPendingApproval(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)

	identity, err := svc.Register(context.Background(), "New@Example.COM", "secret123", "New Hire")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Role != string(auth.RolePendingApproval) {
		t.Fatalf("expected pending_approval role, got %q", identity.Role)
	}
	if identity.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", identity.Email)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)

	if _, err := svc.Register(context.Background(), "taken@example.com", "secret123", "First"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := svc.Register(context.Background(), "Taken@Example.com", "secret123", "Second")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestEditOwnProfileOnlyOnce(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)
	identity, _ := svc.Register(context.Background(), "a@b.c", "secret123", "A")
	actor := request.Actor{UserID: identity.ID, Role: auth.RoleEmployee}

	updated, err := svc.EditOwnProfile(context.Background(), actor, ProfileEdit{Name: "A Changed", Position: "Dev"})
	if err != nil {
		t.Fatalf("first edit failed: %v", err)
	}
	if updated.ProfileEditedTimes != 1 {
		t.Fatalf("expected edit counter 1, got %d", updated.ProfileEditedTimes)
	}

	_, err = svc.EditOwnProfile(context.Background(), actor, ProfileEdit{Name: "A Again"})
	if !errors.Is(err, ErrProfileLocked) {
		t.Fatalf("expected profile locked, got %v", err)
	}
}

func TestChangeRoleRequiresUserManagement(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)
	identity, _ := svc.Register(context.Background(), "a@b.c", "secret123", "A")

	err := svc.ChangeRole(context.Background(), request.Actor{UserID: "x", Role: auth.RoleEmployee}, identity.ID, auth.RoleEmployee)
	if !errors.Is(err, request.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}

	if err := svc.ChangeRole(context.Background(), adminActor, identity.ID, auth.RoleEmployee); err != nil {
		t.Fatalf("admin change role failed: %v", err)
	}
	got, _ := store.Get(context.Background(), identity.ID)
	if got.Role != string(auth.RoleEmployee) {
		t.Fatalf("expected employee role, got %q", got.Role)
	}
}

func TestDeleteIsSoft(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, nil, nil)
	identity, _ := svc.Register(context.Background(), "a@b.c", "secret123", "A")

	if err := svc.Delete(context.Background(), adminActor, identity.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	got, err := store.Get(context.Background(), identity.ID)
	if err != nil {
		t.Fatal("identity must remain on record after soft delete")
	}
	if !got.IsDeleted {
		t.Fatal("expected isDeleted flag")
	}

	visible, _ := svc.List(context.Background(), request.Actor{Role: auth.RoleEmployee})
	for _, item := range visible {
		if item.ID == identity.ID {
			t.Fatal("deleted identity must be hidden from non-admin listings")
		}
	}
}
