package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

var (
	ErrNotFound      = errors.New("identity not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrProfileLocked = errors.New("profile already edited once")
)

// Auditor records privileged directory mutations.
type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) error
}

// Events feeds the realtime users topic.
type Events interface {
	Publish(topic string, payload any)
}

type Service struct {
	Store  StoreAPI
	Audit  Auditor
	Events Events
}

func NewService(store StoreAPI, audit Auditor, events Events) *Service {
	return &Service{Store: store, Audit: audit, Events: events}
}

// Register creates an identity with role pending_approval. The account can
// only see its own profile until an admin assigns a real role.
func (s *Service) Register(ctx context.Context, email, password, name string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := auth.HashPassword(password)
	if err != nil {
		return Identity{}, err
	}
	id, err := s.Store.Insert(ctx, email, hash, strings.TrimSpace(name))
	if err != nil {
		return Identity{}, fmt.Errorf("register identity: %w", err)
	}
	identity, err := s.Store.Get(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	s.publish(identity)
	return identity, nil
}

// Get is the one-shot profile-view-by-id lookup.
func (s *Service) Get(ctx context.Context, id string) (Identity, error) {
	return s.Store.Get(ctx, id)
}

// DisplayName resolves an id to the name rendered on documents such as
// payslips.
func (s *Service) DisplayName(ctx context.Context, id string) (string, error) {
	identity, err := s.Store.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return identity.Name, nil
}

// List returns the directory. Deleted identities are only visible to roles
// that manage users.
func (s *Service) List(ctx context.Context, actor request.Actor) ([]Identity, error) {
	return s.Store.List(ctx, auth.CanManageUsers(actor.Role))
}

// EditOwnProfile applies the employee's one permitted self-edit. The gate
// is profileEditedTimes == 0; the counter increments with the edit and the
// door closes behind it.
func (s *Service) EditOwnProfile(ctx context.Context, actor request.Actor, edit ProfileEdit) (Identity, error) {
	identity, err := s.Store.Get(ctx, actor.UserID)
	if err != nil {
		return Identity{}, err
	}
	if identity.ProfileEditedTimes != 0 {
		return Identity{}, ErrProfileLocked
	}
	if strings.TrimSpace(edit.Name) == "" {
		edit.Name = identity.Name
	}

	if err := s.Store.ApplyProfileEdit(ctx, actor.UserID, edit); err != nil {
		return Identity{}, fmt.Errorf("apply profile edit: %w", err)
	}
	updated, err := s.Store.Get(ctx, actor.UserID)
	if err != nil {
		return Identity{}, err
	}
	s.publish(updated)
	return updated, nil
}

// ChangeRole assigns a new role; restricted to user-management roles.
func (s *Service) ChangeRole(ctx context.Context, actor request.Actor, userID string, newRole auth.Role) error {
	if !auth.CanManageUsers(actor.Role) {
		return request.ErrPermission
	}
	before, err := s.Store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Store.SetRole(ctx, userID, string(newRole)); err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	s.audit(ctx, actor.UserID, "directory.role.change", userID, before.Role, string(newRole))
	s.publishByID(ctx, userID)
	return nil
}

// ChangeDepartment moves an identity between organizational units.
func (s *Service) ChangeDepartment(ctx context.Context, actor request.Actor, userID, department string) error {
	if !auth.CanManageUsers(actor.Role) {
		return request.ErrPermission
	}
	before, err := s.Store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Store.SetDepartment(ctx, userID, department); err != nil {
		return fmt.Errorf("set department: %w", err)
	}
	s.audit(ctx, actor.UserID, "directory.department.change", userID, before.Department, department)
	s.publishByID(ctx, userID)
	return nil
}

// SetProfileImage stores the blob URL returned by the upload.
func (s *Service) SetProfileImage(ctx context.Context, actor request.Actor, userID, url string) error {
	if actor.UserID != userID && !auth.CanManageUsers(actor.Role) {
		return request.ErrPermission
	}
	return s.Store.SetProfileImageURL(ctx, userID, url)
}

// Delete soft-deletes an identity; the row is never physically removed.
func (s *Service) Delete(ctx context.Context, actor request.Actor, userID string) error {
	if !auth.CanManageUsers(actor.Role) {
		return request.ErrPermission
	}
	before, err := s.Store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.Store.SoftDelete(ctx, userID); err != nil {
		return fmt.Errorf("soft delete: %w", err)
	}
	s.audit(ctx, actor.UserID, "directory.delete", userID, before, nil)
	s.publishByID(ctx, userID)
	return nil
}

// DepartmentsByUserID backs the approval view's department join.
func (s *Service) DepartmentsByUserID(ctx context.Context, userIDs []string) (map[string]string, error) {
	return s.Store.DepartmentsByUserID(ctx, userIDs)
}

func (s *Service) audit(ctx context.Context, actorID, action, entityID string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actorID, action, "user", entityID, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (s *Service) publish(identity Identity) {
	if s.Events != nil {
		s.Events.Publish("users", identity)
	}
}

func (s *Service) publishByID(ctx context.Context, userID string) {
	if s.Events == nil {
		return
	}
	if identity, err := s.Store.Get(ctx, userID); err == nil {
		s.Events.Publish("users", identity)
	}
}
