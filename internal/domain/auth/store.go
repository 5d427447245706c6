package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

type AuthUser struct {
	ID           string
	Email        string
	Name         string
	Role         string
	PasswordHash string
	IsDeleted    bool
	MFAEnabled   bool
	MFASecret    string
}

type StoreAPI interface {
	FindUserByEmail(ctx context.Context, email string) (AuthUser, error)
	RoleRecord(ctx context.Context, userID string) (string, error)
	ProfileRole(ctx context.Context, userID string) (string, bool, error)
	CreatePendingProfile(ctx context.Context, userID string) error
	UpdateLastLogin(ctx context.Context, userID string) error
	UserIDByEmail(ctx context.Context, email string) (string, error)
	UpdateUserPassword(ctx context.Context, userID, hash string) error
	UpdateMFASecret(ctx context.Context, userID, secret string) error
	MFASecret(ctx context.Context, userID string) (string, error)
	SetMFAEnabled(ctx context.Context, userID string, enabled bool) error
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var out AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, name, role, password_hash, is_deleted, mfa_enabled, COALESCE(mfa_secret, '')
    FROM users
    WHERE email = $1
  `, email).Scan(&out.ID, &out.Email, &out.Name, &out.Role, &out.PasswordHash, &out.IsDeleted, &out.MFAEnabled, &out.MFASecret)
	return out, err
}

// RoleRecord reads the dedicated role record. Empty string means no record.
func (s *Store) RoleRecord(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.DB.QueryRow(ctx, "SELECT role FROM user_roles WHERE user_id = $1", userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

// ProfileRole reads the role embedded in the identity profile. The second
// return reports whether a profile row exists at all.
func (s *Store) ProfileRole(ctx context.Context, userID string) (string, bool, error) {
	var role string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(role, '') FROM users WHERE id = $1", userID).Scan(&role)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return role, true, nil
}

func (s *Store) CreatePendingProfile(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO users (id, email, name, role)
    VALUES ($1, '', '', $2)
    ON CONFLICT (id) DO NOTHING
  `, userID, string(RolePendingApproval))
	return err
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now() WHERE id = $1", userID)
	return err
}

func (s *Store) UserIDByEmail(ctx context.Context, email string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT id FROM users WHERE email = $1 AND NOT is_deleted", email).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (s *Store) UpdateUserPassword(ctx context.Context, userID, hash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET password_hash = $1, password_changed_at = $2 WHERE id = $3", hash, time.Now().UTC(), userID)
	return err
}

func (s *Store) UpdateMFASecret(ctx context.Context, userID, secret string) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret = $1, mfa_enabled = false WHERE id = $2", secret, userID)
	return err
}

func (s *Store) MFASecret(ctx context.Context, userID string) (string, error) {
	var secret string
	err := s.DB.QueryRow(ctx, "SELECT COALESCE(mfa_secret, '') FROM users WHERE id = $1", userID).Scan(&secret)
	return secret, err
}

func (s *Store) SetMFAEnabled(ctx context.Context, userID string, enabled bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = $1 WHERE id = $2", enabled, userID)
	return err
}
