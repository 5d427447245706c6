package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDeleted     = errors.New("account deleted")
	ErrMFARequired        = errors.New("mfa code required")
	ErrInvalidMFACode     = errors.New("invalid mfa code")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// ResetTokenStore holds one-shot password reset tokens with a TTL.
type ResetTokenStore interface {
	SaveResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// ResetNotifier delivers the reset token to the account owner, typically by
// enqueueing an email job.
type ResetNotifier interface {
	PasswordReset(ctx context.Context, email, token string) error
}

type Service struct {
	Store    StoreAPI
	Tokens   ResetTokenStore
	Notifier ResetNotifier

	Secret   string
	TokenTTL time.Duration
	ResetTTL time.Duration
}

func NewService(store StoreAPI, tokens ResetTokenStore, notifier ResetNotifier, secret string, tokenTTL, resetTTL time.Duration) *Service {
	return &Service{
		Store:    store,
		Tokens:   tokens,
		Notifier: notifier,
		Secret:   secret,
		TokenTTL: tokenTTL,
		ResetTTL: resetTTL,
	}
}

type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// SignIn authenticates an email/password pair and issues a JWT carrying the
// resolved role. Accounts flagged deleted cannot sign in.
func (s *Service) SignIn(ctx context.Context, email, password, mfaCode string) (Session, error) {
	user, err := s.Store.FindUserByEmail(ctx, email)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if user.IsDeleted {
		return Session{}, ErrAccountDeleted
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	if user.MFAEnabled {
		if mfaCode == "" {
			return Session{}, ErrMFARequired
		}
		if !totp.Validate(mfaCode, user.MFASecret) {
			return Session{}, ErrInvalidMFACode
		}
	}

	role, err := s.ResolveRole(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}

	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, Role: string(role), Name: user.Name}, s.TokenTTL)
	if err != nil {
		return Session{}, err
	}

	if err := s.Store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("update last login failed", "err", err)
	}

	return Session{Token: token, UserID: user.ID, Name: user.Name, Role: role}, nil
}

// ResolveRole reads the dedicated role record first, then the role embedded
// in the profile, then falls back to pending_approval. A missing profile row
// is created with pending_approval.
func (s *Service) ResolveRole(ctx context.Context, userID string) (Role, error) {
	recorded, err := s.Store.RoleRecord(ctx, userID)
	if err != nil {
		return RolePendingApproval, err
	}
	if recorded != "" {
		return ParseRole(recorded), nil
	}

	profileRole, exists, err := s.Store.ProfileRole(ctx, userID)
	if err != nil {
		return RolePendingApproval, err
	}
	if !exists {
		if err := s.Store.CreatePendingProfile(ctx, userID); err != nil {
			return RolePendingApproval, err
		}
		return RolePendingApproval, nil
	}
	if profileRole == "" {
		return RolePendingApproval, nil
	}
	return ParseRole(profileRole), nil
}

// RequestReset issues a one-shot reset token. Unknown emails are not
// reported back to the caller.
func (s *Service) RequestReset(ctx context.Context, email string) error {
	userID, err := s.Store.UserIDByEmail(ctx, email)
	if err != nil {
		return err
	}
	if userID == "" {
		return nil
	}

	token := uuid.NewString()
	if err := s.Tokens.SaveResetToken(ctx, token, userID, s.ResetTTL); err != nil {
		return err
	}
	if err := s.Notifier.PasswordReset(ctx, email, token); err != nil {
		slog.Warn("password reset notify failed", "err", err)
	}
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.Tokens.ConsumeResetToken(ctx, token)
	if err != nil || userID == "" {
		return ErrInvalidResetToken
	}
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Store.UpdateUserPassword(ctx, userID, hash)
}

type MFASetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

func (s *Service) SetupMFA(ctx context.Context, userID, email string) (MFASetup, error) {
	key, err := totp.Generate(totp.GenerateOpts{Issuer: "hrportal", AccountName: email})
	if err != nil {
		return MFASetup{}, err
	}
	if err := s.Store.UpdateMFASecret(ctx, userID, key.Secret()); err != nil {
		return MFASetup{}, err
	}
	return MFASetup{Secret: key.Secret(), URL: key.URL()}, nil
}

func (s *Service) EnableMFA(ctx context.Context, userID, code string) error {
	secret, err := s.Store.MFASecret(ctx, userID)
	if err != nil {
		return err
	}
	if !totp.Validate(code, secret) {
		return ErrInvalidMFACode
	}
	return s.Store.SetMFAEnabled(ctx, userID, true)
}

func (s *Service) DisableMFA(ctx context.Context, userID string) error {
	return s.Store.SetMFAEnabled(ctx, userID, false)
}
