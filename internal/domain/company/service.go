package company

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

// ErrPermission is surfaced directly to the client so an unauthorized edit
// attempt is an explicit failure rather than a silent redirect.
var ErrPermission = errors.New("not allowed to edit the company profile")

type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) error
}

type Service struct {
	Store StoreAPI
	Audit Auditor

	now func() time.Time
}

func NewService(store StoreAPI, audit Auditor) *Service {
	return &Service{Store: store, Audit: audit, now: time.Now}
}

// Get is readable by any signed-in user; the payslip PDF header and the
// profile page both render from it.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	return s.Store.Get(ctx)
}

func (s *Service) Update(ctx context.Context, actor request.Actor, profile Profile) (Profile, error) {
	if !auth.CanEditCompanyProfile(actor.Role) {
		return Profile{}, ErrPermission
	}

	before, err := s.Store.Get(ctx)
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return Profile{}, err
	}

	profile.UpdatedBy = actor.UserID
	profile.UpdatedAt = s.now().UTC()
	if err := s.Store.Upsert(ctx, profile); err != nil {
		return Profile{}, err
	}

	if err := s.Audit.Record(ctx, actor.UserID, "company.update", "company_profile", "1", before, profile); err != nil {
		slog.Warn("audit record failed", "action", "company.update", "error", err)
	}
	return profile, nil
}
