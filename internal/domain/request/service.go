package request

import (
	"context"
	"fmt"
	"time"

	"hrportal/internal/domain/auth"
)

// Events receives change notifications for the realtime feed. Topic is the
// collection name ("leaves", "overtimes", "holidaySwaps").
type Events interface {
	Publish(topic string, payload any)
}

// Notifier is told about lifecycle milestones so the owner (and approvers)
// can be emailed. Failures are logged, never propagated.
type Notifier interface {
	RequestSubmitted(ctx context.Context, req Request)
	RequestDecided(ctx context.Context, req Request)
}

type Service struct {
	Store  StoreAPI
	Events Events
	Notify Notifier

	now func() time.Time
}

func NewService(store StoreAPI, events Events, notify Notifier) *Service {
	return &Service{Store: store, Events: events, Notify: notify, now: time.Now}
}

// Topic maps a kind to its realtime feed topic.
func Topic(kind Kind) string {
	switch kind {
	case KindLeave:
		return "leaves"
	case KindOvertime:
		return "overtimes"
	case KindHolidaySwap:
		return "holidaySwaps"
	}
	return string(kind)
}

// Submit validates the form for its kind, computes the derived quantity and
// writes the request with status pending. Nothing is written when
// validation fails.
func (s *Service) Submit(ctx context.Context, actor Actor, input SubmitInput) (Request, error) {
	if !auth.Activated(actor.Role) {
		return Request{}, ErrPermission
	}
	req, err := build(input)
	if err != nil {
		return Request{}, err
	}

	req.UserID = actor.UserID
	req.UserName = actor.Name
	req.UserDepartment = actor.Department
	req.SubmittedAt = s.now().UTC()

	id, err := s.Store.Insert(ctx, req)
	if err != nil {
		return Request{}, fmt.Errorf("insert %s request: %w", req.Kind, err)
	}
	req.ID = id

	s.publish(req)
	if s.Notify != nil {
		s.Notify.RequestSubmitted(ctx, req)
	}
	return req, nil
}

// Transition resolves a pending request. Only approver roles may call it,
// and it fires exactly once per request: the update is conditioned on the
// row still being pending, so a racing second approver gets
// ErrAlreadyReviewed instead of overwriting the decision.
func (s *Service) Transition(ctx context.Context, actor Actor, id string, newStatus Status) (Request, error) {
	if newStatus != StatusApproved && newStatus != StatusRejected {
		verr := &ValidationError{}
		verr.Add("status", "must be approved or rejected")
		return Request{}, verr
	}
	if !auth.CanApprove(actor.Role) {
		return Request{}, ErrPermission
	}

	reviewedAt := s.now().UTC()
	updated, err := s.Store.TransitionFromPending(ctx, id, newStatus, actor.UserID, reviewedAt)
	if err != nil {
		return Request{}, fmt.Errorf("transition request %s: %w", id, err)
	}
	if !updated {
		if _, err := s.Store.Get(ctx, id); err != nil {
			return Request{}, ErrNotFound
		}
		return Request{}, ErrAlreadyReviewed
	}

	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return Request{}, fmt.Errorf("reload request %s: %w", id, err)
	}

	s.publish(req)
	if s.Notify != nil {
		s.Notify.RequestDecided(ctx, req)
	}
	return req, nil
}

// Cancel deletes a pending request. Only its creator may cancel, and only
// while it is still pending; a resolved request stays on record.
func (s *Service) Cancel(ctx context.Context, actor Actor, id string) error {
	req, err := s.Store.Get(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	if req.UserID != actor.UserID {
		return ErrPermission
	}
	if req.Status != StatusPending {
		return ErrNotCancellable
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request %s: %w", id, err)
	}

	s.publishDeletion(req.Kind, id)
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Request, error) {
	return s.Store.Get(ctx, id)
}

// ListByUser returns the caller's own submissions of one kind, newest
// first.
func (s *Service) ListByUser(ctx context.Context, actor Actor, kind Kind) ([]Request, error) {
	return s.Store.ListByUser(ctx, kind, actor.UserID)
}

func (s *Service) publish(req Request) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(Topic(req.Kind), req)
}

func (s *Service) publishDeletion(kind Kind, id string) {
	if s.Events == nil {
		return
	}
	s.Events.Publish(Topic(kind), map[string]any{"id": id, "deleted": true})
}
