package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"hrportal/internal/domain/request"
)

// Queue hands email jobs to the broker; the worker drains them outside the
// request path.
type Queue interface {
	PublishEmail(ctx context.Context, job EmailJob) error
}

type Service struct {
	Store StoreAPI
	Queue Queue

	now func() time.Time
}

func New(store StoreAPI, queue Queue) *Service {
	return &Service{Store: store, Queue: queue, now: time.Now}
}

// RequestSubmitted tells every approver a new request is waiting. Delivery
// problems are logged and swallowed; a lost email never fails a submission.
func (s *Service) RequestSubmitted(ctx context.Context, req request.Request) {
	title := fmt.Sprintf("New %s request from %s", kindLabel(req.Kind), req.UserName)
	body := fmt.Sprintf("%s submitted a %s request: %s", req.UserName, kindLabel(req.Kind), req.Reason)

	emails, err := s.Store.ApproverEmails(ctx)
	if err != nil {
		slog.Warn("approver email lookup failed", "error", err)
		return
	}
	for _, email := range emails {
		s.queueEmail(ctx, EmailJob{To: email, Subject: title, Body: body})
	}
}

// RequestDecided records an in-app notification for the owner and queues
// the decision email.
func (s *Service) RequestDecided(ctx context.Context, req request.Request) {
	ntype := TypeRequestApproved
	if req.Status == request.StatusRejected {
		ntype = TypeRequestRejected
	}
	title := fmt.Sprintf("Your %s request was %s", kindLabel(req.Kind), req.Status)
	body := fmt.Sprintf("Your %s request (%s) was %s by %s.", kindLabel(req.Kind), req.Reason, req.Status, req.ReviewedBy)

	if err := s.Store.Insert(ctx, Notification{
		UserID:    req.UserID,
		Type:      ntype,
		Title:     title,
		Body:      body,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		slog.Warn("notification insert failed", "error", err)
	}

	email, err := s.Store.UserEmail(ctx, req.UserID)
	if err != nil {
		slog.Warn("notification email lookup failed", "error", err)
		return
	}
	s.queueEmail(ctx, EmailJob{To: email, Subject: title, Body: body})
}

// PasswordReset queues the reset-token email.
func (s *Service) PasswordReset(ctx context.Context, email, token string) error {
	if s.Queue == nil {
		return nil
	}
	return s.Queue.PublishEmail(ctx, EmailJob{
		To:      email,
		Subject: "Password reset",
		Body:    "Use this token to reset your password: " + token,
	})
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.Store.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	return s.Store.MarkRead(ctx, userID, id)
}

func (s *Service) queueEmail(ctx context.Context, job EmailJob) {
	if s.Queue == nil || job.To == "" {
		return
	}
	if err := s.Queue.PublishEmail(ctx, job); err != nil {
		slog.Warn("email publish failed", "to", job.To, "error", err)
	}
}

func kindLabel(kind request.Kind) string {
	switch kind {
	case request.KindLeave:
		return "leave"
	case request.KindOvertime:
		return "overtime"
	case request.KindHolidaySwap:
		return "holiday swap"
	default:
		return string(kind)
	}
}
