package request

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
)

type fakeStore struct {
	byID   map[string]Request
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byID: map[string]Request{}}
}

func (f *fakeStore) Insert(_ context.Context, req Request) (string, error) {
	f.nextID++
	id := fmt.Sprintf("req-%d", f.nextID)
	req.ID = id
	f.byID[id] = req
	return id, nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Request, error) {
	req, ok := f.byID[id]
	if !ok {
		return Request{}, ErrNotFound
	}
	return req, nil
}

func (f *fakeStore) TransitionFromPending(_ context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) (bool, error) {
	req, ok := f.byID[id]
	if !ok || req.Status != StatusPending {
		return false, nil
	}
	req.Status = status
	req.ReviewedBy = reviewedBy
	req.ReviewedAt = &reviewedAt
	f.byID[id] = req
	return true, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, kind Kind, userID string) ([]Request, error) {
	var out []Request
	for _, req := range f.byID {
		if req.Kind == kind && req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPending(_ context.Context, kind Kind) ([]Request, error) {
	var out []Request
	for _, req := range f.byID {
		if req.Kind == kind && req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var (
	employee = Actor{UserID: "u-1", Name: "Somchai", Role: auth.RoleEmployee, Department: "IT"}
	hr       = Actor{UserID: "u-2", Name: "HR One", Role: auth.RoleHR, Department: "HR"}
)

func newTestService(store *fakeStore) *Service {
	svc := NewService(store, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestSubmitRejectsPendingApprovalAccount(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	pending := Actor{UserID: "u-9", Name: "New Hire", Role: auth.RolePendingApproval}
	_, err := svc.Submit(context.Background(), pending, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "vacation",
		StartDate: datePtr(2025, 1, 1),
		EndDate:   datePtr(2025, 1, 2),
		Reason:    "trip",
	})
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
	if len(store.byID) != 0 {
		t.Fatalf("nothing should be written, found %d rows", len(store.byID))
	}
}

func TestSubmitLeaveFiveDays(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "vacation",
		StartDate: datePtr(2025, 1, 1),
		EndDate:   datePtr(2025, 1, 5),
		Reason:    "family trip",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TotalDays != 5 {
		t.Fatalf("expected 5 total days, got %v", req.TotalDays)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", req.Status)
	}
	if req.UserDepartment != "IT" {
		t.Fatalf("expected submitter department annotation, got %q", req.UserDepartment)
	}
}

func TestSubmitLeaveHalfDay(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "sick_half-day",
		StartDate: datePtr(2025, 1, 1),
		EndDate:   datePtr(2025, 1, 31),
		Reason:    "doctor visit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TotalDays != 0.5 {
		t.Fatalf("expected 0.5 total days, got %v", req.TotalDays)
	}
}

func TestSubmitLeaveInvertedRangeWritesNothing(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "vacation",
		StartDate: datePtr(2025, 1, 10),
		EndDate:   datePtr(2025, 1, 5),
		Reason:    "oops",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(store.byID) != 0 {
		t.Fatalf("expected no document written, got %d", len(store.byID))
	}
}

func TestSubmitMissingReason(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "vacation",
		StartDate: datePtr(2025, 1, 1),
		EndDate:   datePtr(2025, 1, 2),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitOvertimeComputesMinutes(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:       KindOvertime,
		Subtype:    "morning_ot",
		StartDate:  datePtr(2025, 2, 3),
		StartClock: "08:00",
		EndClock:   "10:15",
		Reason:     "release support",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TotalMinutes != 135 {
		t.Fatalf("expected 135 minutes, got %d", req.TotalMinutes)
	}
	if req.DurationLabel != "15 minutes / 2 hours" {
		t.Fatalf("unexpected duration label %q", req.DurationLabel)
	}
}

func TestSubmitOvertimeRejectsInvertedClock(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:       KindOvertime,
		Subtype:    "holiday_ot",
		StartDate:  datePtr(2025, 2, 3),
		StartClock: "14:00",
		EndClock:   "08:00",
		Reason:     "backfill",
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitHolidaySwap(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	req, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:         KindHolidaySwap,
		OriginalDate: datePtr(2025, 4, 13),
		TargetDate:   datePtr(2025, 4, 20),
		StartClock:   "09:00",
		EndClock:     "18:00",
		Reason:       "covering songkran shift",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.TotalDays != 0 || req.TotalMinutes != 0 {
		t.Fatal("holiday swap must not derive a quantity")
	}
}

func submitPendingLeave(t *testing.T, svc *Service) Request {
	t.Helper()
	req, err := svc.Submit(context.Background(), employee, SubmitInput{
		Kind:      KindLeave,
		Subtype:   "vacation",
		StartDate: datePtr(2025, 7, 1),
		EndDate:   datePtr(2025, 7, 2),
		Reason:    "short break",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return req
}

func TestTransitionRequiresApproverRole(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submitPendingLeave(t, svc)

	_, err := svc.Transition(context.Background(), employee, req.ID, StatusApproved)
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}

	decided, err := svc.Transition(context.Background(), hr, req.ID, StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decided.Status != StatusApproved {
		t.Fatalf("expected approved, got %s", decided.Status)
	}
	if decided.ReviewedBy != hr.UserID || decided.ReviewedAt == nil {
		t.Fatal("expected reviewer stamp")
	}
}

func TestTransitionIsOneShot(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submitPendingLeave(t, svc)

	if _, err := svc.Transition(context.Background(), hr, req.ID, StatusApproved); err != nil {
		t.Fatalf("first transition failed: %v", err)
	}
	_, err := svc.Transition(context.Background(), hr, req.ID, StatusRejected)
	if !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected already-reviewed error, got %v", err)
	}

	stored, _ := store.Get(context.Background(), req.ID)
	if stored.Status != StatusApproved {
		t.Fatalf("decision must stand, got %s", stored.Status)
	}
}

func TestTransitionRejectsBadStatus(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submitPendingLeave(t, svc)

	if _, err := svc.Transition(context.Background(), hr, req.ID, StatusPending); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTransitionUnknownRequest(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.Transition(context.Background(), hr, "missing", StatusApproved); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCancelOnlyCreatorWhilePending(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submitPendingLeave(t, svc)

	if err := svc.Cancel(context.Background(), hr, req.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("expected permission error for non-creator, got %v", err)
	}

	if err := svc.Cancel(context.Background(), employee, req.ID); err != nil {
		t.Fatalf("creator cancel failed: %v", err)
	}
	if _, err := store.Get(context.Background(), req.ID); !errors.Is(err, ErrNotFound) {
		t.Fatal("expected request to be deleted")
	}
}

func TestCancelBlockedOnceApproved(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	req := submitPendingLeave(t, svc)

	if _, err := svc.Transition(context.Background(), hr, req.ID, StatusApproved); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if err := svc.Cancel(context.Background(), employee, req.ID); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected not-cancellable error, got %v", err)
	}
	if _, err := store.Get(context.Background(), req.ID); err != nil {
		t.Fatal("approved request must remain on record")
	}
}
