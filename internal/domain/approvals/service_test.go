package approvals

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

type fakeSource struct {
	byKind map[request.Kind][]request.Request
}

func (f *fakeSource) ListPending(_ context.Context, kind request.Kind) ([]request.Request, error) {
	return f.byKind[kind], nil
}

type fakeDirectory struct {
	departments map[string]string
}

func (f *fakeDirectory) DepartmentsByUserID(_ context.Context, _ []string) (map[string]string, error) {
	return f.departments, nil
}

type fakeTransitioner struct {
	failing map[string]error
	applied []string
}

func (f *fakeTransitioner) Transition(_ context.Context, _ request.Actor, id string, _ request.Status) (request.Request, error) {
	if err, ok := f.failing[id]; ok {
		return request.Request{}, err
	}
	f.applied = append(f.applied, id)
	return request.Request{ID: id}, nil
}

func at(day int) time.Time {
	return time.Date(2025, 5, day, 12, 0, 0, 0, time.UTC)
}

func pendingReq(id string, kind request.Kind, userID string, submitted time.Time) request.Request {
	return request.Request{
		ID:          id,
		Kind:        kind,
		UserID:      userID,
		Status:      request.StatusPending,
		SubmittedAt: submitted,
	}
}

var approver = request.Actor{UserID: "hr-1", Role: auth.RoleHR}

func TestListPendingMergesAndSortsNewestFirst(t *testing.T) {
	source := &fakeSource{byKind: map[request.Kind][]request.Request{
		request.KindLeave:       {pendingReq("l1", request.KindLeave, "u1", at(3))},
		request.KindOvertime:    {pendingReq("o1", request.KindOvertime, "u2", at(5))},
		request.KindHolidaySwap: {pendingReq("s1", request.KindHolidaySwap, "u3", at(1))},
	}}
	svc := NewService(source, nil, nil, nil)

	items, err := svc.ListPending(context.Background(), approver, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{items[0].ID, items[1].ID, items[2].ID}
	want := []string{"o1", "l1", "s1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

type fakeGauge struct {
	byKind map[string]int
}

func (f *fakeGauge) SetPending(kind string, n int) {
	if f.byKind == nil {
		f.byKind = map[string]int{}
	}
	f.byKind[kind] = n
}

func TestListPendingUpdatesGauge(t *testing.T) {
	source := &fakeSource{byKind: map[request.Kind][]request.Request{
		request.KindLeave: {
			pendingReq("l1", request.KindLeave, "u1", at(3)),
			pendingReq("l2", request.KindLeave, "u2", at(4)),
		},
		request.KindOvertime: {pendingReq("o1", request.KindOvertime, "u3", at(5))},
	}}
	svc := NewService(source, nil, nil, nil)
	gauge := &fakeGauge{}
	svc.Metrics = gauge

	if _, err := svc.ListPending(context.Background(), approver, "IT"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Totals ignore the department filter and reset absent kinds to zero.
	if gauge.byKind["leaves"] != 2 || gauge.byKind["overtimes"] != 1 {
		t.Fatalf("gauge totals = %v", gauge.byKind)
	}
	if n, ok := gauge.byKind["holidaySwaps"]; !ok || n != 0 {
		t.Fatalf("holidaySwaps gauge = %d (set %v), want explicit 0", n, ok)
	}
}

func TestListPendingMissingTimestampSortsOldest(t *testing.T) {
	source := &fakeSource{byKind: map[request.Kind][]request.Request{
		request.KindLeave: {
			pendingReq("no-ts", request.KindLeave, "u1", time.Time{}),
			pendingReq("dated", request.KindLeave, "u2", at(2)),
		},
	}}
	svc := NewService(source, nil, nil, nil)

	items, err := svc.ListPending(context.Background(), approver, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[len(items)-1].ID != "no-ts" {
		t.Fatalf("missing timestamp must sort oldest, got order %v then %v", items[0].ID, items[1].ID)
	}
}

func TestListPendingStableForEqualTimestamps(t *testing.T) {
	same := at(4)
	source := &fakeSource{byKind: map[request.Kind][]request.Request{
		request.KindLeave: {
			pendingReq("first", request.KindLeave, "u1", same),
			pendingReq("second", request.KindLeave, "u2", same),
		},
	}}
	svc := NewService(source, nil, nil, nil)

	items, _ := svc.ListPending(context.Background(), approver, "")
	if items[0].ID != "first" || items[1].ID != "second" {
		t.Fatalf("tie-break must keep insertion order, got %v, %v", items[0].ID, items[1].ID)
	}
}

func TestListPendingDepartmentFilterUsesCurrentIdentity(t *testing.T) {
	source := &fakeSource{byKind: map[request.Kind][]request.Request{
		request.KindLeave: {
			pendingReq("it-req", request.KindLeave, "u1", at(1)),
			pendingReq("hr-req", request.KindLeave, "u2", at(2)),
		},
	}}
	directory := &fakeDirectory{departments: map[string]string{"u1": "IT", "u2": "HR"}}
	svc := NewService(source, directory, nil, nil)

	items, err := svc.ListPending(context.Background(), approver, "IT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "it-req" {
		t.Fatalf("expected only the IT request, got %v", items)
	}
}

func TestListPendingRequiresApproverRole(t *testing.T) {
	svc := NewService(&fakeSource{}, nil, nil, nil)
	_, err := svc.ListPending(context.Background(), request.Actor{Role: auth.RoleEmployee}, "")
	if !errors.Is(err, request.ErrPermission) {
		t.Fatalf("expected permission error, got %v", err)
	}
}

func TestBulkTransitionContinuesPastFailures(t *testing.T) {
	transitions := &fakeTransitioner{failing: map[string]error{
		"bad": request.ErrAlreadyReviewed,
	}}
	svc := NewService(&fakeSource{}, nil, transitions, nil)

	outcome, err := svc.BulkTransition(context.Background(), approver, []string{"a", "bad", "b"}, request.StatusApproved)
	if err != nil {
		t.Fatalf("bulk must not fail as a whole: %v", err)
	}
	if len(outcome.Applied) != 2 {
		t.Fatalf("expected 2 applied, got %v", outcome.Applied)
	}
	if len(outcome.Failed) != 1 || outcome.Failed[0].ID != "bad" {
		t.Fatalf("expected one collected failure for 'bad', got %v", outcome.Failed)
	}
	if len(transitions.applied) != 2 {
		t.Fatalf("expected remaining items processed, got %v", transitions.applied)
	}
}
