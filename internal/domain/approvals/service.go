package approvals

import (
	"context"
	"log/slog"
	"sort"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

// Source lists pending requests of one kind.
type Source interface {
	ListPending(ctx context.Context, kind request.Kind) ([]request.Request, error)
}

// Directory resolves the current department of a set of submitters so the
// aggregation reflects moves that happened after submission.
type Directory interface {
	DepartmentsByUserID(ctx context.Context, userIDs []string) (map[string]string, error)
}

// Transitioner applies a single status transition; request.Service
// satisfies it.
type Transitioner interface {
	Transition(ctx context.Context, actor request.Actor, id string, newStatus request.Status) (request.Request, error)
}

// Counts caches the pending totals shown on the dashboard.
type Counts interface {
	SetPendingCounts(ctx context.Context, counts map[string]int) error
	PendingCounts(ctx context.Context) (map[string]int, error)
}

// Gauge exposes the pending totals to the metrics endpoint.
type Gauge interface {
	SetPending(kind string, n int)
}

type Service struct {
	Source      Source
	Directory   Directory
	Transitions Transitioner
	Cache       Counts
	Metrics     Gauge
}

func NewService(source Source, directory Directory, transitions Transitioner, cache Counts) *Service {
	return &Service{Source: source, Directory: directory, Transitions: transitions, Cache: cache}
}

var aggregatedKinds = []request.Kind{request.KindLeave, request.KindOvertime, request.KindHolidaySwap}

// ListPending merges the pending requests of all three kinds, annotates
// each with the submitter's department and optionally narrows to one
// department. Only approver roles may call it.
func (s *Service) ListPending(ctx context.Context, actor request.Actor, departmentFilter string) ([]request.Request, error) {
	if !canView(actor) {
		return nil, request.ErrPermission
	}

	var merged []request.Request
	for _, kind := range aggregatedKinds {
		items, err := s.Source.ListPending(ctx, kind)
		if err != nil {
			return nil, err
		}
		merged = append(merged, items...)
	}

	s.annotateDepartments(ctx, merged)

	// Totals reflect the whole backlog, not the department slice below.
	counts := map[string]int{}
	for _, item := range merged {
		counts[request.Topic(item.Kind)]++
	}
	if s.Metrics != nil {
		for _, kind := range aggregatedKinds {
			s.Metrics.SetPending(request.Topic(kind), counts[request.Topic(kind)])
		}
	}
	if s.Cache != nil {
		if err := s.Cache.SetPendingCounts(ctx, counts); err != nil {
			slog.Warn("pending counts cache update failed", "err", err)
		}
	}

	if departmentFilter != "" {
		filtered := merged[:0]
		for _, item := range merged {
			if item.UserDepartment == departmentFilter {
				filtered = append(filtered, item)
			}
		}
		merged = filtered
	}

	SortPending(merged)

	return merged, nil
}

func (s *Service) annotateDepartments(ctx context.Context, items []request.Request) {
	if s.Directory == nil || len(items) == 0 {
		return
	}
	ids := make([]string, 0, len(items))
	seen := map[string]bool{}
	for _, item := range items {
		if !seen[item.UserID] {
			seen[item.UserID] = true
			ids = append(ids, item.UserID)
		}
	}
	departments, err := s.Directory.DepartmentsByUserID(ctx, ids)
	if err != nil {
		// The stored snapshot still stands; the join is best effort.
		slog.Warn("department annotation failed", "err", err)
		return
	}
	for i := range items {
		if dep, ok := departments[items[i].UserID]; ok && dep != "" {
			items[i].UserDepartment = dep
		}
	}
}

// SortPending orders for display: newest submission first; a missing
// timestamp sorts as zero, i.e. oldest. The sort is stable so equal
// timestamps keep insertion order.
func SortPending(items []request.Request) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SubmittedAt.After(items[j].SubmittedAt)
	})
}

type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type BulkOutcome struct {
	Applied []string      `json:"applied"`
	Failed  []BulkFailure `json:"failed"`
}

// BulkTransition applies the transition to each id independently. A failing
// item never aborts the rest; failures are collected per id.
func (s *Service) BulkTransition(ctx context.Context, actor request.Actor, ids []string, newStatus request.Status) (BulkOutcome, error) {
	outcome := BulkOutcome{}
	for _, id := range ids {
		if _, err := s.Transitions.Transition(ctx, actor, id, newStatus); err != nil {
			outcome.Failed = append(outcome.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		outcome.Applied = append(outcome.Applied, id)
	}
	return outcome, nil
}

// CachedPendingCounts serves the dashboard badge without a table scan.
func (s *Service) CachedPendingCounts(ctx context.Context) (map[string]int, error) {
	if s.Cache == nil {
		return map[string]int{}, nil
	}
	return s.Cache.PendingCounts(ctx)
}

func canView(actor request.Actor) bool {
	return auth.CanApprove(actor.Role)
}
