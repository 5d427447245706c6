package holiday

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

var ErrPermission = errors.New("not allowed to manage holiday assignments")

type Auditor interface {
	Record(ctx context.Context, actorID, action, entityType, entityID string, before, after any) error
}

type Events interface {
	Publish(topic string, payload any)
}

type AssignInput struct {
	Department  string
	Date        time.Time
	EmployeeUID string
	Type        string
	Reason      string
}

type Service struct {
	Store  StoreAPI
	Audit  Auditor
	Events Events

	now func() time.Time
}

func NewService(store StoreAPI, audit Auditor, events Events) *Service {
	return &Service{Store: store, Audit: audit, Events: events, now: time.Now}
}

func (s *Service) Assign(ctx context.Context, actor request.Actor, input AssignInput) (Assignment, error) {
	if !auth.CanManageHolidays(actor.Role) {
		return Assignment{}, ErrPermission
	}
	ve := validateAssign(input)
	if ve != nil {
		return Assignment{}, ve
	}

	assignment := Assignment{
		Department:  strings.TrimSpace(input.Department),
		Date:        input.Date.Truncate(24 * time.Hour),
		EmployeeUID: strings.TrimSpace(input.EmployeeUID),
		Type:        strings.TrimSpace(input.Type),
		Reason:      strings.TrimSpace(input.Reason),
		CreatedBy:   actor.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Store.CreateWithHistory(ctx, assignment); err != nil {
		return Assignment{}, err
	}
	s.publish(assignment.Date)
	return assignment, nil
}

func (s *Service) Unassign(ctx context.Context, actor request.Actor, department string, date time.Time, employeeUID string) error {
	if !auth.CanManageHolidays(actor.Role) {
		return ErrPermission
	}
	removed, err := s.Store.DeleteWithHistory(ctx, department, date.Truncate(24*time.Hour), employeeUID, actor.UserID)
	if err != nil {
		return err
	}
	// Assignments are hard-deleted, so the audit trail is the only record of
	// what was removed.
	if err := s.Audit.Record(ctx, actor.UserID, "holiday.unassign", "holiday_assignment",
		removed.Department+"/"+removed.Date.Format("2006-01-02")+"/"+removed.EmployeeUID, removed, nil); err != nil {
		slog.Warn("audit record failed", "action", "holiday.unassign", "error", err)
	}
	s.publish(removed.Date)
	return nil
}

func (s *Service) Month(ctx context.Context, year, month int, department string) ([]Assignment, error) {
	return s.Store.ListByMonth(ctx, year, month, department)
}

func (s *Service) History(ctx context.Context, actor request.Actor, year, month int) ([]HistoryEntry, error) {
	if !auth.CanManageHolidays(actor.Role) {
		return nil, ErrPermission
	}
	return s.Store.History(ctx, year, month)
}

func (s *Service) publish(date time.Time) {
	if s.Events == nil {
		return
	}
	s.Events.Publish("holidays", map[string]any{
		"year":  date.Year(),
		"month": int(date.Month()),
	})
}

func validateAssign(input AssignInput) *request.ValidationError {
	ve := &request.ValidationError{}
	if strings.TrimSpace(input.Department) == "" {
		ve.Add("department", "department is required")
	}
	if input.Date.IsZero() {
		ve.Add("date", "date is required")
	}
	if strings.TrimSpace(input.EmployeeUID) == "" {
		ve.Add("employeeUid", "employee is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		ve.Add("type", "type is required")
	}
	return ve.OrNil()
}
