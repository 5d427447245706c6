package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

type Events interface {
	Publish(topic string, payload any)
}

type Service struct {
	Store     StoreAPI
	Directory Directory
	Events    Events

	now func() time.Time
}

func NewService(store StoreAPI, directory Directory, events Events) *Service {
	return &Service{Store: store, Directory: directory, Events: events, now: time.Now}
}

// Create writes a new payslip. Net pay is always derived from the line
// items, never taken from the caller.
func (s *Service) Create(ctx context.Context, actor request.Actor, input SlipInput) (Payslip, error) {
	if !auth.CanManagePayslips(actor.Role) {
		return Payslip{}, ErrPermission
	}
	if err := validateSlip(input); err != nil {
		return Payslip{}, err
	}

	exists, err := s.Store.Exists(ctx, input.UserID, input.Year, input.Month)
	if err != nil {
		return Payslip{}, err
	}
	if exists {
		return Payslip{}, ErrDuplicate
	}

	name, err := s.Directory.DisplayName(ctx, input.UserID)
	if err != nil {
		return Payslip{}, fmt.Errorf("resolving payslip owner: %w", err)
	}

	now := s.now().UTC()
	payDate, err := resolvePayDate(input, now)
	if err != nil {
		return Payslip{}, err
	}
	slip := Payslip{
		UserID:     input.UserID,
		UserName:   name,
		Year:       input.Year,
		Month:      input.Month,
		PayDate:    payDate,
		Incomes:    input.Incomes,
		Deductions: input.Deductions,
		NetPay:     NetPay(input.Incomes, input.Deductions),
		Note:       strings.TrimSpace(input.Note),
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	id, err := s.Store.Insert(ctx, slip)
	if err != nil {
		return Payslip{}, err
	}
	slip.ID = id
	s.publish(slip)
	return slip, nil
}

// Edit replaces the line items of an existing payslip and recomputes the
// net figure. Year, month and owner are fixed at creation.
func (s *Service) Edit(ctx context.Context, actor request.Actor, id string, input SlipInput) (Payslip, error) {
	if !auth.CanManagePayslips(actor.Role) {
		return Payslip{}, ErrPermission
	}
	if err := validateItems(input.Incomes, input.Deductions); err != nil {
		return Payslip{}, err
	}

	slip, err := s.Store.Get(ctx, id)
	if err != nil {
		return Payslip{}, err
	}
	if strings.TrimSpace(input.PayDate) != "" {
		payDate, err := resolvePayDate(input, slip.PayDate)
		if err != nil {
			return Payslip{}, err
		}
		slip.PayDate = payDate
	}
	slip.Incomes = input.Incomes
	slip.Deductions = input.Deductions
	slip.NetPay = NetPay(input.Incomes, input.Deductions)
	slip.Note = strings.TrimSpace(input.Note)
	slip.UpdatedAt = s.now().UTC()

	if err := s.Store.Update(ctx, slip); err != nil {
		return Payslip{}, err
	}
	s.publish(slip)
	return slip, nil
}

// Get returns one payslip. Employees may only read their own.
func (s *Service) Get(ctx context.Context, actor request.Actor, id string) (Payslip, error) {
	slip, err := s.Store.Get(ctx, id)
	if err != nil {
		return Payslip{}, err
	}
	if slip.UserID != actor.UserID && !auth.CanManagePayslips(actor.Role) {
		return Payslip{}, ErrPermission
	}
	return slip, nil
}

func (s *Service) ListOwn(ctx context.Context, actor request.Actor) ([]Payslip, error) {
	return s.Store.ListByUser(ctx, actor.UserID)
}

func (s *Service) ListMonth(ctx context.Context, actor request.Actor, year, month int) ([]Payslip, error) {
	if !auth.CanManagePayslips(actor.Role) {
		return nil, ErrPermission
	}
	return s.Store.ListByMonth(ctx, year, month)
}

func (s *Service) publish(slip Payslip) {
	if s.Events == nil {
		return
	}
	s.Events.Publish("payslips", map[string]any{
		"userId": slip.UserID,
		"year":   slip.Year,
		"month":  slip.Month,
	})
}

func validateSlip(input SlipInput) error {
	ve := &request.ValidationError{}
	if strings.TrimSpace(input.UserID) == "" {
		ve.Add("userId", "user is required")
	}
	if input.Year < 2000 || input.Year > 2200 {
		ve.Add("year", "year out of range")
	}
	if input.Month < 1 || input.Month > 12 {
		ve.Add("month", "month must be between 1 and 12")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}
	return validateItems(input.Incomes, input.Deductions)
}

// resolvePayDate parses the optional YYYY-MM-DD pay date; the last day of
// the slip month is assumed when omitted.
func resolvePayDate(input SlipInput, fallback time.Time) (time.Time, error) {
	raw := strings.TrimSpace(input.PayDate)
	if raw == "" {
		if input.Year > 0 && input.Month > 0 {
			return time.Date(input.Year, time.Month(input.Month)+1, 0, 0, 0, 0, 0, time.UTC), nil
		}
		return fallback, nil
	}
	payDate, err := time.Parse("2006-01-02", raw)
	if err != nil {
		ve := &request.ValidationError{}
		ve.Add("payDate", "must be YYYY-MM-DD")
		return time.Time{}, ve.OrNil()
	}
	return payDate, nil
}

func validateItems(incomes, deductions []LineItem) error {
	ve := &request.ValidationError{}
	if len(incomes) == 0 {
		ve.Add("incomes", "at least one income item is required")
	}
	checkItems(ve, "incomes", incomes)
	checkItems(ve, "deductions", deductions)
	if err := ve.OrNil(); err != nil {
		return err
	}
	return nil
}

func checkItems(ve *request.ValidationError, field string, items []LineItem) {
	for i, item := range items {
		if strings.TrimSpace(item.Label) == "" {
			ve.Add(fmt.Sprintf("%s[%d].label", field, i), "label is required")
		}
		if item.Amount.IsNegative() {
			ve.Add(fmt.Sprintf("%s[%d].amount", field, i), "amount must not be negative")
		}
	}
}
