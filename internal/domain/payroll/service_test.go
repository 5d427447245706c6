package payroll

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/request"
)

type fakeStore struct {
	slips  map[string]Payslip
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{slips: map[string]Payslip{}, nextID: 1}
}

func (f *fakeStore) Insert(_ context.Context, slip Payslip) (string, error) {
	id := strconv.Itoa(f.nextID)
	f.nextID++
	slip.ID = id
	f.slips[id] = slip
	return id, nil
}

func (f *fakeStore) Update(_ context.Context, slip Payslip) error {
	if _, ok := f.slips[slip.ID]; !ok {
		return ErrNotFound
	}
	f.slips[slip.ID] = slip
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (Payslip, error) {
	slip, ok := f.slips[id]
	if !ok {
		return Payslip{}, ErrNotFound
	}
	return slip, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]Payslip, error) {
	var out []Payslip
	for _, slip := range f.slips {
		if slip.UserID == userID {
			out = append(out, slip)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByMonth(_ context.Context, year, month int) ([]Payslip, error) {
	var out []Payslip
	for _, slip := range f.slips {
		if slip.Year == year && slip.Month == month {
			out = append(out, slip)
		}
	}
	return out, nil
}

func (f *fakeStore) Exists(_ context.Context, userID string, year, month int) (bool, error) {
	for _, slip := range f.slips {
		if slip.UserID == userID && slip.Year == year && slip.Month == month {
			return true, nil
		}
	}
	return false, nil
}

type fakeDirectory struct{}

func (fakeDirectory) DisplayName(_ context.Context, userID string) (string, error) {
	return "Name of " + userID, nil
}

func newPayrollService(store *fakeStore) *Service {
	svc := NewService(store, fakeDirectory{}, nil)
	svc.now = func() time.Time { return time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func hrActor() request.Actor {
	return request.Actor{UserID: "hr-1", Name: "HR One", Role: auth.RoleHR}
}

func validInput() SlipInput {
	return SlipInput{
		UserID: "emp-1",
		Year:   2025,
		Month:  6,
		Incomes: []LineItem{
			{Label: "Base salary", Amount: amt("30000")},
		},
		Deductions: []LineItem{
			{Label: "Social security", Amount: amt("750")},
		},
	}
}

func TestCreateComputesNet(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	slip, err := svc.Create(context.Background(), hrActor(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if slip.NetPay.StringFixed(2) != "29250.00" {
		t.Fatalf("net = %s, want 29250.00", slip.NetPay.StringFixed(2))
	}
	if slip.UserName != "Name of emp-1" {
		t.Fatalf("userName = %q", slip.UserName)
	}
	if slip.CreatedBy != "hr-1" {
		t.Fatalf("createdBy = %q", slip.CreatedBy)
	}
}

func TestCreateRequiresPayslipRole(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	for _, role := range []auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleAdmin} {
		_, err := svc.Create(context.Background(), request.Actor{UserID: "u", Role: role}, validInput())
		if !errors.Is(err, ErrPermission) {
			t.Fatalf("role %s: expected ErrPermission, got %v", role, err)
		}
	}
}

func TestCreateRejectsNegativeAmounts(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	input := validInput()
	input.Deductions = []LineItem{{Label: "Tax", Amount: amt("-50")}}
	_, err := svc.Create(context.Background(), hrActor(), input)
	var ve *request.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsDuplicateMonth(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	if _, err := svc.Create(context.Background(), hrActor(), validInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(context.Background(), hrActor(), validInput())
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestEditRecomputesNet(t *testing.T) {
	store := newFakeStore()
	svc := newPayrollService(store)

	slip, err := svc.Create(context.Background(), hrActor(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	edited, err := svc.Edit(context.Background(), hrActor(), slip.ID, SlipInput{
		Incomes:    []LineItem{{Label: "Base salary", Amount: amt("31000")}},
		Deductions: []LineItem{{Label: "Social security", Amount: amt("750")}},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.NetPay.StringFixed(2) != "30250.00" {
		t.Fatalf("net = %s, want 30250.00", edited.NetPay.StringFixed(2))
	}
	if edited.Year != 2025 || edited.Month != 6 || edited.UserID != "emp-1" {
		t.Fatalf("owner/month changed on edit: %+v", edited)
	}
}

func TestGetOwnershipCheck(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	slip, err := svc.Create(context.Background(), hrActor(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	owner := request.Actor{UserID: "emp-1", Role: auth.RoleEmployee}
	if _, err := svc.Get(context.Background(), owner, slip.ID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	stranger := request.Actor{UserID: "emp-2", Role: auth.RoleEmployee}
	if _, err := svc.Get(context.Background(), stranger, slip.ID); !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}

func TestListMonthRequiresPayslipRole(t *testing.T) {
	svc := newPayrollService(newFakeStore())

	_, err := svc.ListMonth(context.Background(), request.Actor{Role: auth.RoleEmployee}, 2025, 6)
	if !errors.Is(err, ErrPermission) {
		t.Fatalf("expected ErrPermission, got %v", err)
	}
}
