package payroll

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

type StoreAPI interface {
	Insert(ctx context.Context, slip Payslip) (string, error)
	Update(ctx context.Context, slip Payslip) error
	Get(ctx context.Context, id string) (Payslip, error)
	ListByUser(ctx context.Context, userID string) ([]Payslip, error)
	ListByMonth(ctx context.Context, year, month int) ([]Payslip, error)
	Exists(ctx context.Context, userID string, year, month int) (bool, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const payslipColumns = `id, user_id, user_name, year, month, pay_date, incomes, deductions, net_pay, note, created_by, created_at, updated_at`

func (s *Store) Insert(ctx context.Context, slip Payslip) (string, error) {
	incomes, deductions, err := marshalItems(slip)
	if err != nil {
		return "", err
	}
	var id string
	err = s.DB.QueryRow(ctx, `
    INSERT INTO payslips (user_id, user_name, year, month, pay_date, incomes, deductions, net_pay, note, created_by, created_at, updated_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
    RETURNING id
  `, slip.UserID, slip.UserName, slip.Year, slip.Month, slip.PayDate, incomes, deductions,
		slip.NetPay, slip.Note, slip.CreatedBy, slip.CreatedAt, slip.UpdatedAt).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, slip Payslip) error {
	incomes, deductions, err := marshalItems(slip)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, `
    UPDATE payslips
    SET pay_date = $1, incomes = $2, deductions = $3, net_pay = $4, note = $5, updated_at = $6
    WHERE id = $7
  `, slip.PayDate, incomes, deductions, slip.NetPay, slip.Note, slip.UpdatedAt, slip.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Payslip, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+payslipColumns+` FROM payslips WHERE id = $1`, id)
	slip, err := scanPayslip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payslip{}, ErrNotFound
	}
	return slip, err
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payslipColumns+` FROM payslips
    WHERE user_id = $1
    ORDER BY year DESC, month DESC
  `, userID)
	if err != nil {
		return nil, err
	}
	return collectPayslips(rows)
}

func (s *Store) ListByMonth(ctx context.Context, year, month int) ([]Payslip, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+payslipColumns+` FROM payslips
    WHERE year = $1 AND month = $2
    ORDER BY user_name
  `, year, month)
	if err != nil {
		return nil, err
	}
	return collectPayslips(rows)
}

func (s *Store) Exists(ctx context.Context, userID string, year, month int) (bool, error) {
	var exists bool
	err := s.DB.QueryRow(ctx, `
    SELECT EXISTS (SELECT 1 FROM payslips WHERE user_id = $1 AND year = $2 AND month = $3)
  `, userID, year, month).Scan(&exists)
	return exists, err
}

func marshalItems(slip Payslip) ([]byte, []byte, error) {
	incomes, err := json.Marshal(slip.Incomes)
	if err != nil {
		return nil, nil, err
	}
	deductions, err := json.Marshal(slip.Deductions)
	if err != nil {
		return nil, nil, err
	}
	return incomes, deductions, nil
}

func scanPayslip(row pgx.Row) (Payslip, error) {
	var (
		slip       Payslip
		incomes    []byte
		deductions []byte
	)
	err := row.Scan(&slip.ID, &slip.UserID, &slip.UserName, &slip.Year, &slip.Month,
		&slip.PayDate, &incomes, &deductions, &slip.NetPay, &slip.Note,
		&slip.CreatedBy, &slip.CreatedAt, &slip.UpdatedAt)
	if err != nil {
		return Payslip{}, err
	}
	if err := json.Unmarshal(incomes, &slip.Incomes); err != nil {
		return Payslip{}, err
	}
	if err := json.Unmarshal(deductions, &slip.Deductions); err != nil {
		return Payslip{}, err
	}
	return slip, nil
}

func collectPayslips(rows pgx.Rows) ([]Payslip, error) {
	defer rows.Close()
	var out []Payslip
	for rows.Next() {
		slip, err := scanPayslip(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, slip)
	}
	return out, rows.Err()
}
