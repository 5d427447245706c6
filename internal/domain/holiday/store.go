package holiday

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

var ErrNotFound = errors.New("holiday assignment not found")

type StoreAPI interface {
	// CreateWithHistory inserts the assignment and its history entry in one
	// transaction so the log can never miss a change.
	CreateWithHistory(ctx context.Context, assignment Assignment) error
	DeleteWithHistory(ctx context.Context, department string, date time.Time, employeeUID, actor string) (Assignment, error)
	ListByMonth(ctx context.Context, year, month int, department string) ([]Assignment, error)
	History(ctx context.Context, year, month int) ([]HistoryEntry, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateWithHistory(ctx context.Context, assignment Assignment) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO holiday_assignments (department, date, employee_uid, type, reason, created_by, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    ON CONFLICT (department, date, employee_uid)
    DO UPDATE SET type = EXCLUDED.type, reason = EXCLUDED.reason, created_by = EXCLUDED.created_by, created_at = EXCLUDED.created_at
  `, assignment.Department, assignment.Date, assignment.EmployeeUID, assignment.Type, assignment.Reason, assignment.CreatedBy, assignment.CreatedAt); err != nil {
		return err
	}

	if err := appendHistory(ctx, tx, ActionAssign, assignment, assignment.CreatedBy); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *Store) DeleteWithHistory(ctx context.Context, department string, date time.Time, employeeUID, actor string) (Assignment, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Assignment{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var removed Assignment
	err = tx.QueryRow(ctx, `
    DELETE FROM holiday_assignments
    WHERE department = $1 AND date = $2 AND employee_uid = $3
    RETURNING department, date, employee_uid, type, reason, created_by, created_at
  `, department, date, employeeUID).Scan(
		&removed.Department, &removed.Date, &removed.EmployeeUID,
		&removed.Type, &removed.Reason, &removed.CreatedBy, &removed.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Assignment{}, ErrNotFound
	}
	if err != nil {
		return Assignment{}, err
	}

	if err := appendHistory(ctx, tx, ActionUnassign, removed, actor); err != nil {
		return Assignment{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Assignment{}, err
	}
	return removed, nil
}

func appendHistory(ctx context.Context, tx pgx.Tx, action string, assignment Assignment, actor string) error {
	_, err := tx.Exec(ctx, `
    INSERT INTO holiday_history (year, month, action, department, date, employee_uid, type, reason, actor)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
  `, assignment.Date.Year(), int(assignment.Date.Month()), action,
		assignment.Department, assignment.Date, assignment.EmployeeUID,
		assignment.Type, assignment.Reason, actor)
	return err
}

func (s *Store) ListByMonth(ctx context.Context, year, month int, department string) ([]Assignment, error) {
	query := `
    SELECT department, date, employee_uid, type, reason, created_by, created_at
    FROM holiday_assignments
    WHERE EXTRACT(YEAR FROM date) = $1 AND EXTRACT(MONTH FROM date) = $2
  `
	args := []any{year, month}
	if department != "" {
		query += " AND department = $3"
		args = append(args, department)
	}
	query += " ORDER BY date, employee_uid"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.Department, &a.Date, &a.EmployeeUID, &a.Type, &a.Reason, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) History(ctx context.Context, year, month int) ([]HistoryEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, year, month, action, department, date, employee_uid, type, reason, actor, created_at
    FROM holiday_history
    WHERE year = $1 AND month = $2
    ORDER BY created_at
  `, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Year, &e.Month, &e.Action, &e.Department, &e.Date, &e.EmployeeUID, &e.Type, &e.Reason, &e.Actor, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
