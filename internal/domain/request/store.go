package request

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const requestColumns = `
  id, kind, user_id, user_name, user_department, subtype,
  start_date, end_date, start_clock, end_clock, original_date, target_date,
  total_days, total_minutes, duration_label, reason, status,
  submitted_at, COALESCE(reviewed_by, ''), reviewed_at
`

func scanRequest(row pgx.Row) (Request, error) {
	var req Request
	err := row.Scan(
		&req.ID, &req.Kind, &req.UserID, &req.UserName, &req.UserDepartment, &req.Subtype,
		&req.StartDate, &req.EndDate, &req.StartClock, &req.EndClock, &req.OriginalDate, &req.TargetDate,
		&req.TotalDays, &req.TotalMinutes, &req.DurationLabel, &req.Reason, &req.Status,
		&req.SubmittedAt, &req.ReviewedBy, &req.ReviewedAt,
	)
	return req, err
}

func (s *Store) Insert(ctx context.Context, req Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO requests (
      kind, user_id, user_name, user_department, subtype,
      start_date, end_date, start_clock, end_clock, original_date, target_date,
      total_days, total_minutes, duration_label, reason, status, submitted_at
    )
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
    RETURNING id
  `,
		req.Kind, req.UserID, req.UserName, req.UserDepartment, req.Subtype,
		req.StartDate, req.EndDate, req.StartClock, req.EndClock, req.OriginalDate, req.TargetDate,
		req.TotalDays, req.TotalMinutes, req.DurationLabel, req.Reason, req.Status, req.SubmittedAt,
	).Scan(&id)
	return id, err
}

func (s *Store) Get(ctx context.Context, id string) (Request, error) {
	req, err := scanRequest(s.DB.QueryRow(ctx, "SELECT "+requestColumns+" FROM requests WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrNotFound
	}
	return req, err
}

func (s *Store) TransitionFromPending(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE requests
    SET status = $1, reviewed_by = $2, reviewed_at = $3
    WHERE id = $4 AND status = $5
  `, status, reviewedBy, reviewedAt, id, StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM requests WHERE id = $1", id)
	return err
}

func (s *Store) ListByUser(ctx context.Context, kind Kind, userID string) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM requests
    WHERE kind = $1 AND user_id = $2
    ORDER BY submitted_at DESC
  `, kind, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (s *Store) ListPending(ctx context.Context, kind Kind) ([]Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+requestColumns+`
    FROM requests
    WHERE kind = $1 AND status = $2
  `, kind, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows pgx.Rows) ([]Request, error) {
	var out []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
