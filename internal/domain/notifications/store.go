package notifications

import (
	"context"

	"hrportal/internal/platform/querier"
)

type StoreAPI interface {
	Insert(ctx context.Context, n Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	UserEmail(ctx context.Context, userID string) (string, error)
	ApproverEmails(ctx context.Context) ([]string, error)
}

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Insert(ctx context.Context, n Notification) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (user_id, type, title, body, read, created_at)
    VALUES ($1,$2,$3,$4,false,$5)
  `, n.UserID, n.Type, n.Title, n.Body, n.CreatedAt)
	return err
}

func (s *Store) ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, user_id, type, title, body, read, created_at
    FROM notifications
    WHERE user_id = $1
    ORDER BY created_at DESC
    LIMIT $2
  `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) MarkRead(ctx context.Context, userID, id string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2
  `, id, userID)
	return err
}

func (s *Store) UserEmail(ctx context.Context, userID string) (string, error) {
	var email string
	err := s.DB.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, userID).Scan(&email)
	return email, err
}

// ApproverEmails returns the addresses of everyone who reviews requests.
func (s *Store) ApproverEmails(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT email FROM users
    WHERE is_deleted = false AND role IN ('hr', 'Manager', 'CEO', 'commander')
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}
