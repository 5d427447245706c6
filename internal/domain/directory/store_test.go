package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

// errQuerier returns the configured error from every row scan.
type errQuerier struct{ err error }

func (q errQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, q.err
}

func (q errQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, q.err
}

func (q errQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: q.err}
}

func (q errQuerier) Begin(context.Context) (pgx.Tx, error) {
	return nil, q.err
}

func TestInsertTranslatesDuplicateEmail(t *testing.T) {
	store := NewStore(errQuerier{err: &pgconn.PgError{Code: "23505", ConstraintName: "users_email_unique"}})

	_, err := store.Insert(context.Background(), "somchai@example.com", "hash", "Somchai")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestInsertPassesOtherErrorsThrough(t *testing.T) {
	boom := errors.New("connection reset")
	store := NewStore(errQuerier{err: boom})

	_, err := store.Insert(context.Background(), "somchai@example.com", "hash", "Somchai")
	if !errors.Is(err, boom) {
		t.Fatalf("expected the raw error, got %v", err)
	}
	if errors.Is(err, ErrEmailTaken) {
		t.Fatal("unrelated errors must not read as a taken email")
	}
}
