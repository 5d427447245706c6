package request

import (
	"context"
	"time"
)

type StoreAPI interface {
	Insert(ctx context.Context, req Request) (string, error)
	Get(ctx context.Context, id string) (Request, error)
	// TransitionFromPending flips status and stamps the reviewer, but only
	// while the row is still pending. It reports whether a row was updated.
	TransitionFromPending(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, kind Kind, userID string) ([]Request, error)
	ListPending(ctx context.Context, kind Kind) ([]Request, error)
}
