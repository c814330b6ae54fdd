package order

import (
	"context"

	"sareeshine/internal/domain"
)

// Repository stores durable order records for both checkout paths.
type Repository interface {
	// CreatePending appends a manual-path order awaiting payment
	// verification.
	CreatePending(ctx context.Context, o domain.Order) (*domain.Order, error)
	// UpsertBySession writes a settled order keyed by the payment
	// session ID. Writing the same session twice converges on a single
	// row; created reports whether this call inserted it.
	UpsertBySession(ctx context.Context, o domain.Order) (stored *domain.Order, created bool, err error)
	GetBySession(ctx context.Context, sessionID string) (*domain.Order, error)
}
