package cart

import (
	"context"

	"sareeshine/internal/domain"
)

// Repository persists visitor carts. Get returns domain.ErrNotFound when no
// cart exists for the ID; callers treat that as an empty cart.
type Repository interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}
