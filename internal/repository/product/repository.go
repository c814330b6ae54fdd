package product

import (
	"context"

	"sareeshine/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
