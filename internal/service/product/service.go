package product

import (
	"context"

	"sareeshine/internal/domain"
)

// Service exposes the read-only catalog.
type Service struct {
	repo repository
}

type repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

func New(repo repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.repo.GetBySlug(ctx, slug)
}
