package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sareeshine/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const productColumns = `id::text, slug, name, COALESCE(description, ''), COALESCE(image_url, ''), price_cents, payment_ref, created_at`

func (r *postgresRepo) List(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		r.logger.Error("product list", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.ImageURL, &p.PriceCents, &p.PaymentRef, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("product list rows", zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	return r.fetchOne(ctx, q, id)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE slug = $1
`
	return r.fetchOne(ctx, q, slug)
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg any) (*domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, arg).Scan(&p.ID, &p.Slug, &p.Name, &p.Description, &p.ImageURL, &p.PriceCents, &p.PaymentRef, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("product get", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (id, slug, name, description, image_url, price_cents, payment_ref)
VALUES (COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
ON CONFLICT (slug) DO UPDATE SET
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    image_url = EXCLUDED.image_url,
    price_cents = EXCLUDED.price_cents,
    payment_ref = EXCLUDED.payment_ref
RETURNING id::text, created_at
`
	res := product
	err := r.pool.QueryRow(ctx, q,
		product.ID,
		product.Slug,
		product.Name,
		product.Description,
		product.ImageURL,
		product.PriceCents,
		product.PaymentRef,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error("product upsert", zap.String("slug", product.Slug), zap.Error(err))
		return nil, err
	}
	r.logger.Info("product upserted", zap.String("slug", res.Slug), zap.String("id", res.ID))
	return &res, nil
}
