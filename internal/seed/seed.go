package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Slug        string
	Name        string
	Description string
	ImageURL    string
	PriceCents  int64
	PaymentRef  string
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Slug:        "kanjeevaram-silk-saree",
			Name:        "Kanjeevaram Silk Saree",
			Description: "Handwoven Kanjeevaram silk with zari border",
			ImageURL:    "https://placehold.co/600x800.png",
			PriceCents:  250000,
			PaymentRef:  "price_seed_kanjeevaram",
		},
		{
			Slug:        "banarasi-georgette-saree",
			Name:        "Banarasi Georgette Saree",
			Description: "Classic Banarasi weave in soft georgette",
			ImageURL:    "https://placehold.co/600x800.png",
			PriceCents:  180000,
			PaymentRef:  "price_seed_banarasi",
		},
		{
			Slug:        "pochampally-ikat-saree",
			Name:        "Pochampally Ikat Saree",
			Description: "Geometric ikat patterns from Pochampally looms",
			ImageURL:    "https://placehold.co/600x800.png",
			PriceCents:  95000,
			PaymentRef:  "price_seed_pochampally",
		},
	}

	for _, p := range products {
		const q = `
INSERT INTO products (slug, name, description, image_url, price_cents, payment_ref)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (slug) DO NOTHING
`
		if _, err := pool.Exec(ctx, q, p.Slug, p.Name, p.Description, p.ImageURL, p.PriceCents, p.PaymentRef); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Slug, err)
		}
	}
	return nil
}
