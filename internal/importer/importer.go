// Package importer loads the storefront's products.json feed into the
// catalog table.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sareeshine/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// feedProduct mirrors one entry of the products.json feed.
type feedProduct struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Price       int64  `json:"price"`
	PriceID     string `json:"priceId"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// JSONImporter reads a products.json feed and upserts products keyed by slug.
type JSONImporter struct {
	reader      io.Reader
	productRepo ProductWriter
}

func NewJSONImporter(r io.Reader, repo ProductWriter) *JSONImporter {
	return &JSONImporter{reader: r, productRepo: repo}
}

// Run parses the feed and upserts every valid product. It returns the
// number imported and stops at the first invalid entry or write failure.
func (i *JSONImporter) Run(ctx context.Context) (int, error) {
	var feed []feedProduct
	if err := json.NewDecoder(i.reader).Decode(&feed); err != nil {
		return 0, fmt.Errorf("decode products feed: %w", err)
	}

	imported := 0
	for _, fp := range feed {
		if err := validate(fp); err != nil {
			return imported, err
		}
		p := domain.Product{
			Slug:        strings.TrimSpace(fp.Slug),
			Name:        strings.TrimSpace(fp.Name),
			Description: strings.TrimSpace(fp.Description),
			ImageURL:    strings.TrimSpace(fp.ImageURL),
			PriceCents:  fp.Price,
			PaymentRef:  strings.TrimSpace(fp.PriceID),
		}
		if _, err := i.productRepo.Upsert(ctx, p); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Slug, err)
		}
		imported++
	}
	return imported, nil
}

func validate(fp feedProduct) error {
	if strings.TrimSpace(fp.Slug) == "" {
		return fmt.Errorf("product %q has no slug", fp.Name)
	}
	if strings.TrimSpace(fp.Name) == "" {
		return fmt.Errorf("product %q has no name", fp.Slug)
	}
	if fp.Price < 0 {
		return fmt.Errorf("product %q has negative price %d", fp.Slug, fp.Price)
	}
	return nil
}
