package domain

import "time"

// Currency is the only currency the store sells in.
const Currency = "inr"

// Product is a catalog entry. The catalog is read-only at serve time;
// rows are written by the importer and seed commands only.
type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	PaymentRef  string    `json:"paymentRef,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
