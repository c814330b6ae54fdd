package domain

import "time"

// Cart is a visitor's cart. Items are kept in insertion order and keyed by
// product ID: adding a product that is already present is a no-op, not a
// quantity bump. Region is empty until the visitor picks a destination.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	Region    string     `json:"region,omitempty"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ProductID  string `json:"productId"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	ImageURL   string `json:"imageUrl,omitempty"`
	PaymentRef string `json:"paymentRef,omitempty"`
	UnitPrice  int64  `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

// CartTotals are the derived amounts for a cart. GrandTotal is always
// Subtotal + ShippingFee, and ShippingFee is 0 for an empty cart or an
// unset region.
type CartTotals struct {
	Subtotal    int64 `json:"subtotal"`
	ShippingFee int64 `json:"shippingFee"`
	GrandTotal  int64 `json:"grandTotal"`
	ItemCount   int   `json:"itemCount"`
}

// Contains reports whether the cart already holds the given product.
func (c *Cart) Contains(productID string) bool {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}

// Subtotal is the sum of unit price times quantity over all items.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.Items {
		sum += it.UnitPrice * int64(it.Quantity)
	}
	return sum
}

// ItemCount is the sum of quantities over all items.
func (c *Cart) ItemCount() int {
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
