// Package payment abstracts the hosted card-payment provider. Sessions are
// created against opaque payment references so the provider, not the
// client, is the source of truth for the charged amount.
package payment

import (
	"context"

	"sareeshine/internal/domain"
)

// PaymentStatusPaid is the provider status a settled session reports.
const PaymentStatusPaid = "paid"

type LineItemInput struct {
	PaymentRef string
	Quantity   int64
}

type SessionInput struct {
	Items      []LineItemInput
	SuccessURL string
	CancelURL  string
}

// Session is the result of creating a hosted checkout session: the provider
// session ID and the URL the visitor is redirected to.
type Session struct {
	ID  string
	URL string
}

type SessionLineItem struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice int64
}

// SessionDetails is the narrowed shape of a retrieved session. Provider
// responses are validated into this struct once, at the boundary.
type SessionDetails struct {
	ID            string
	PaymentStatus string
	PaymentID     string
	AmountTotal   int64
	Currency      string
	Customer      domain.CustomerDetails
	ShippingAddr  *domain.Address
	Items         []SessionLineItem
}

// Paid reports whether the session's payment has settled.
func (d *SessionDetails) Paid() bool {
	return d.PaymentStatus == PaymentStatusPaid
}

type Provider interface {
	// CreateSession requests a single-use hosted payment session. The
	// success URL carries a session-ID placeholder the provider
	// substitutes at redirect time.
	CreateSession(ctx context.Context, in SessionInput) (*Session, error)
	// GetSession retrieves a session with line items and customer detail
	// expanded.
	GetSession(ctx context.Context, id string) (*SessionDetails, error)
}
