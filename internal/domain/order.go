package domain

import "time"

// Order statuses. Pending orders never auto-transition; payment
// verification for the manual path is a human step.
const (
	OrderStatusPaid                = "paid"
	OrderStatusPendingVerification = "pending_verification"
)

// Address is a shipping destination. Country is fixed to India; Region must
// be one of the states enumerated by the shipping package.
type Address struct {
	Line1      string `json:"line1"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Region     string `json:"region"`
	Country    string `json:"country"`
}

// CustomerDetails identify the buyer. Required in full for the manual
// payment path; derived from the payment provider for the hosted path.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Order is the durable record both checkout paths converge on. For settled
// (hosted-payment) orders SessionID is the provider's checkout session ID
// and acts as the natural key that makes reconciliation idempotent. For
// pending (manual) orders SessionID is nil and ProofFileRef points at the
// uploaded payment screenshot.
type Order struct {
	ID           string          `json:"id"`
	SessionID    *string         `json:"sessionId,omitempty"`
	Customer     CustomerDetails `json:"customer"`
	PaymentID    *string         `json:"paymentId,omitempty"`
	TotalCents   int64           `json:"totalCents"`
	ShippingFee  int64           `json:"shippingFee"`
	Currency     string          `json:"currency"`
	Items        []OrderItem     `json:"items"`
	ShippingAddr Address         `json:"shippingAddress"`
	Status       string          `json:"status"`
	ProofFileRef *string         `json:"proofFileRef,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}
