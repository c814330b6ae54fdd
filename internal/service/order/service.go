// Package order reconciles completed hosted payments into durable order
// records.
package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"sareeshine/internal/domain"
	"sareeshine/internal/payment"
)

// Result of a Finalize call. Settled=false is not an error: the payment
// simply has not completed yet, and the caller may re-poll.
type Result struct {
	Settled        bool
	AlreadyExisted bool
	Order          *domain.Order
}

type Service struct {
	provider payment.Provider
	orders   orderRepo
	logger   *zap.Logger
}

type orderRepo interface {
	UpsertBySession(ctx context.Context, o domain.Order) (*domain.Order, bool, error)
}

func New(provider payment.Provider, orders orderRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, orders: orders, logger: logger}
}

// Finalize fetches the payment session and, if it settled, writes the
// order. The write is keyed by session ID, so calling Finalize again for
// the same session (a reloaded success page, a racing duplicate tab)
// converges on the one stored order. The order is built strictly from
// provider-returned data; the visitor's cart is never trusted for pricing.
func (s *Service) Finalize(ctx context.Context, sessionID string) (*Result, error) {
	if sessionID == "" {
		return nil, errors.New("session id required")
	}
	if s.provider == nil {
		return nil, &domain.ConfigurationError{Missing: []string{"STRIPE_SECRET_KEY"}}
	}

	sess, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment session: %w", err)
	}
	if !sess.Paid() {
		s.logger.Info("session not settled yet",
			zap.String("session_id", sessionID),
			zap.String("payment_status", sess.PaymentStatus),
		)
		return &Result{Settled: false}, nil
	}

	order := orderFromSession(sess)
	stored, created, err := s.orders.UpsertBySession(ctx, order)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "save settled order", Err: err}
	}
	if created {
		s.logger.Info("order finalized",
			zap.String("order_id", stored.ID),
			zap.String("session_id", sessionID),
		)
	}
	return &Result{Settled: true, AlreadyExisted: !created, Order: stored}, nil
}

func orderFromSession(sess *payment.SessionDetails) domain.Order {
	sessionID := sess.ID
	order := domain.Order{
		SessionID:  &sessionID,
		Customer:   sess.Customer,
		TotalCents: sess.AmountTotal,
		Currency:   sess.Currency,
		Status:     domain.OrderStatusPaid,
	}
	if sess.PaymentID != "" {
		paymentID := sess.PaymentID
		order.PaymentID = &paymentID
	}
	if sess.ShippingAddr != nil {
		order.ShippingAddr = *sess.ShippingAddr
	}
	for _, li := range sess.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		})
	}
	return order
}
