// Package checkout turns a finalized cart into a payment: either a hosted
// provider session the visitor is redirected to, or a manually paid order
// submitted with an uploaded payment proof.
package checkout

import (
	"context"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sareeshine/internal/domain"
	"sareeshine/internal/filestore"
	"sareeshine/internal/payment"
	"sareeshine/internal/shipping"
)

type Service struct {
	provider payment.Provider
	siteURL  string
	orders   orderRepo
	files    filestore.Store
	logger   *zap.Logger
}

type orderRepo interface {
	CreatePending(ctx context.Context, o domain.Order) (*domain.Order, error)
}

// New wires the orchestrator. provider and files may be nil when the
// deployment lacks the corresponding settings; the affected path then
// fails with a ConfigurationError at call time.
func New(provider payment.Provider, siteURL string, orders orderRepo, files filestore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		provider: provider,
		siteURL:  strings.TrimRight(siteURL, "/"),
		orders:   orders,
		files:    files,
		logger:   logger,
	}
}

// BeginHostedCheckout creates a single-use payment session for the cart and
// returns the provider's redirect URL. Line items are keyed by payment
// reference and quantity only; the provider derives the charged amount.
// Nothing is persisted locally, so an abandoned session needs no cleanup
// and a retry simply creates a fresh session.
func (s *Service) BeginHostedCheckout(ctx context.Context, cart *domain.Cart) (string, error) {
	var missing []string
	if s.provider == nil {
		missing = append(missing, "STRIPE_SECRET_KEY")
	}
	if s.siteURL == "" {
		missing = append(missing, "SITE_URL")
	}
	if len(missing) > 0 {
		return "", &domain.ConfigurationError{Missing: missing}
	}
	if cart.ItemCount() == 0 {
		return "", &domain.ValidationError{Fields: []string{"cart"}}
	}

	in := payment.SessionInput{
		SuccessURL: s.siteURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  s.siteURL + "/canceled",
	}
	for _, it := range cart.Items {
		if it.PaymentRef == "" {
			return "", &domain.ValidationError{Fields: []string{"paymentRef"}}
		}
		in.Items = append(in.Items, payment.LineItemInput{
			PaymentRef: it.PaymentRef,
			Quantity:   int64(it.Quantity),
		})
	}

	sess, err := s.provider.CreateSession(ctx, in)
	if err != nil {
		s.logger.Error("create payment session", zap.Error(err))
		return "", &domain.CheckoutCreationError{Err: err}
	}
	s.logger.Info("payment session created", zap.String("session_id", sess.ID))
	return sess.URL, nil
}

// ProofFile is an uploaded payment screenshot.
type ProofFile struct {
	Filename    string
	ContentType string
	Data        io.Reader
}

type ManualOrderInput struct {
	Customer domain.CustomerDetails
	Address  domain.Address
	Proof    *ProofFile
}

// SubmitManualOrder validates the submission, stores the proof, computes
// totals server-side from the cart snapshot and the shipping table, and
// persists a pending order. The caller clears the cart only after this
// returns nil; on any failure prior state is untouched so the visitor can
// retry.
func (s *Service) SubmitManualOrder(ctx context.Context, cart *domain.Cart, in ManualOrderInput) (*domain.Order, error) {
	if err := validateManualOrder(cart, in); err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, &domain.ConfigurationError{Missing: []string{"S3_BUCKET"}}
	}

	key := uuid.NewString() + strings.ToLower(path.Ext(in.Proof.Filename))
	ref, err := s.files.Save(ctx, key, in.Proof.ContentType, in.Proof.Data)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "store payment proof", Err: err}
	}

	subtotal := cart.Subtotal()
	fee := shipping.Cost(in.Address.Region)

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  int64(it.Quantity),
			UnitPrice: it.UnitPrice,
		})
	}

	addr := in.Address
	addr.Country = "IN"

	order := domain.Order{
		Customer:     in.Customer,
		TotalCents:   subtotal + fee,
		ShippingFee:  fee,
		Currency:     domain.Currency,
		Items:        items,
		ShippingAddr: addr,
		Status:       domain.OrderStatusPendingVerification,
		ProofFileRef: &ref,
	}

	stored, err := s.orders.CreatePending(ctx, order)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "save order", Err: err}
	}
	s.logger.Info("manual order submitted",
		zap.String("order_id", stored.ID),
		zap.Int64("total_cents", stored.TotalCents),
	)
	return stored, nil
}

func validateManualOrder(cart *domain.Cart, in ManualOrderInput) error {
	var fields []string
	if cart.ItemCount() == 0 {
		fields = append(fields, "cart")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(in.Customer.Email) == "" {
		fields = append(fields, "email")
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		fields = append(fields, "phone")
	}
	if strings.TrimSpace(in.Address.Line1) == "" {
		fields = append(fields, "line1")
	}
	if strings.TrimSpace(in.Address.City) == "" {
		fields = append(fields, "city")
	}
	if strings.TrimSpace(in.Address.PostalCode) == "" {
		fields = append(fields, "postalCode")
	}
	if !shipping.ValidState(in.Address.Region) {
		fields = append(fields, "region")
	}
	if in.Proof == nil || in.Proof.Data == nil {
		fields = append(fields, "screenshot")
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
