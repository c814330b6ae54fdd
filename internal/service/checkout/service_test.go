package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"sareeshine/internal/domain"
	"sareeshine/internal/payment"
)

type stubProvider struct {
	session   *payment.Session
	createErr error
	lastInput payment.SessionInput
	calls     int
}

func (s *stubProvider) CreateSession(_ context.Context, in payment.SessionInput) (*payment.Session, error) {
	s.calls++
	s.lastInput = in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.session, nil
}

func (s *stubProvider) GetSession(_ context.Context, _ string) (*payment.SessionDetails, error) {
	return nil, errors.New("not implemented")
}

type stubOrders struct {
	created   []domain.Order
	createErr error
}

func (s *stubOrders) CreatePending(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	o.ID = "o1"
	s.created = append(s.created, o)
	return &o, nil
}

type stubFiles struct {
	ref     string
	saveErr error
	saved   int
}

func (s *stubFiles) Save(_ context.Context, _, _ string, _ io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved++
	return s.ref, nil
}

func testCart() *domain.Cart {
	return &domain.Cart{
		ID: "v1",
		Items: []domain.CartItem{
			{ProductID: "p1", Name: "Kanjeevaram Silk Saree", PaymentRef: "price_abc", UnitPrice: 250000, Quantity: 1},
		},
	}
}

func validInput() ManualOrderInput {
	return ManualOrderInput{
		Customer: domain.CustomerDetails{Name: "Asha", Email: "asha@example.com", Phone: "+91 99999 99999"},
		Address:  domain.Address{Line1: "12 MG Road", City: "Hyderabad", PostalCode: "500001", Region: "Telangana"},
		Proof:    &ProofFile{Filename: "proof.png", ContentType: "image/png", Data: strings.NewReader("img")},
	}
}

func TestBeginHostedCheckoutMissingConfig(t *testing.T) {
	svc := New(nil, "", &stubOrders{}, &stubFiles{}, nil)
	_, err := svc.BeginHostedCheckout(context.Background(), testCart())

	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if len(confErr.Missing) != 2 {
		t.Fatalf("expected both settings reported, got %v", confErr.Missing)
	}
}

func TestBeginHostedCheckoutBuildsSession(t *testing.T) {
	provider := &stubProvider{session: &payment.Session{ID: "cs_1", URL: "https://pay.example/cs_1"}}
	svc := New(provider, "https://shop.example/", &stubOrders{}, nil, nil)

	url, err := svc.BeginHostedCheckout(context.Background(), testCart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://pay.example/cs_1" {
		t.Fatalf("unexpected redirect url %q", url)
	}

	in := provider.lastInput
	if in.SuccessURL != "https://shop.example/success?session_id={CHECKOUT_SESSION_ID}" {
		t.Errorf("unexpected success url %q", in.SuccessURL)
	}
	if in.CancelURL != "https://shop.example/canceled" {
		t.Errorf("unexpected cancel url %q", in.CancelURL)
	}
	if len(in.Items) != 1 || in.Items[0].PaymentRef != "price_abc" || in.Items[0].Quantity != 1 {
		t.Errorf("line items must carry payment ref and quantity only: %+v", in.Items)
	}
}

func TestBeginHostedCheckoutEmptyCart(t *testing.T) {
	provider := &stubProvider{session: &payment.Session{ID: "cs_1", URL: "u"}}
	svc := New(provider, "https://shop.example", &stubOrders{}, nil, nil)

	_, err := svc.BeginHostedCheckout(context.Background(), &domain.Cart{ID: "v1"})
	var validErr *domain.ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatal("provider must not be called for an empty cart")
	}
}

func TestBeginHostedCheckoutProviderFailure(t *testing.T) {
	provider := &stubProvider{createErr: errors.New("network down")}
	orders := &stubOrders{}
	svc := New(provider, "https://shop.example", orders, nil, nil)

	_, err := svc.BeginHostedCheckout(context.Background(), testCart())
	var createErr *domain.CheckoutCreationError
	if !errors.As(err, &createErr) {
		t.Fatalf("expected CheckoutCreationError, got %v", err)
	}
	// No local record may exist until payment settles.
	if len(orders.created) != 0 {
		t.Fatal("provider failure must not leave an order behind")
	}
}

func TestBeginHostedCheckoutRetryCreatesFreshSession(t *testing.T) {
	provider := &stubProvider{session: &payment.Session{ID: "cs_1", URL: "u"}}
	svc := New(provider, "https://shop.example", &stubOrders{}, nil, nil)
	ctx := context.Background()

	if _, err := svc.BeginHostedCheckout(ctx, testCart()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.BeginHostedCheckout(ctx, testCart()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.calls != 2 {
		t.Fatalf("expected a new session per invocation, got %d calls", provider.calls)
	}
}

func TestSubmitManualOrderHappyPath(t *testing.T) {
	orders := &stubOrders{}
	files := &stubFiles{ref: "s3://proofs/x.png"}
	svc := New(nil, "", orders, files, nil)

	order, err := svc.SubmitManualOrder(context.Background(), testCart(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Status != domain.OrderStatusPendingVerification {
		t.Errorf("status = %q, want pending_verification", order.Status)
	}
	if order.TotalCents != 250050 {
		t.Errorf("total = %d, want 250050 (subtotal 250000 + Telangana fee 50)", order.TotalCents)
	}
	if order.ShippingFee != 50 {
		t.Errorf("shipping fee = %d, want 50", order.ShippingFee)
	}
	if order.ProofFileRef == nil || *order.ProofFileRef != "s3://proofs/x.png" {
		t.Errorf("proof ref = %v, want stored reference", order.ProofFileRef)
	}
	if order.ShippingAddr.Country != "IN" {
		t.Errorf("country = %q, want IN", order.ShippingAddr.Country)
	}
	if len(order.Items) != 1 || order.Items[0].UnitPrice != 250000 {
		t.Errorf("unexpected items snapshot: %+v", order.Items)
	}
}

func TestSubmitManualOrderMissingPhone(t *testing.T) {
	orders := &stubOrders{}
	files := &stubFiles{ref: "ref"}
	svc := New(nil, "", orders, files, nil)

	in := validInput()
	in.Customer.Phone = "  "
	_, err := svc.SubmitManualOrder(context.Background(), testCart(), in)

	var validErr *domain.ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validErr.Fields) != 1 || validErr.Fields[0] != "phone" {
		t.Fatalf("expected [phone], got %v", validErr.Fields)
	}
	if files.saved != 0 || len(orders.created) != 0 {
		t.Fatal("validation failure must not upload or persist anything")
	}
}

func TestSubmitManualOrderCollectsAllMissingFields(t *testing.T) {
	svc := New(nil, "", &stubOrders{}, &stubFiles{}, nil)

	_, err := svc.SubmitManualOrder(context.Background(), &domain.Cart{ID: "v1"}, ManualOrderInput{})
	var validErr *domain.ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"cart", "name", "email", "phone", "line1", "city", "postalCode", "region", "screenshot"}
	if len(validErr.Fields) != len(want) {
		t.Fatalf("expected %v, got %v", want, validErr.Fields)
	}
	for i, f := range want {
		if validErr.Fields[i] != f {
			t.Fatalf("expected %v, got %v", want, validErr.Fields)
		}
	}
}

func TestSubmitManualOrderRejectsUnknownRegion(t *testing.T) {
	svc := New(nil, "", &stubOrders{}, &stubFiles{ref: "r"}, nil)

	in := validInput()
	in.Address.Region = "Atlantis"
	_, err := svc.SubmitManualOrder(context.Background(), testCart(), in)

	var validErr *domain.ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(validErr.Fields) != 1 || validErr.Fields[0] != "region" {
		t.Fatalf("expected [region], got %v", validErr.Fields)
	}
}

func TestSubmitManualOrderPersistenceFailure(t *testing.T) {
	orders := &stubOrders{createErr: errors.New("db down")}
	svc := New(nil, "", orders, &stubFiles{ref: "r"}, nil)

	_, err := svc.SubmitManualOrder(context.Background(), testCart(), validInput())
	var persErr *domain.PersistenceError
	if !errors.As(err, &persErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
}

func TestSubmitManualOrderProofUploadFailure(t *testing.T) {
	orders := &stubOrders{}
	svc := New(nil, "", orders, &stubFiles{saveErr: errors.New("s3 down")}, nil)

	_, err := svc.SubmitManualOrder(context.Background(), testCart(), validInput())
	var persErr *domain.PersistenceError
	if !errors.As(err, &persErr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if len(orders.created) != 0 {
		t.Fatal("no order may be written when the proof upload fails")
	}
}

func TestSubmitManualOrderWithoutFileStore(t *testing.T) {
	svc := New(nil, "", &stubOrders{}, nil, nil)

	_, err := svc.SubmitManualOrder(context.Background(), testCart(), validInput())
	var confErr *domain.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
