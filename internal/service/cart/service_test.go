package cart

import (
	"context"
	"errors"
	"testing"

	"sareeshine/internal/domain"
)

type stubRepo struct {
	carts     map[string]*domain.Cart
	getErr    error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func newStubRepo() *stubRepo {
	return &stubRepo{carts: map[string]*domain.Cart{}}
}

func (s *stubRepo) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	cart, ok := s.carts[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *cart
	copied.Items = append([]domain.CartItem(nil), cart.Items...)
	return &copied, nil
}

func (s *stubRepo) Save(_ context.Context, cart *domain.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.carts[cart.ID] = cart
	return nil
}

func (s *stubRepo) Delete(_ context.Context, cartID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes++
	delete(s.carts, cartID)
	return nil
}

type stubProducts struct {
	products map[string]*domain.Product
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func saree() *domain.Product {
	return &domain.Product{
		ID:         "p1",
		Slug:       "kanjeevaram-silk-saree",
		Name:       "Kanjeevaram Silk Saree",
		PriceCents: 250000,
		PaymentRef: "price_abc",
	}
}

func newService(repo *stubRepo) *Service {
	return New(repo, &stubProducts{products: map[string]*domain.Product{"p1": saree()}}, nil)
}

func TestGetReturnsEmptyCartWhenNoneStored(t *testing.T) {
	svc := newService(newStubRepo())
	cart, err := svc.Get(context.Background(), "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.ID != "v1" {
		t.Fatalf("expected cart id v1, got %q", cart.ID)
	}
}

func TestAddItemPersistsAndSnapshotsProduct(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)

	cart, err := svc.AddItem(context.Background(), "v1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Quantity != 1 || item.UnitPrice != 250000 || item.PaymentRef != "price_abc" {
		t.Fatalf("unexpected item snapshot: %+v", item)
	}
	if repo.saves != 1 {
		t.Fatalf("expected 1 save, got %d", repo.saves)
	}
}

func TestAddItemDuplicateIsNoOp(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "v1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.AddItem(ctx, "v1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cart.ItemCount(); got != 1 {
		t.Fatalf("expected item count 1 after duplicate add, got %d", got)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected a single entry, got %d", len(cart.Items))
	}
	// The duplicate add must not even write.
	if repo.saves != 1 {
		t.Fatalf("expected 1 save, got %d", repo.saves)
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	svc := newService(newStubRepo())
	_, err := svc.AddItem(context.Background(), "v1", "nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "v1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.RemoveItem(ctx, "v1", "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}

	// Removing an absent product is a no-op, not an error.
	before := repo.saves
	if _, err := svc.RemoveItem(ctx, "v1", "ghost"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.saves != before {
		t.Fatalf("no-op remove should not save")
	}
}

func TestSetRegionAffectsShippingFee(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "v1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err := svc.SetRegion(ctx, "v1", "Telangana")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	totals := Totals(cart)
	if totals.Subtotal != 250000 {
		t.Errorf("subtotal = %d, want 250000", totals.Subtotal)
	}
	if totals.ShippingFee != 50 {
		t.Errorf("shipping fee = %d, want 50", totals.ShippingFee)
	}
	if totals.GrandTotal != 250050 {
		t.Errorf("grand total = %d, want 250050", totals.GrandTotal)
	}
}

func TestTotalsShippingFeeZeroWhenEmptyOrRegionUnset(t *testing.T) {
	empty := &domain.Cart{ID: "v1", Region: "Telangana"}
	if got := Totals(empty); got.ShippingFee != 0 {
		t.Errorf("empty cart shipping fee = %d, want 0", got.ShippingFee)
	}

	noRegion := &domain.Cart{ID: "v1", Items: []domain.CartItem{{ProductID: "p1", UnitPrice: 100, Quantity: 1}}}
	if got := Totals(noRegion); got.ShippingFee != 0 {
		t.Errorf("region-unset shipping fee = %d, want 0", got.ShippingFee)
	}
	if got := Totals(noRegion); got.GrandTotal != got.Subtotal+got.ShippingFee {
		t.Errorf("grand total invariant broken: %+v", got)
	}
}

func TestClearDeletesStoredCart(t *testing.T) {
	repo := newStubRepo()
	svc := newService(repo)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "v1", "p1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(ctx, "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err := svc.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Items) != 0 || cart.Region != "" {
		t.Fatalf("expected cleared cart, got %+v", cart)
	}
}
