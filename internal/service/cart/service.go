package cart

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"sareeshine/internal/domain"
	"sareeshine/internal/shipping"
)

// Service owns cart state for visitors. A cart is loaded from the
// repository on each read, mutated, and written back on every mutation;
// a visitor with no stored cart starts empty.
type Service struct {
	repo     cartRepo
	products productRepo
	logger   *zap.Logger
}

type cartRepo interface {
	Get(ctx context.Context, cartID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, products productRepo, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, products: products, logger: logger}
}

// Get loads the visitor's cart, or an empty one if none is stored.
func (s *Service) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Cart{ID: cartID, Items: []domain.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

// AddItem puts the product in the cart with quantity 1. Adding a product
// that is already present leaves the cart unchanged; it does not bump the
// quantity.
func (s *Service) AddItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart.Contains(product.ID) {
		return cart, nil
	}

	cart.Items = append(cart.Items, domain.CartItem{
		ProductID:  product.ID,
		Slug:       product.Slug,
		Name:       product.Name,
		ImageURL:   product.ImageURL,
		PaymentRef: product.PaymentRef,
		UnitPrice:  product.PriceCents,
		Quantity:   1,
	})
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the product from the cart; removing an absent product is
// a no-op.
func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	removed := false
	for _, it := range cart.Items {
		if it.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		return cart, nil
	}
	cart.Items = kept

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetRegion replaces the destination region used for the shipping fee.
func (s *Service) SetRegion(ctx context.Context, cartID, region string) (*domain.Cart, error) {
	cart, err := s.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.Region = region
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart and unsets the region.
func (s *Service) Clear(ctx context.Context, cartID string) error {
	return s.repo.Delete(ctx, cartID)
}

// Totals derives the amounts for a cart. The shipping fee is zero for an
// empty cart or an unset region.
func Totals(cart *domain.Cart) domain.CartTotals {
	t := domain.CartTotals{
		Subtotal:  cart.Subtotal(),
		ItemCount: cart.ItemCount(),
	}
	if t.ItemCount > 0 && cart.Region != "" {
		t.ShippingFee = shipping.Cost(cart.Region)
	}
	t.GrandTotal = t.Subtotal + t.ShippingFee
	return t
}
