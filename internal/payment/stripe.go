package payment

import (
	"context"
	"errors"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"

	"sareeshine/internal/domain"
)

type stripeProvider struct{}

// NewStripe configures the Stripe SDK with the secret key and returns a
// Provider backed by Checkout Sessions.
func NewStripe(secretKey string) Provider {
	stripe.Key = secretKey
	return &stripeProvider{}
}

func (p *stripeProvider) CreateSession(ctx context.Context, in SessionInput) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"IN"}),
		},
	}
	params.Context = ctx
	for _, it := range in.Items {
		params.LineItems = append(params.LineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(it.PaymentRef),
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}
	if s.URL == "" {
		return nil, errors.New("stripe session has no redirect url")
	}
	return &Session{ID: s.ID, URL: s.URL}, nil
}

func (p *stripeProvider) GetSession(ctx context.Context, id string) (*SessionDetails, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price.product")

	s, err := session.Get(id, params)
	if err != nil {
		return nil, err
	}
	return narrowSession(s), nil
}

// narrowSession flattens Stripe's loosely typed session object into
// SessionDetails, tolerating absent nested objects.
func narrowSession(s *stripe.CheckoutSession) *SessionDetails {
	d := &SessionDetails{
		ID:            s.ID,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
	if s.PaymentIntent != nil {
		d.PaymentID = s.PaymentIntent.ID
	}
	if cd := s.CustomerDetails; cd != nil {
		d.Customer = domain.CustomerDetails{
			Name:  cd.Name,
			Email: cd.Email,
			Phone: cd.Phone,
		}
	}
	if sd := s.ShippingDetails; sd != nil && sd.Address != nil {
		d.ShippingAddr = &domain.Address{
			Line1:      sd.Address.Line1,
			City:       sd.Address.City,
			PostalCode: sd.Address.PostalCode,
			Region:     sd.Address.State,
			Country:    sd.Address.Country,
		}
	}
	if s.LineItems != nil {
		for _, li := range s.LineItems.Data {
			item := SessionLineItem{
				Name:     li.Description,
				Quantity: li.Quantity,
			}
			if li.Price != nil {
				item.UnitPrice = li.Price.UnitAmount
				if li.Price.Product != nil {
					item.ProductID = li.Price.Product.ID
					if li.Price.Product.Name != "" {
						item.Name = li.Price.Product.Name
					}
				}
			}
			d.Items = append(d.Items, item)
		}
	}
	return d
}
