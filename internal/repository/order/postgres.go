package order

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"sareeshine/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreatePending(ctx context.Context, o domain.Order) (*domain.Order, error) {
	const q = `
INSERT INTO orders (session_id, customer_name, customer_email, customer_phone, payment_id,
                    total_cents, shipping_fee_cents, currency, items,
                    ship_line1, ship_city, ship_postal_code, ship_region, ship_country,
                    status, proof_file_ref)
VALUES (NULL, $1, $2, $3, NULL, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id::text, created_at
`
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, err
	}
	res := o
	err = r.pool.QueryRow(ctx, q,
		o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.TotalCents, o.ShippingFee, o.Currency, items,
		o.ShippingAddr.Line1, o.ShippingAddr.City, o.ShippingAddr.PostalCode,
		o.ShippingAddr.Region, o.ShippingAddr.Country,
		o.Status, o.ProofFileRef,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Error("order create pending", zap.Error(err))
		return nil, err
	}
	r.logger.Info("pending order created", zap.String("id", res.ID))
	return &res, nil
}

func (r *postgresRepo) UpsertBySession(ctx context.Context, o domain.Order) (*domain.Order, bool, error) {
	if o.SessionID == nil || *o.SessionID == "" {
		return nil, false, errors.New("order repo: session id required for upsert")
	}

	const q = `
INSERT INTO orders (session_id, customer_name, customer_email, customer_phone, payment_id,
                    total_cents, shipping_fee_cents, currency, items,
                    ship_line1, ship_city, ship_postal_code, ship_region, ship_country,
                    status, proof_file_ref)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NULL)
ON CONFLICT (session_id) DO NOTHING
RETURNING id::text, created_at
`
	items, err := json.Marshal(o.Items)
	if err != nil {
		return nil, false, err
	}
	res := o
	err = r.pool.QueryRow(ctx, q,
		*o.SessionID,
		o.Customer.Name, o.Customer.Email, o.Customer.Phone, o.PaymentID,
		o.TotalCents, o.ShippingFee, o.Currency, items,
		o.ShippingAddr.Line1, o.ShippingAddr.City, o.ShippingAddr.PostalCode,
		o.ShippingAddr.Region, o.ShippingAddr.Country,
		o.Status,
	).Scan(&res.ID, &res.CreatedAt)
	if err == nil {
		r.logger.Info("order settled", zap.String("id", res.ID), zap.String("session_id", *o.SessionID))
		return &res, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("order upsert", zap.String("session_id", *o.SessionID), zap.Error(err))
		return nil, false, err
	}

	// Conflict: a concurrent or earlier finalize already stored this
	// session. Return the existing row.
	existing, err := r.GetBySession(ctx, *o.SessionID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *postgresRepo) GetBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	const q = `
SELECT id::text, session_id, customer_name, customer_email, customer_phone, payment_id,
       total_cents, shipping_fee_cents, currency, items,
       ship_line1, ship_city, ship_postal_code, ship_region, ship_country,
       status, proof_file_ref, created_at
FROM orders
WHERE session_id = $1
`
	var (
		o     domain.Order
		items []byte
	)
	err := r.pool.QueryRow(ctx, q, sessionID).Scan(
		&o.ID, &o.SessionID,
		&o.Customer.Name, &o.Customer.Email, &o.Customer.Phone, &o.PaymentID,
		&o.TotalCents, &o.ShippingFee, &o.Currency, &items,
		&o.ShippingAddr.Line1, &o.ShippingAddr.City, &o.ShippingAddr.PostalCode,
		&o.ShippingAddr.Region, &o.ShippingAddr.Country,
		&o.Status, &o.ProofFileRef, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("order get by session", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, err
	}
	return &o, nil
}
