package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"sareeshine/internal/domain"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis stores carts as JSON values under cart:<id> with a TTL, so
// abandoned carts expire on their own.
func NewRedis(client *redis.Client, ttl time.Duration, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisRepo{client: client, ttl: ttl, logger: logger}
}

func key(cartID string) string {
	return "cart:" + cartID
}

func (r *redisRepo) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, key(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.logger.Error("cart get", zap.String("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *redisRepo) Save(ctx context.Context, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key(cart.ID), data, r.ttl).Err(); err != nil {
		r.logger.Error("cart save", zap.String("cart_id", cart.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, cartID string) error {
	if err := r.client.Del(ctx, key(cartID)).Err(); err != nil {
		r.logger.Error("cart delete", zap.String("cart_id", cartID), zap.Error(err))
		return err
	}
	return nil
}
