package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
)

const (
	productKeyPrefix       = "catalog:product:"
	evictionGuardKeySuffix = ":evicted"
)

// setUnlessEvicted stores KEYS[1] unless the eviction guard KEYS[2] is still live.
var setUnlessEvicted = redis.NewScript(`
if redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
return 1
`)

var _ ProductCache = (*RedisProductCache)(nil)

// RedisProductCache stores products as JSON. Delete leaves a short-lived guard
// that makes Set a no-op, so a lookup that read the row before a write committed
// cannot put the old version back.
type RedisProductCache struct {
	client        redis.UniversalClient
	ttl           time.Duration
	evictionGuard time.Duration
}

func NewRedisProductCache(client redis.UniversalClient, ttl, evictionGuard time.Duration) *RedisProductCache {
	return &RedisProductCache{client: client, ttl: ttl, evictionGuard: evictionGuard}
}

// NewRedisClient connects to the configured redis and verifies the connection.
func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}

func (c *RedisProductCache) Get(ctx context.Context, id uuid.UUID) (model.Product, bool, error) {
	data, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Product{}, false, nil
		}
		return model.Product{}, false, fmt.Errorf("redis get: %w", err)
	}

	var p model.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Product{}, false, fmt.Errorf("unmarshal cached product: %w", err)
	}

	return p, true, nil
}

func (c *RedisProductCache) Set(ctx context.Context, product model.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product: %w", err)
	}

	keys := []string{productKey(product.ID), evictionGuardKey(product.ID)}
	if err := setUnlessEvicted.Run(ctx, c.client, keys, data, c.ttl.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, productKey(id))
		if c.evictionGuard > 0 {
			pipe.Set(ctx, evictionGuardKey(id), 1, c.evictionGuard)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func productKey(id uuid.UUID) string {
	return productKeyPrefix + id.String()
}

func evictionGuardKey(id uuid.UUID) string {
	return productKey(id) + evictionGuardKeySuffix
}
