package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loanpath/backend/internal/model"
)

const offerKeyPrefix = "offers:"

// RedisCache is the shared cache used when several instances serve the
// same offer feed.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]model.ExternalOffer, bool) {
	val, err := r.client.Get(ctx, offerKeyPrefix+key).Result()
	if err != nil {
		return nil, false
	}

	var offers []model.ExternalOffer
	if err := json.Unmarshal([]byte(val), &offers); err != nil {
		return nil, false
	}
	return offers, true
}

func (r *RedisCache) Set(ctx context.Context, key string, offers []model.ExternalOffer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, offerKeyPrefix+key, data, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
