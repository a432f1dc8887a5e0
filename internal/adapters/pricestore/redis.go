package pricestore

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"
)

// hashReader is the subset of the redis client the source needs.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.StringStringMapCmd
}

// RedisSource reads a price hash (field = catalog key, value = price) that
// an external collector keeps up to date.
type RedisSource struct {
	client hashReader
	closer func() error
	key    string
}

// NewRedisSource connects to addr and reads the hash stored at key.
func NewRedisSource(addr, key string) *RedisSource {
	c := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisSource{client: c, closer: c.Close, key: key}
}

// Name implements Source.
func (r *RedisSource) Name() string { return "redis" }

// Load implements Source. Fields that do not parse as a number are skipped.
func (r *RedisSource) Load(ctx context.Context) (map[string]float64, error) {
	raw, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		out[k] = p
	}
	return out, nil
}

// Close releases the redis connection pool.
func (r *RedisSource) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer()
}
