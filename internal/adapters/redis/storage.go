package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripwise/internal/adapters/observability"
)

type Storage struct{ c *redis.Client }

func New(addr, pass string, db int) *Storage {
	return &Storage{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

// NewFromClient wraps an existing client.
func NewFromClient(c *redis.Client) *Storage { return &Storage{c: c} }

func (r *Storage) Ping(ctx context.Context) error {
	if err := r.c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *Storage) Close() error { return r.c.Close() }

func (r *Storage) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveStorage("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveStorage("redis", "error")
		return false, err
	}
	observability.ObserveStorage("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

// Set stores v as JSON. ttl <= 0 keeps the key until deleted.
func (r *Storage) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if ttl < 0 {
		ttl = 0
	}
	observability.ObserveStorage("redis", "set")
	return r.c.Set(ctx, key, b, ttl).Err()
}

// Take uses GETDEL so two readers never both consume the same entry.
func (r *Storage) Take(ctx context.Context, key string, dst any) (bool, error) {
	v, err := r.c.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		observability.ObserveStorage("redis", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveStorage("redis", "error")
		return false, err
	}
	observability.ObserveStorage("redis", "take")
	return true, json.Unmarshal(v, dst)
}

func (r *Storage) Del(ctx context.Context, key string) error {
	observability.ObserveStorage("redis", "del")
	return r.c.Del(ctx, key).Err()
}
