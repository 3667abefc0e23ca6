package bootstrap_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"tripwise/internal/adapters/memory"
	redisad "tripwise/internal/adapters/redis"
	"tripwise/internal/bootstrap"
	"tripwise/internal/shared"
)

func TestOpenStorage(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	s, closeFn, err := bootstrap.OpenStorage(ctx, shared.Config{StorageBackend: "redis", RedisAddr: mr.Addr()})
	if err != nil {
		t.Fatalf("redis: %v", err)
	}
	defer closeFn()
	if _, ok := s.(*redisad.Storage); !ok {
		t.Fatalf("expected redis storage, got %T", s)
	}

	s, _, err = bootstrap.OpenStorage(ctx, shared.Config{StorageBackend: "memory"})
	if _, ok := s.(*memory.Storage); !ok || err != nil {
		t.Fatalf("expected memory storage, got %T %v", s, err)
	}

	s, _, err = bootstrap.OpenStorage(ctx, shared.Config{StorageBackend: "none"})
	if s != nil || err != nil {
		t.Fatalf("expected disabled storage, got %T %v", s, err)
	}

	if _, _, err := bootstrap.OpenStorage(ctx, shared.Config{StorageBackend: "cassandra"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenStorage_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	if _, _, err := bootstrap.OpenStorage(context.Background(), shared.Config{StorageBackend: "redis", RedisAddr: addr}); err == nil {
		t.Fatal("expected ping failure")
	}
}
