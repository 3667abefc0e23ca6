package domain

import (
	"context"
	"time"
)

// Storage is a JSON key-value store with browser-storage semantics.
// A ttl of zero keeps the entry until it is removed.
type Storage interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	// Take reads and removes key in one step.
	Take(ctx context.Context, key string, dst any) (bool, error)
	Del(ctx context.Context, key string) error
}

// Purger is implemented by backends that do not expire entries on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type ChatClient interface {
	Chat(ctx context.Context, message string, history []ChatMessage) (ChatReply, error)
	Summarize(ctx context.Context, history []ChatMessage) (Handoff, error)
}
