package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tripwise/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	m       map[string][]byte
	failGet bool
	failSet bool
	sets    int
}

func newFakeStore() *fakeStore { return &fakeStore{m: map[string][]byte{}} }

var errBoom = errors.New("boom")

func (f *fakeStore) Get(ctx context.Context, key string, dst any) (bool, error) {
	if f.failGet {
		return false, errBoom
	}
	b, ok := f.m[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeStore) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	if f.failSet {
		return errBoom
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	f.m[key] = b
	f.sets++
	return nil
}

func (f *fakeStore) Take(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := f.Get(ctx, key, dst)
	delete(f.m, key)
	return ok, err
}

func (f *fakeStore) Del(ctx context.Context, key string) error {
	delete(f.m, key)
	return nil
}

type fakeChat struct {
	reply     domain.ChatReply
	handoff   domain.Handoff
	err       error
	lastMsg   string
	lastHist  []domain.ChatMessage
	callCount int
}

func (c *fakeChat) Chat(ctx context.Context, message string, history []domain.ChatMessage) (domain.ChatReply, error) {
	c.callCount++
	c.lastMsg, c.lastHist = message, history
	return c.reply, c.err
}

func (c *fakeChat) Summarize(ctx context.Context, history []domain.ChatMessage) (domain.Handoff, error) {
	c.callCount++
	c.lastHist = history
	return c.handoff, c.err
}
