package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tripwise/internal/adapters/observability"
)

// Repo is a Storage backed by the storage_entries table.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Get(ctx context.Context, key string, dst any) (bool, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, getEntrySQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStorage("mysql", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveStorage("mysql", "error")
		return false, err
	}
	observability.ObserveStorage("mysql", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Repo) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	us := ttl.Microseconds()
	if us < 0 {
		us = 0
	}
	observability.ObserveStorage("mysql", "set")
	_, err = r.db.ExecContext(ctx, upsertEntrySQL, key, string(b), us, us)
	return err
}

func (r *Repo) Take(ctx context.Context, key string, dst any) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var v []byte
	err = tx.QueryRowContext(ctx, lockEntrySQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observability.ObserveStorage("mysql", "miss")
		return false, nil
	}
	if err != nil {
		observability.ObserveStorage("mysql", "error")
		return false, err
	}
	if _, err := tx.ExecContext(ctx, deleteEntrySQL, key); err != nil {
		return false, fmt.Errorf("delete %s: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	observability.ObserveStorage("mysql", "take")
	return true, json.Unmarshal(v, dst)
}

func (r *Repo) Del(ctx context.Context, key string) error {
	observability.ObserveStorage("mysql", "del")
	_, err := r.db.ExecContext(ctx, deleteEntrySQL, key)
	return err
}

// PurgeExpired deletes rows whose expiry has passed and reports how many.
func (r *Repo) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, purgeExpiredSQL)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	observability.StorageEvents.WithLabelValues("mysql", "purge").Add(float64(n))
	return n, nil
}
