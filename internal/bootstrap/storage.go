// Package bootstrap turns configuration into the storage backend shared by the
// API server and tripctl.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"tripwise/internal/adapters/memory"
	redisad "tripwise/internal/adapters/redis"
	"tripwise/internal/domain"
	"tripwise/internal/shared"
	mysqlrepo "tripwise/internal/storage/mysql"
)

// OpenStorage returns the configured backend and a function releasing it.
// A nil Storage means persistence is disabled.
func OpenStorage(ctx context.Context, cfg shared.Config) (domain.Storage, func(), error) {
	noop := func() {}
	switch cfg.StorageBackend {
	case "redis":
		s := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, err
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis storage ok")
		return s, func() { _ = s.Close() }, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, noop, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, noop, fmt.Errorf("db.Ping: %w", err)
		}
		log.Info().Msg("mysql storage ok")
		return mysqlrepo.New(db), func() { _ = db.Close() }, nil

	case "memory":
		return memory.New(), noop, nil

	case "none", "":
		log.Warn().Msg("storage disabled; trip setup will not persist")
		return nil, noop, nil
	}
	return nil, noop, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
}
