package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	StorageBackend  string // redis|mysql|memory|none
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	ChatBase        string
	ChatKey         string
	ChatRPS         int
	HandoffTTL      time.Duration
	TripSetupTTL    time.Duration // 0 = keep until cleared
	JanitorInterval time.Duration
	RequestTimeout  time.Duration
	AllowedOrigins  []string
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		StorageBackend:  strings.ToLower(env("STORAGE_BACKEND", "redis")),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tripwise?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		ChatBase:        env("CHAT_API_BASE", ""),
		ChatKey:         env("CHAT_API_KEY", ""),
		ChatRPS:         atoi("CHAT_RPS", 5),
		HandoffTTL:      time.Duration(atoi("HANDOFF_TTL_SECONDS", 1800)) * time.Second,
		TripSetupTTL:    time.Duration(atoi("TRIP_SETUP_TTL_SECONDS", 0)) * time.Second,
		JanitorInterval: time.Duration(atoi("JANITOR_INTERVAL_MINUTES", 10)) * time.Minute,
		RequestTimeout:  time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		AllowedOrigins:  splitList(env("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}
	if c.ChatBase == "" {
		log.Warn().Msg("CHAT_API_BASE is empty; chat endpoints disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
