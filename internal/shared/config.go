package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr    string
	MetricsAddr string

	// optional backends; empty disables them
	MySQLDSN  string
	RedisAddr string
	RedisDB   int
	RedisPass string

	OffersBase      string
	OffersKey       string
	UpstreamRPS     int
	UpstreamTimeout time.Duration
	CacheTTL        time.Duration

	// chartseed
	SeedWorkers int
	ChartDir    string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real env vars win.
func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("not an integer; using default")
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		LogLevel:        env("LOG_LEVEL", "info"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ""),
		MySQLDSN:        env("MYSQL_DSN", ""),
		RedisAddr:       env("REDIS_ADDR", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		RedisPass:       env("REDIS_PASSWORD", ""),
		OffersBase:      env("OFFERS_BASE_URL", "http://localhost:8081"),
		OffersKey:       env("OFFERS_API_KEY", ""),
		UpstreamRPS:     atoi("UPSTREAM_RPS", 5),
		UpstreamTimeout: time.Duration(atoi("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		SeedWorkers:     atoi("SEED_WORKERS", 4),
		ChartDir:        env("CHART_DIR", "charts"),
	}
	if c.OffersKey == "" {
		log.Warn().Msg("OFFERS_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
