package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spec-kit/asset-sync/pkg/util"
)

// Config aggregates runtime configuration for the sync jobs.
type Config struct {
	App      AppConfig
	Source   SourceConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
}

// AppConfig controls process level behavior.
type AppConfig struct {
	Name       string
	Env        string
	Version    string
	StatusPort string
}

// SourceConfig holds credentials and tuning for the upstream API.
type SourceConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
	FetchWorkers   int
	FetchDelayMS   int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds optional run-lock connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// where possible. SOURCE_API_TOKEN and POSTGRES_DSN are mandatory; a missing
// credential is a fatal startup error, detected before any I/O.
func Load() (*Config, error) {
	_ = godotenv.Load()

	token := os.Getenv("SOURCE_API_TOKEN")
	if token == "" {
		return nil, util.NewConfigError("SOURCE_API_TOKEN", "not found in environment")
	}
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, util.NewConfigError("POSTGRES_DSN", "not found in environment")
	}

	cfg := &Config{
		App: AppConfig{
			Name:       getEnv("APP_NAME", "asset-sync"),
			Env:        getEnv("APP_ENV", "development"),
			Version:    getEnv("APP_VERSION", "dev"),
			StatusPort: os.Getenv("STATUS_PORT"),
		},
		Source: SourceConfig{
			BaseURL:        getEnv("SOURCE_API_BASE_URL", "https://prod-back.example.com/api/public"),
			Token:          token,
			TimeoutSeconds: getEnvAsInt("SOURCE_API_TIMEOUT_SECONDS", 10),
			FetchWorkers:   getEnvAsInt("SOURCE_FETCH_WORKERS", 10),
			FetchDelayMS:   getEnvAsInt("SOURCE_FETCH_DELAY_MS", 100),
		},
		Postgres: PostgresConfig{
			DSN:            dsn,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", false),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Timeout returns the per-request timeout for source API calls.
func (s SourceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// FetchDelay returns the per-worker post-call delay used as a rate limiter.
func (s SourceConfig) FetchDelay() time.Duration {
	if s.FetchDelayMS < 0 {
		return 0
	}
	return time.Duration(s.FetchDelayMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
