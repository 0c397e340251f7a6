package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Supabase  SupabaseConfig
	Session   SessionConfig
	Reconcile ReconcileConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=aiqb_preorder"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// SupabaseConfig points at the hosted backend project. The anon key is the
// public client key, not a secret, but it still comes from the environment.
type SupabaseConfig struct {
	URL     string        `env:"SUPABASE_URL"`
	AnonKey string        `env:"SUPABASE_ANON_KEY"`
	Timeout time.Duration `env:"SUPABASE_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	// RefreshInterval controls how often the token refresh loop sweeps
	// sessions for near-expiry remote tokens.
	RefreshInterval time.Duration `env:"SESSION_REFRESH_INTERVAL, default=1m"`
}

type ReconcileConfig struct {
	Interval time.Duration `env:"RECONCILE_INTERVAL, default=30s"`
	Workers  int           `env:"RECONCILE_WORKERS,  default=4"`
	// BatchSize caps how many captured orders one sweep picks up.
	BatchSize int `env:"RECONCILE_BATCH_SIZE, default=50"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
