package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string   `env:"PORT,         default=8080"`
	Env         string   `env:"ENV,          default=development"`
	LogLevel    string   `env:"LOG_LEVEL,    default=info"`
	CORSOrigins []string `env:"CORS_ORIGINS, default=*"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
	Audit AuditConfig
}

type AuthConfig struct {
	JWTSecret         string        `env:"JWT_SECRET, required"`
	JWTIssuer         string        `env:"JWT_ISSUER,               default=qc-portal"`
	SessionTTL        time.Duration `env:"SESSION_TTL,              default=8h"`
	BcryptCost        int           `env:"BCRYPT_COST,              default=12"`
	MaxFailedAttempts int           `env:"AUTH_MAX_FAILED_ATTEMPTS, default=5"`
	LockoutWindow     time.Duration `env:"AUTH_LOCKOUT_WINDOW,      default=15m"`
}

type MongoConfig struct {
	URI          string `env:"MONGO_URI,          default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,           default=qc_portal"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	Enabled  bool   `env:"REDIS_ENABLED,  default=true"`
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type AuditConfig struct {
	ReconcileWorkers  int `env:"AUDIT_RECONCILE_WORKERS,  default=4"`
	ReconcileAttempts int `env:"AUDIT_RECONCILE_ATTEMPTS, default=5"`
}

// IsDevelopment reports whether human-readable logs should be emitted.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "local"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST: must be between 4 and 31, got %d", cfg.Auth.BcryptCost)
	}
	if cfg.Auth.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL: must be positive, got %s", cfg.Auth.SessionTTL)
	}
	return &cfg, nil
}
