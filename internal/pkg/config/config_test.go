package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 5, cfg.Auth.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutWindow)
	assert.True(t, cfg.Mongo.Transactions)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 4, cfg.Audit.ReconcileWorkers)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":         "s3cret",
		"ENV":                "production",
		"CORS_ORIGINS":       "https://qc.example,https://lims.example",
		"SESSION_TTL":        "30m",
		"MONGO_TRANSACTIONS": "false",
		"REDIS_ENABLED":      "false",
		"BCRYPT_COST":        "10",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"https://qc.example", "https://lims.example"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.False(t, cfg.Mongo.Transactions)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadFrom_RequiresJWTSecret(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadFrom_RejectsBadBcryptCost(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "s3cret",
		"BCRYPT_COST": "2",
	}))
	assert.ErrorContains(t, err, "BCRYPT_COST")
}
