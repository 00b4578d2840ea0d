package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, "https://isdayoff.ru", cfg.DayOff.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.DayOff.Timeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":                  "s3cret",
		"ENV":                         "production",
		"STORE_DRIVER":                "mongo",
		"ACCESS_TOKEN_EXPIRE_MINUTES": "5",
		"REDIS_ADDR":                  "cache:6379",
		"DAYOFF_CACHE_TTL":            "1h",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Redis.CacheTTL)
}

func TestLoadWith_MissingSecret(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.Error(t, err)
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver": {"JWT_SECRET": "x", "STORE_DRIVER": "sqlite"},
		"zero ttl":       {"JWT_SECRET": "x", "ACCESS_TOKEN_EXPIRE_MINUTES": "0"},
		"bad duration":   {"JWT_SECRET": "x", "DAYOFF_TIMEOUT": "soon"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(env))
			assert.Error(t, err)
		})
	}
}

func TestPostgresConfig_DSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5433, User: "app", Password: "p@ss", Database: "tasks", SSLMode: "require"}
	assert.Equal(t, "postgres://app:p%40ss@db:5433/tasks?sslmode=require", p.DSN())
}
