package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emartell/grocery-be/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load(slog.Default())
	require.NoError(t, err)

	assert.Equal(t, "grocery-api", cfg.App.Name)
	assert.Equal(t, "grocery.db", cfg.Database.File)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.True(t, cfg.Database.SeedOnStart)
	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddress())
	assert.Equal(t, 100, cfg.Security.RateLimitRequests)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_DIRECTORY", "/var/lib/grocery")
	t.Setenv("DB_FILE", "store.db")
	t.Setenv("DB_BUSY_TIMEOUT", "2s")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := config.Load(slog.Default())
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/grocery", cfg.Database.Directory)
	assert.Equal(t, "store.db", cfg.Database.File)
	assert.Equal(t, 2*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "text", cfg.App.LogFormat)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "missing database file",
			mutate:  func(c *config.Config) { c.Database.File = "" },
			wantErr: "database file name is required",
		},
		{
			name:    "non-positive busy timeout",
			mutate:  func(c *config.Config) { c.Database.BusyTimeout = 0 },
			wantErr: "busy timeout must be positive",
		},
		{
			name:    "missing server port",
			mutate:  func(c *config.Config) { c.Server.Port = "" },
			wantErr: "server port is required",
		},
		{
			name:    "non-positive rate limit",
			mutate:  func(c *config.Config) { c.Security.RateLimitRequests = 0 },
			wantErr: "rate limit requests must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", "test")
			cfg, err := config.Load(slog.Default())
			require.NoError(t, err)

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
