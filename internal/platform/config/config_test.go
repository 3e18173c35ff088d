package config_test

import (
	"log/slog"
	"testing"

	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, config.BackendMemory, cfg.StorageBackend)
	assert.Equal(t, "buddyTixTracker", cfg.LedgerKey)
	assert.True(t, decimal.NewFromInt(20).Equal(cfg.TicketPrice))
	assert.Equal(t, 5, cfg.RecentLimit)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.AMQPURL)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/tix.db")
	t.Setenv("TICKET_PRICE", "22.50")
	t.Setenv("RECENT_LIMIT", "8")
	t.Setenv("LEDGER_TIMEZONE", "Europe/Rome")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, config.BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/tix.db", cfg.SQLitePath)
	assert.True(t, decimal.RequireFromString("22.5").Equal(cfg.TicketPrice))
	assert.Equal(t, 8, cfg.RecentLimit)
	assert.Equal(t, "Europe/Rome", cfg.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "STORAGE_BACKEND", "redis"},
		{"postgres without url", "STORAGE_BACKEND", "postgres"},
		{"zero ticket price", "TICKET_PRICE", "0"},
		{"non-numeric ticket price", "TICKET_PRICE", "twenty"},
		{"negative recent limit", "RECENT_LIMIT", "-1"},
		{"unknown timezone", "LEDGER_TIMEZONE", "Mars/Olympus"},
		{"unknown log level", "LOG_LEVEL", "loud"},
		{"unknown log format", "LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := config.LoadConfig()
			assert.Error(t, err)
		})
	}
}
