package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_LocalBackends(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	txns := []domain.Transaction{{
		ID:        "a",
		Date:      domain.NewDate(2024, time.May, 1),
		Kind:      domain.Ticket,
		Amount:    decimal.NewFromInt(20),
		CreatedAt: time.UnixMilli(1714550400000).UTC(),
	}}

	for _, backend := range []string{config.BackendMemory, config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := &config.Config{
				StorageBackend: backend,
				LedgerFilePath: filepath.Join(dir, "ledger.json"),
				SQLitePath:     filepath.Join(dir, "nested", "tix.db"),
				LedgerKey:      "buddyTixTracker",
			}
			provider, closeFn, err := repositories.Open(context.Background(), cfg, logger)
			require.NoError(t, err)
			defer closeFn()

			got, err := provider.LedgerRepo.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)

			require.NoError(t, provider.LedgerRepo.Save(context.Background(), txns))
			got, err = provider.LedgerRepo.Load(context.Background())
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "a", got[0].ID)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := repositories.Open(context.Background(), &config.Config{StorageBackend: "redis"}, slog.Default())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
