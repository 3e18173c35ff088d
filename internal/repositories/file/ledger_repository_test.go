package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_MissingFileIsEmpty(t *testing.T) {
	repo := file.NewLedgerRepository(filepath.Join(t.TempDir(), "nested", "ledger.json"))

	txns, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestLedgerRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "ledger.json")
	repo := file.NewLedgerRepository(path)

	first := []domain.Transaction{{
		ID:        "a",
		Date:      domain.NewDate(2024, time.January, 5),
		Kind:      domain.Ticket,
		Amount:    decimal.NewFromInt(60),
		CreatedAt: time.UnixMilli(1704445200000).UTC(),
	}}
	require.NoError(t, repo.Save(ctx, first))

	second := append(first, domain.Transaction{
		ID:        "b",
		Date:      domain.NewDate(2024, time.January, 6),
		Kind:      domain.Payment,
		Amount:    decimal.NewFromInt(25),
		CreatedAt: time.UnixMilli(1704531600000).UTC(),
	})
	require.NoError(t, repo.Save(ctx, second))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "b", loaded[1].ID)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestLedgerRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1}]`), 0o644))

	_, err := file.NewLedgerRepository(path).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorageCorrupt)
}

func TestLedgerRepository_UnreadablePath(t *testing.T) {
	// A directory where the file should be cannot be read as a ledger.
	dir := t.TempDir()
	_, err := file.NewLedgerRepository(dir).Load(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}
