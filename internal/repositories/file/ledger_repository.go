// Package file persists the ledger blob as a single JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/SscSPs/buddy_tix_tracker/internal/apperrors"
	"github.com/SscSPs/buddy_tix_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/codec"
)

// LedgerRepository reads and writes one file. Writes go to a temporary file in
// the same directory which is then renamed over the target, so a crash never
// leaves a half-written ledger behind.
type LedgerRepository struct {
	path string
}

// NewLedgerRepository returns a store for path. The file need not exist yet.
func NewLedgerRepository(path string) *LedgerRepository {
	return &LedgerRepository{path: path}
}

var _ portsrepo.LedgerRepositoryFacade = (*LedgerRepository)(nil)

func (r *LedgerRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Transaction{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", apperrors.ErrStorageUnavailable, r.path, err)
	}
	return codec.Decode(data)
}

func (r *LedgerRepository) Save(ctx context.Context, txns []domain.Transaction) error {
	blob, err := codec.Encode(txns)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", apperrors.ErrStorageUnavailable, dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", apperrors.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", apperrors.ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", apperrors.ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", apperrors.ErrStorageUnavailable, tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", apperrors.ErrStorageUnavailable, r.path, err)
	}
	return nil
}
