// Package repositories opens the ledger store selected by configuration.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/buddy_tix_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/buddy_tix_tracker/internal/platform/config"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/database/migrations"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/file"
	"github.com/SscSPs/buddy_tix_tracker/internal/repositories/memory"
	"github.com/SscSPs/buddy_tix_tracker/pkg/database"
)

// Open prepares the configured backend, running migrations for the SQL ones.
// The returned close function releases connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	noop := func() {}
	logger = logger.With(slog.String("storage_backend", cfg.StorageBackend))

	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, the ledger is lost on restart")
		return portsrepo.RepositoryProvider{LedgerRepo: memory.NewLedgerRepository(nil)}, noop, nil

	case config.BackendFile:
		logger.Info("Using file storage", slog.String("path", cfg.LedgerFilePath))
		return portsrepo.RepositoryProvider{LedgerRepo: file.NewLedgerRepository(cfg.LedgerFilePath)}, noop, nil

	case config.BackendSQLite:
		// OpenSQLite creates the directory the migration connection needs.
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		applied, err := migrations.RunSQLite(cfg.SQLitePath)
		if err != nil {
			db.Close()
			return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("migrate sqlite: %w", err)
		}
		logMigrations(logger, applied)
		closeFn := func() {
			if err := db.Close(); err != nil {
				logger.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db, cfg.LedgerKey), closeFn, nil

	case config.BackendPostgres:
		applied, err := migrations.RunPostgres(cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("migrate postgres: %w", err)
		}
		logMigrations(logger, applied)
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, noop, err
		}
		return pgsql.NewRepositoryProvider(pool, cfg.LedgerKey), func() { database.ClosePgxPool(pool) }, nil
	}

	return portsrepo.RepositoryProvider{}, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}

func logMigrations(logger *slog.Logger, applied bool) {
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}
}
