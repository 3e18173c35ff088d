// Package migrations embeds the schema for the SQL ledger stores and applies it
// with golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var migrationsFS embed.FS

// RunPostgres applies pending migrations to the database at databaseURL.
// It reports whether anything was applied.
func RunPostgres(databaseURL string) (bool, error) {
	// migrate closes the database it is given, so it gets its own connection
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return false, fmt.Errorf("open database connection for migrations: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return false, fmt.Errorf("ping database for migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		db.Close()
		return false, fmt.Errorf("create postgres driver instance: %w", err)
	}
	return run("postgres", driver)
}

// RunSQLite applies pending migrations to the SQLite file at path.
func RunSQLite(path string) (bool, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return false, fmt.Errorf("open migration database: %w", err)
	}
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	if err != nil {
		db.Close()
		return false, fmt.Errorf("create sqlite driver: %w", err)
	}
	return run("sqlite", driver)
}

func run(dialect string, driver database.Driver) (bool, error) {
	src, err := iofs.New(migrationsFS, dialect)
	if err != nil {
		driver.Close()
		return false, fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, dialect, driver)
	if err != nil {
		driver.Close()
		return false, fmt.Errorf("create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return false, fmt.Errorf("apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return false, fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return false, fmt.Errorf("migration database error: %w", dbErr)
	}
	return upErr == nil, nil
}
