package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql migrations/mysql/*.sql
var migrationsFS embed.FS

// LatestVersion migrates to the newest schema version.
const LatestVersion = -1

// Migrate runs database migrations against the configured backend.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func Migrate(cfg *contract.Config, targetVersion int) error {
	var db *sql.DB
	var err error

	switch cfg.DBBackend {
	case schema.SQLiteBackend:
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = contract.DefaultDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return fmt.Errorf("failed to open SQLite database: %w", err)
		}

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", cfg.DBConnect)
		if err != nil {
			return fmt.Errorf("failed to open MySQL database: %w", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", cfg.DBConnect)
		if err != nil {
			return fmt.Errorf("failed to open PostgreSQL database: %w", err)
		}

	default:
		return fmt.Errorf("unsupported backend: %s", cfg.DBBackend)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return migrateDB(db, cfg.DBBackend, targetVersion)
}

// migrateDB applies migrations to an already-open connection. Open uses
// this to guarantee a handle is never handed out before the schema is ready.
func migrateDB(db *sql.DB, backend schema.DatabaseBackend, targetVersion int) error {
	var driver database.Driver
	var dialectDir string
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dialectDir = "migrations/sqlite"
		driver, err = sqlite.WithInstance(db, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to create SQLite migrate driver: %w", err)
		}

	case schema.MySQLBackend:
		dialectDir = "migrations/mysql"
		driver, err = mysql.WithInstance(db, &mysql.Config{})
		if err != nil {
			return fmt.Errorf("failed to create MySQL migrate driver: %w", err)
		}

	case schema.PostgreSQLBackend:
		dialectDir = "migrations/postgres"
		driver, err = postgres.WithInstance(db, &postgres.Config{})
		if err != nil {
			return fmt.Errorf("failed to create PostgreSQL migrate driver: %w", err)
		}

	default:
		return fmt.Errorf("unsupported backend: %s", backend)
	}

	migrationFS, err := fs.Sub(migrationsFS, dialectDir)
	if err != nil {
		return fmt.Errorf("failed to access migrations directory: %w", err)
	}

	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "contriboard", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Clear removes all stored data for the configured backend. For SQLite, it
// deletes the database file. For server backends, it rolls the schema back
// to its initial state.
func Clear(cfg *contract.Config) error {
	switch cfg.DBBackend {
	case schema.SQLiteBackend:
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = contract.DefaultDBFilePath()
		}
		if dbPath == schema.MemoryDBPath {
			return nil
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return Migrate(cfg, 0)

	default:
		return fmt.Errorf("unsupported database backend for clearing: %s", cfg.DBBackend)
	}
}
