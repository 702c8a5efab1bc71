// Package store implements the activity store on top of database/sql with
// SQLite as the default embedded backend.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
	_ "github.com/go-sql-driver/mysql"    // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"    // PostgreSQL driver
	_ "modernc.org/sqlite"                // SQLite driver
)

// Store handles storage operations using various database backends.
type Store struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.Store = &Store{} // Compile-time check

// Open initializes a fully ready store handle: the connection is opened,
// pinged and migrated to the latest schema before it is returned, so no
// query can ever run against a half-initialized engine. The caller owns
// the handle and must Close it.
func Open(cfg *contract.Config) (*Store, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch cfg.DBBackend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = contract.DefaultDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// A single open connection avoids "database is locked" errors and
		// keeps the :memory: sentinel bound to one engine instance.
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// cfg.DBConnect should be:
		// user:password@tcp(host:port)/dbname?multiStatements=true
		driverName = "mysql"
		db, err = sql.Open(driverName, cfg.DBConnect)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL store: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// cfg.DBConnect should be:
		// host=localhost port=5432 user=postgres password=secret dbname=contriboard
		driverName = "pgx"
		db, err = sql.Open(driverName, cfg.DBConnect)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL store: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported database backend: %s. Must be sqlite, mysql, or postgresql", cfg.DBBackend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", cfg.DBBackend, err)
	}

	s := &Store{db: db, backend: cfg.DBBackend, driverName: driverName}

	// Bring the schema to the latest version
	if err := migrateDB(db, cfg.DBBackend, LatestVersion); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate %s schema: %w", cfg.DBBackend, err)
	}

	return s, nil
}

// Close closes the underlying DB connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// rebind converts ? placeholders to the backend's parameter style.
func (s *Store) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpsertContributor creates or updates a contributor row. Usernames double
// as export file names, so path characters are rejected outright.
func (s *Store) UpsertContributor(ctx context.Context, c schema.Contributor) error {
	if c.Username == "" {
		return fmt.Errorf("contributor username cannot be empty")
	}
	if strings.ContainsAny(c.Username, `/\`) || strings.Contains(c.Username, "..") {
		return fmt.Errorf("contributor username '%s' contains path characters", c.Username)
	}

	social, err := marshalJSONMap(c.SocialLinks)
	if err != nil {
		return fmt.Errorf("failed to encode social links for %s: %w", c.Username, err)
	}
	meta, err := marshalJSONMap(c.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta for %s: %w", c.Username, err)
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT INTO contributors (username, name, avatar_url, role, bio, social_links, meta) VALUES (?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, avatar_url = new.avatar_url, role = new.role, bio = new.bio, social_links = new.social_links, meta = new.meta`
	default: // SQLite and PostgreSQL share ON CONFLICT syntax
		query = `INSERT INTO contributors (username, name, avatar_url, role, bio, social_links, meta) VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name, avatar_url = EXCLUDED.avatar_url, role = EXCLUDED.role, bio = EXCLUDED.bio, social_links = EXCLUDED.social_links, meta = EXCLUDED.meta`
	}

	_, err = s.db.ExecContext(ctx, s.rebind(query), c.Username, c.Name, c.AvatarURL, c.Role, c.Bio, social, meta)
	return err
}

// UpsertDefinition creates or updates a catalog entry.
func (s *Store) UpsertDefinition(ctx context.Context, d schema.ActivityDefinition) error {
	if d.Slug == "" {
		return fmt.Errorf("activity definition slug cannot be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("activity definition %s requires a display name", d.Slug)
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT INTO activity_definitions (slug, name, description, points, icon) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE name = new.name, description = new.description, points = new.points, icon = new.icon`
	default:
		query = `INSERT INTO activity_definitions (slug, name, description, points, icon) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description, points = EXCLUDED.points, icon = EXCLUDED.icon`
	}

	_, err := s.db.ExecContext(ctx, s.rebind(query), d.Slug, d.Name, d.Description, d.Points, d.Icon)
	return err
}

// InsertActivity inserts an activity if its slug is new. Activities are
// immutable, so re-inserting an existing slug is a no-op rather than an
// update; the slug is the ingestion idempotency key.
func (s *Store) InsertActivity(ctx context.Context, a schema.Activity) error {
	if a.Slug == "" {
		return fmt.Errorf("activity slug cannot be empty")
	}
	if a.Username == "" || a.DefinitionSlug == "" {
		return fmt.Errorf("activity %s requires username and definition_slug", a.Slug)
	}
	if a.OccuredAt.IsZero() {
		return fmt.Errorf("activity %s requires an occurrence time", a.Slug)
	}

	meta, err := marshalJSONMap(a.Meta)
	if err != nil {
		return fmt.Errorf("failed to encode meta for %s: %w", a.Slug, err)
	}

	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = `INSERT IGNORE INTO activities (slug, username, definition_slug, title, occured_at, link, body, points, meta) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	default:
		query = `INSERT INTO activities (slug, username, definition_slug, title, occured_at, link, body, points, meta) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (slug) DO NOTHING`
	}

	_, err = s.db.ExecContext(ctx, s.rebind(query),
		a.Slug, a.Username, a.DefinitionSlug, a.Title, a.OccuredAt.UTC().Unix(), a.Link, a.Body, a.Points, meta)
	return err
}

// Status reports row counts per table.
func (s *Store) Status(ctx context.Context) (contract.StoreStatus, error) {
	status := contract.StoreStatus{Backend: string(s.backend)}

	counts := []struct {
		table string
		dest  *int64
	}{
		{"contributors", &status.Contributors},
		{"activity_definitions", &status.Definitions},
		{"activities", &status.Activities},
	}
	for _, c := range counts {
		row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", c.table))
		if err := row.Scan(c.dest); err != nil {
			return status, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}
	return status, nil
}

// marshalJSONMap encodes an optional string map as a nullable JSON column.
func marshalJSONMap(m map[string]string) (*string, error) {
	if len(m) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	out := string(data)
	return &out, nil
}

// unmarshalJSONMap decodes a nullable JSON column into a string map.
func unmarshalJSONMap(ns sql.NullString) (map[string]string, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal([]byte(ns.String), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// nullString converts a nullable column to an optional field.
func nullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// nullInt64 converts a nullable column to an optional field.
func nullInt64(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
