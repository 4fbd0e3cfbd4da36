// ABOUTME: SQLite-backed draft history storage, pure Go via modernc.org/sqlite
// ABOUTME: Handles the database lifecycle and user_version schema migrations
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB holds the draft history database connection
type DB struct {
	conn *sql.DB
	path string
}

// DefaultDataDir returns where the draft history lives.
// TWEETSMITH_DATA_DIR overrides; otherwise XDG_DATA_HOME/tweetsmith.
func DefaultDataDir() string {
	if dir := os.Getenv("TWEETSMITH_DATA_DIR"); dir != "" {
		return dir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".local/share/tweetsmith"
		}
		dataHome = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataHome, "tweetsmith")
}

// DefaultDBPath returns the default database file path
func DefaultDBPath() string {
	return filepath.Join(DefaultDataDir(), "drafts.db")
}

// Open opens or creates the draft history at path and migrates its schema.
// WAL mode plus a busy timeout lets the CLI and the MCP server share the
// file without immediate SQLITE_BUSY failures.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open draft history: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping draft history: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate draft history: %w", err)
	}

	return db, nil
}

// OpenInMemory creates an in-memory draft history (for testing)
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory draft history: %w", err)
	}

	db := &DB{
		conn: conn,
		path: ":memory:",
	}

	if err := db.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to migrate draft history: %w", err)
	}

	return db, nil
}

// migrate applies the drafts schema when the stored version is behind.
// The version is tracked in SQLite's user_version pragma; a fresh file
// reports 0. The schema uses IF NOT EXISTS throughout, so re-applying it
// on upgrade is safe.
func (db *DB) migrate() error {
	version, err := db.schemaVersion()
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	if _, err := db.conn.Exec(Schema); err != nil {
		return fmt.Errorf("failed to apply drafts schema: %w", err)
	}
	if _, err := db.conn.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}

// schemaVersion reads the schema version recorded in the database
func (db *DB) schemaVersion() (int, error) {
	var version int
	if err := db.conn.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Path returns the database file path
func (db *DB) Path() string {
	return db.path
}

// Exec executes a query without returning rows
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.conn.Exec(query, args...)
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns at most one row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}
