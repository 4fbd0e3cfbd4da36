// ABOUTME: Tests for database connection and lifecycle
// ABOUTME: Covers file-backed open, in-memory open, and schema creation
package sqlite

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if db.Path() != path {
		t.Errorf("expected path %q, got %q", path, db.Path())
	}

	// Schema should be in place
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='drafts'`).Scan(&name)
	if err != nil {
		t.Fatalf("drafts table missing: %v", err)
	}
}

func TestOpenInMemory(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`INSERT INTO drafts (id, user_id, idea, text) VALUES ('d1', 'u1', 'i', 't')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestMigrateRecordsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drafts.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	version, err := db.schemaVersion()
	if err != nil {
		t.Fatalf("schemaVersion failed: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("expected recorded version %d, got %d", SchemaVersion, version)
	}
	if _, err := db.Exec(`INSERT INTO drafts (id, user_id, idea, text) VALUES ('d1', 'u1', 'i', 't')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	_ = db.Close()

	// Reopening an up-to-date file must not touch existing rows
	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row after reopen, got %d", count)
	}
}

func TestDefaultDataDirOverride(t *testing.T) {
	t.Setenv("TWEETSMITH_DATA_DIR", "/tmp/tweetsmith-test")
	if got := DefaultDataDir(); got != "/tmp/tweetsmith-test" {
		t.Errorf("expected override dir, got %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/tweetsmith-test", "drafts.db") {
		t.Errorf("unexpected db path %q", got)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("first close failed: %v", err)
	}
}
