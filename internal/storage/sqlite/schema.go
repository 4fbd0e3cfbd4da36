// ABOUTME: SQLite database schema for draft history storage
// ABOUTME: Creates all tables and indexes for local storage
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Drafts table (generated tweet variations and their lifecycle)
CREATE TABLE IF NOT EXISTS drafts (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    idea TEXT NOT NULL,
    text TEXT NOT NULL,
    similar_post_ids TEXT,
    confidence REAL DEFAULT 0,
    status TEXT DEFAULT 'generated',
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_drafts_user ON drafts(user_id);
CREATE INDEX IF NOT EXISTS idx_drafts_status ON drafts(status);
CREATE INDEX IF NOT EXISTS idx_drafts_user_created ON drafts(user_id, created_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
