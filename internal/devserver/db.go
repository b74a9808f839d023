// Package devserver is a SQLite-backed reference implementation of the
// record store contract, for local development and end-to-end tests. The
// engine itself treats persistence as an external collaborator and only ever
// talks to it through the remote client.
package devserver

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Init opens (and migrates) the SQLite database at baseDir/ideas.db.
// The baseDir parameter allows tests to use t.TempDir().
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "ideas.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)
	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS ideas (
	  id          TEXT PRIMARY KEY,
	  session_id  TEXT NOT NULL,
	  content     TEXT NOT NULL,
	  tags_json   TEXT NOT NULL DEFAULT '[]',
	  folder_id   TEXT NOT NULL,
	  ai_accepted INTEGER NOT NULL DEFAULT 0,
	  created_at  INTEGER NOT NULL,
	  updated_at  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ideas_session_created
	ON ideas(session_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS folders (
	  id          TEXT PRIMARY KEY,
	  session_id  TEXT NOT NULL,
	  name        TEXT NOT NULL,
	  description TEXT NOT NULL DEFAULT '',
	  icon        TEXT NOT NULL DEFAULT '',
	  idea_count  INTEGER NOT NULL DEFAULT 0,
	  tags_json   TEXT NOT NULL DEFAULT '[]',
	  created_at  INTEGER NOT NULL,
	  updated_at  INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_folders_session_created
	ON folders(session_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS settings (
	  session_id          TEXT PRIMARY KEY,
	  categorization_mode TEXT NOT NULL,
	  search_mode         TEXT NOT NULL,
	  input_method        TEXT NOT NULL,
	  audio_service       TEXT NOT NULL DEFAULT '',
	  audio_api_key       TEXT NOT NULL DEFAULT '',
	  theme               TEXT NOT NULL,
	  auto_update         INTEGER NOT NULL DEFAULT 1,
	  onboarding          INTEGER NOT NULL DEFAULT 0,
	  created_at          INTEGER NOT NULL,
	  updated_at          INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// newID generates a ULID for a new record.
func newID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
