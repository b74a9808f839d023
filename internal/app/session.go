package app

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// sessionFile holds the durable session id under the base directory.
const sessionFile = "session_id"

// LoadOrCreateSessionID returns the stable opaque identifier scoping all
// records to one user session, creating and persisting one on first use.
func LoadOrCreateSessionID(baseDir string) (string, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create base directory: %w", err)
	}

	path := filepath.Join(baseDir, sessionFile)
	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	}

	id, err := generateSessionID()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0600); err != nil {
		return "", fmt.Errorf("failed to persist session id: %w", err)
	}
	return id, nil
}

// generateSessionID generates a new session identifier (a prefixed ULID).
func generateSessionID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return "session_" + id.String(), nil
}
