package cache

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// kvSchema is the whole storage layout: one payload blob per collection key.
// This mirrors the flat key-value shape the UI expects; ordering and defaults
// are projections applied at read time, never storage-time properties.
const kvSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    payload TEXT NOT NULL
);
`

// Collection keys. Each holds an independent JSON array (or object for the
// single-slot entries).
const (
	keyProfiles    = "profiles"
	keyCreditors   = "creditors"
	keyDocuments   = "vaultDocuments"
	keyProcesses   = "remedyProcesses"
	keyInvoices    = "invoices"
	keyTemplates   = "customTemplates"
	keyScripts     = "customScripts"
	keyCurrentUser = "currentUser"
	keyClipboard   = "draftClipboard"
)

// Store is the key-value engine under the cache collections.
// Thread-safe for concurrent WASM callbacks.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewStore opens (creating if absent) the cache database at dsn.
// Use ":memory:" for tests.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// get returns the raw payload for key, or nil when absent.
func (s *Store) get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payload string
	err := s.db.QueryRow(`SELECT payload FROM kv WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []byte(payload), nil
}

// set upserts the raw payload for key.
func (s *Store) set(key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO kv (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload
	`, key, string(payload))
	return err
}

// delete removes key. Deleting an absent key is a no-op.
func (s *Store) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}
