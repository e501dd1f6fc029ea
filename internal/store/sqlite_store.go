// Package store provides SQLite-backed persistence for LexKitt.
// Uses ncruces/go-sqlite3/driver which provides a database/sql interface.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/asg017/sqlite-vec-go-bindings/ncruces"
	_ "github.com/ncruces/go-sqlite3/driver"
)

// Schema version tracking:
// 0 - Empty database (pre-migration)
// 1 - corpus + keys tables, source/jurisdiction indexes, unique citation index
// 2 - section_id index for ordered lookup within a source
const currentSchemaVersion = 2

// SQLiteStore is the SQLite-backed data store.
// Thread-safe for concurrent WASM callbacks.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// schema defines all tables for the versioned data layer.
// Every statement is idempotent; incremental upgrades for databases created
// at an older version run through migrations below.
const schema = `
-- Corpus (legal-reference records)
-- AUTOINCREMENT keeps surrogate ids monotonic and never reused
CREATE TABLE IF NOT EXISTS corpus (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    jurisdiction TEXT NOT NULL,
    citation TEXT NOT NULL,
    section_id TEXT,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    strategic_notes TEXT,
    effective_date TEXT
);

-- Unique citation index is the dedup key for repeated seeding runs
CREATE UNIQUE INDEX IF NOT EXISTS idx_corpus_citation ON corpus(citation);
CREATE INDEX IF NOT EXISTS idx_corpus_source ON corpus(source);
CREATE INDEX IF NOT EXISTS idx_corpus_jurisdiction ON corpus(jurisdiction);

-- Key material (exactly two named slots, last write wins)
CREATE TABLE IF NOT EXISTS keys (
    slot TEXT PRIMARY KEY CHECK (slot IN ('publicKey', 'privateKey')),
    value TEXT NOT NULL
);
`

// NewSQLiteStore creates a new in-memory SQLite store.
func NewSQLiteStore() (*SQLiteStore, error) {
	return NewSQLiteStoreWithDSN(":memory:")
}

// NewSQLiteStoreWithDSN creates a store with a specific data source name.
// Use ":memory:" for in-memory or a file path for persistent storage.
// The migration sequence runs before this returns; on migration failure the
// handle is closed and the error surfaces to the caller.
func NewSQLiteStoreWithDSN(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Create schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations applies incremental schema migrations based on user_version.
// Steps run in ascending order, each exactly once, and only add; the whole
// sequence commits in one transaction so a failed step leaves the on-disk
// version untouched.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	if version < 1 {
		// v1 is the base schema; fresh databases already have it from the
		// idempotent CREATE statements above.
		version = 1
	}
	if version < 2 {
		if err := migrateToV2(tx); err != nil {
			return err
		}
		version = 2
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return tx.Commit()
}

// migrateToV2 adds the section_id index for databases created before ordered
// section lookup existed. New databases get it from the schema constant, so
// IF NOT EXISTS makes this a safe no-op there.
func migrateToV2(tx *sql.Tx) error {
	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_corpus_section ON corpus(section_id)`); err != nil {
		return fmt.Errorf("migrate to v2: %w", err)
	}
	return nil
}

// SchemaVersion reports the on-disk schema version. Used by tests.
func (s *SQLiteStore) SchemaVersion() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Opener guards open-once semantics for a shared store handle.
// All components receive the same *SQLiteStore; callers that race to open
// block on the first initialization instead of re-triggering it.
type Opener struct {
	once  sync.Once
	store *SQLiteStore
	err   error
}

// Open opens (creating if absent) the database at dsn exactly once per
// Opener. Every call returns the same handle or the same open error.
func (o *Opener) Open(dsn string) (*SQLiteStore, error) {
	o.once.Do(func() {
		o.store, o.err = NewSQLiteStoreWithDSN(dsn)
	})
	return o.store, o.err
}

// =============================================================================
// Corpus ingestion
// =============================================================================

// validateItem checks the required fields of an incoming corpus item.
func validateItem(item *CorpusItem) error {
	if item.Citation == "" {
		return fmt.Errorf("missing citation")
	}
	if !validSources[item.Source] {
		return fmt.Errorf("unknown source %q", item.Source)
	}
	if !validJurisdictions[item.Jurisdiction] {
		return fmt.Errorf("unknown jurisdiction %q", item.Jurisdiction)
	}
	if item.Title == "" {
		return fmt.Errorf("missing title")
	}
	return nil
}

// AddItems upserts a batch of corpus items keyed by citation.
// An incoming item whose citation already exists replaces every field of the
// existing record but keeps its surrogate id. Malformed items are skipped and
// reported; the valid subset commits in a single transaction.
func (s *SQLiteStore) AddItems(items []CorpusItem) (*IngestReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report := &IngestReport{}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin ingest: %w", err)
	}
	defer tx.Rollback()

	for i := range items {
		item := &items[i]
		if err := validateItem(item); err != nil {
			report.Rejected = append(report.Rejected, RejectedItem{Index: i, Reason: err.Error()})
			continue
		}

		// Uniqueness on citation is enforced by the storage index, not an
		// application-level pre-check.
		_, err := tx.Exec(`
			INSERT INTO corpus (source, jurisdiction, citation, section_id, title, body, strategic_notes, effective_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(citation) DO UPDATE SET
				source = excluded.source,
				jurisdiction = excluded.jurisdiction,
				section_id = excluded.section_id,
				title = excluded.title,
				body = excluded.body,
				strategic_notes = excluded.strategic_notes,
				effective_date = excluded.effective_date
		`, string(item.Source), string(item.Jurisdiction), item.Citation,
			nullable(item.SectionID), item.Title, item.Text,
			nullable(item.StrategicNotes), nullable(item.EffectiveDate))
		if err != nil {
			return nil, fmt.Errorf("failed to upsert %q: %w", item.Citation, err)
		}
		report.Upserted++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ingest: %w", err)
	}
	return report, nil
}

// =============================================================================
// Corpus queries
// =============================================================================

const corpusColumns = `id, source, jurisdiction, citation, section_id, title, body, strategic_notes, effective_date`

// GetByCitation retrieves a corpus item by its citation string.
// Returns nil if not found.
func (s *SQLiteStore) GetByCitation(citation string) (*CorpusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT `+corpusColumns+` FROM corpus WHERE citation = ?`, citation)
	item, err := scanCorpusRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// indexColumn maps a CorpusIndex to its backing column.
var indexColumn = map[CorpusIndex]string{
	IndexSource:       "source",
	IndexJurisdiction: "jurisdiction",
	IndexSectionID:    "section_id",
}

// QueryByIndex returns all items matching value on the named secondary index.
// Result order is stable for a given store state (ascending surrogate id).
func (s *SQLiteStore) QueryByIndex(index CorpusIndex, value string) ([]*CorpusItem, error) {
	col, ok := indexColumn[index]
	if !ok {
		return nil, fmt.Errorf("unknown corpus index %q", index)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT `+corpusColumns+` FROM corpus WHERE `+col+` = ? ORDER BY id`, value)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCorpusRows(rows)
}

// GetAll returns the full corpus, optionally pre-filtered by source.
// Pass an empty Source for no filter.
func (s *SQLiteStore) GetAll(source Source) ([]*CorpusItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows *sql.Rows
	var err error

	if source != "" {
		rows, err = s.db.Query(`SELECT `+corpusColumns+` FROM corpus WHERE source = ? ORDER BY id`, string(source))
	} else {
		rows, err = s.db.Query(`SELECT ` + corpusColumns + ` FROM corpus ORDER BY id`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCorpusRows(rows)
}

// CountCorpus returns the total number of corpus records.
func (s *SQLiteStore) CountCorpus() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM corpus").Scan(&count)
	return count, err
}

// ClearCorpus removes every corpus record in one atomic step.
func (s *SQLiteStore) ClearCorpus() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM corpus")
	return err
}

// =============================================================================
// Key material
// =============================================================================

// PutKey stores opaque key material in the named slot, replacing any
// previous value.
func (s *SQLiteStore) PutKey(slot KeySlot, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO keys (slot, value) VALUES (?, ?)
		ON CONFLICT(slot) DO UPDATE SET value = excluded.value
	`, string(slot), value)
	return err
}

// GetKey retrieves the key material in the named slot.
// Returns an empty string if the slot is empty.
func (s *SQLiteStore) GetKey(slot KeySlot) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRow(`SELECT value FROM keys WHERE slot = ?`, string(slot)).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// ClearKeys empties both slots atomically.
func (s *SQLiteStore) ClearKeys() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM keys")
	return err
}

// =============================================================================
// Export/Import
// =============================================================================

// exportData is the portable JSON shape used for OPFS sync.
type exportData struct {
	Corpus []*CorpusItem     `json:"corpus"`
	Keys   map[string]string `json:"keys"`
}

// Export serializes all database tables to JSON bytes.
// This is a portable export that doesn't depend on sqlite3 serialization APIs.
func (s *SQLiteStore) Export() ([]byte, error) {
	items, err := s.GetAll("")
	if err != nil {
		return nil, fmt.Errorf("export corpus: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data := exportData{Corpus: items, Keys: make(map[string]string)}

	rows, err := s.db.Query(`SELECT slot, value FROM keys`)
	if err != nil {
		return nil, fmt.Errorf("export keys: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var slot, value string
		if err := rows.Scan(&slot, &value); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		data.Keys[slot] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return json.Marshal(data)
}

// Import restores the database state from an exported JSON byte slice.
// Clears all existing data and re-inserts from the export, preserving
// surrogate ids.
func (s *SQLiteStore) Import(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(data) == 0 {
		return nil
	}

	var imported exportData
	if err := json.Unmarshal(data, &imported); err != nil {
		return fmt.Errorf("import unmarshal: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("import begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"corpus", "keys"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, item := range imported.Corpus {
		_, err := tx.Exec(`
			INSERT INTO corpus (id, source, jurisdiction, citation, section_id, title, body, strategic_notes, effective_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, string(item.Source), string(item.Jurisdiction), item.Citation,
			nullable(item.SectionID), item.Title, item.Text,
			nullable(item.StrategicNotes), nullable(item.EffectiveDate))
		if err != nil {
			return fmt.Errorf("import corpus %q: %w", item.Citation, err)
		}
	}

	for slot, value := range imported.Keys {
		if _, err := tx.Exec(`INSERT INTO keys (slot, value) VALUES (?, ?)`, slot, value); err != nil {
			return fmt.Errorf("import key %s: %w", slot, err)
		}
	}

	return tx.Commit()
}

// =============================================================================
// Helpers
// =============================================================================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCorpusRow(row rowScanner) (*CorpusItem, error) {
	var item CorpusItem
	var source, jurisdiction string
	var sectionID, strategicNotes, effectiveDate sql.NullString

	err := row.Scan(
		&item.ID, &source, &jurisdiction, &item.Citation,
		&sectionID, &item.Title, &item.Text, &strategicNotes, &effectiveDate,
	)
	if err != nil {
		return nil, err
	}

	item.Source = Source(source)
	item.Jurisdiction = Jurisdiction(jurisdiction)
	if sectionID.Valid {
		item.SectionID = sectionID.String
	}
	if strategicNotes.Valid {
		item.StrategicNotes = strategicNotes.String
	}
	if effectiveDate.Valid {
		item.EffectiveDate = effectiveDate.String
	}

	return &item, nil
}

func scanCorpusRows(rows *sql.Rows) ([]*CorpusItem, error) {
	var items []*CorpusItem
	for rows.Next() {
		item, err := scanCorpusRow(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// nullable maps an empty string to NULL so optional columns stay NULL
// instead of storing empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Compile-time interface check
var _ Storer = (*SQLiteStore)(nil)
