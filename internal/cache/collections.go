package cache

import (
	"encoding/json"
	"sort"
)

// Record is any cache record addressable by a client-generated string id.
type Record interface {
	RecordID() string
}

// Collection is one flat keyed collection over the kv store.
//
// Lifecycle contract, uniform across every collection:
//   - List returns every record; time-stamped collections sort newest-first
//     at read time, other collections keep insertion order.
//   - Upsert replaces in place when the id is present, otherwise inserts
//     (prepended for log-style collections).
//   - Remove is idempotent; built-in defaults are never removable.
//
// Storage failures degrade: List falls back to the defaults (or nothing),
// writes report the error but never panic and never corrupt the payload.
type Collection[T Record] struct {
	store      *Store
	key        string
	prepend    bool              // new records go first (creditor/invoice-style logs)
	newerFirst func(a, b T) bool // read-time sort for time-stamped collections
	defaults   []T               // built-ins, always present in List output
}

// load reads the persisted custom entries. Errors and malformed payloads
// degrade to an empty slice.
func (c *Collection[T]) load() []T {
	payload, err := c.store.get(c.key)
	if err != nil || len(payload) == 0 {
		return nil
	}
	var records []T
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil
	}
	return records
}

// save writes the custom entries back as one JSON array.
func (c *Collection[T]) save(records []T) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return c.store.set(c.key, payload)
}

// List returns built-in defaults (if any) followed by every custom record.
// When the collection is time-stamped the combined result sorts newest-first.
func (c *Collection[T]) List() []T {
	records := c.load()

	out := make([]T, 0, len(c.defaults)+len(records))
	out = append(out, c.defaults...)
	out = append(out, records...)

	if c.newerFirst != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return c.newerFirst(out[i], out[j])
		})
	}
	return out
}

// Get returns the record with the given id, or false when absent.
func (c *Collection[T]) Get(id string) (T, bool) {
	for _, r := range c.defaults {
		if r.RecordID() == id {
			return r, true
		}
	}
	for _, r := range c.load() {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the record with a matching id in place, or inserts it.
// Mutation is always whole-record replacement, never a partial patch.
// Ids belonging to built-in defaults are not writable; the call is a no-op.
func (c *Collection[T]) Upsert(record T) error {
	id := record.RecordID()
	if c.isDefault(id) {
		return nil
	}

	records := c.load()
	for i, r := range records {
		if r.RecordID() == id {
			records[i] = record
			return c.save(records)
		}
	}

	if c.prepend {
		records = append([]T{record}, records...)
	} else {
		records = append(records, record)
	}
	return c.save(records)
}

// Remove deletes the record with the given id. Removing an absent id or a
// built-in default is a silent no-op.
func (c *Collection[T]) Remove(id string) error {
	if c.isDefault(id) {
		return nil
	}

	records := c.load()
	for i, r := range records {
		if r.RecordID() == id {
			records = append(records[:i], records[i+1:]...)
			return c.save(records)
		}
	}
	return nil
}

// Count returns the number of records List would return.
func (c *Collection[T]) Count() int {
	return len(c.defaults) + len(c.load())
}

func (c *Collection[T]) isDefault(id string) bool {
	for _, d := range c.defaults {
		if d.RecordID() == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Cache - the bundle of collections handed to the UI layer
// =============================================================================

// Cache bundles every flat collection plus the single-slot entries
// (current user, draft clipboard).
type Cache struct {
	store *Store

	Profiles  *Collection[ProfileRecord]
	Creditors *Collection[CreditorRecord]
	Documents *Collection[VaultDocumentRecord]
	Processes *Collection[RemedyProcessRecord]
	Invoices  *Collection[InvoiceRecord]
	Templates *Collection[TemplateRecord]
	Scripts   *Collection[ScriptRecord]
}

// New opens the cache database and wires up every collection.
func New(dsn string) (*Cache, error) {
	store, err := NewStore(dsn)
	if err != nil {
		return nil, err
	}
	return newCache(store), nil
}

func newCache(store *Store) *Cache {
	return &Cache{
		store:    store,
		Profiles: &Collection[ProfileRecord]{store: store, key: keyProfiles},
		Creditors: &Collection[CreditorRecord]{
			store: store, key: keyCreditors, prepend: true,
		},
		Documents: &Collection[VaultDocumentRecord]{
			store: store, key: keyDocuments,
			newerFirst: func(a, b VaultDocumentRecord) bool { return a.DateUploaded > b.DateUploaded },
		},
		Processes: &Collection[RemedyProcessRecord]{
			store: store, key: keyProcesses,
			newerFirst: func(a, b RemedyProcessRecord) bool { return a.StartDate > b.StartDate },
		},
		Invoices: &Collection[InvoiceRecord]{
			store: store, key: keyInvoices, prepend: true,
			newerFirst: func(a, b InvoiceRecord) bool { return a.DateCreated > b.DateCreated },
		},
		Templates: &Collection[TemplateRecord]{
			store: store, key: keyTemplates, defaults: DefaultTemplates(),
		},
		Scripts: &Collection[ScriptRecord]{
			store: store, key: keyScripts, defaults: DefaultScripts(),
		},
	}
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.store.Close()
}

// SaveUser persists the current-user slot.
func (c *Cache) SaveUser(user *UserRecord) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.store.set(keyCurrentUser, payload)
}

// LoadUser reads the persisted current user. Returns nil when absent or on
// storage failure (the session layer treats both as logged out).
func (c *Cache) LoadUser() *UserRecord {
	payload, err := c.store.get(keyCurrentUser)
	if err != nil || len(payload) == 0 {
		return nil
	}
	var user UserRecord
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil
	}
	return &user
}

// ClearUser empties the current-user slot.
func (c *Cache) ClearUser() error {
	return c.store.delete(keyCurrentUser)
}

// SetClipboard stores the single-slot draft handoff payload passed between
// the instrument views.
func (c *Cache) SetClipboard(payload json.RawMessage) error {
	return c.store.set(keyClipboard, payload)
}

// GetClipboard returns the draft handoff payload, or nil when the slot is
// empty.
func (c *Cache) GetClipboard() json.RawMessage {
	payload, err := c.store.get(keyClipboard)
	if err != nil || len(payload) == 0 {
		return nil
	}
	return json.RawMessage(payload)
}

// ClearClipboard empties the handoff slot.
func (c *Cache) ClearClipboard() error {
	return c.store.delete(keyClipboard)
}
