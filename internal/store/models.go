// Package store provides SQLite-backed persistence for LexKitt WASM.
// This is the versioned data layer holding the legal-reference corpus
// and the two cryptographic key slots.
package store

// Source discriminates the provenance of a corpus record.
type Source string

const (
	SourceConstitution Source = "constitution"
	SourceStatute      Source = "statute"
	SourceRule         Source = "rule"
	SourceTreaty       Source = "treaty"
)

// validSources is the set of recognized sources for validation.
var validSources = map[Source]bool{
	SourceConstitution: true,
	SourceStatute:      true,
	SourceRule:         true,
	SourceTreaty:       true,
}

// IsValidSource checks if a string is a recognized Source.
func IsValidSource(s string) bool {
	return validSources[Source(s)]
}

// Jurisdiction scopes a corpus record to a legal system.
type Jurisdiction string

const (
	JurisdictionFederal       Jurisdiction = "federal"
	JurisdictionState         Jurisdiction = "state"
	JurisdictionInternational Jurisdiction = "international"
)

// validJurisdictions is the set of recognized jurisdictions for validation.
var validJurisdictions = map[Jurisdiction]bool{
	JurisdictionFederal:       true,
	JurisdictionState:         true,
	JurisdictionInternational: true,
}

// IsValidJurisdiction checks if a string is a recognized Jurisdiction.
func IsValidJurisdiction(s string) bool {
	return validJurisdictions[Jurisdiction(s)]
}

// CorpusItem is one legal-reference record (statute, rule, constitutional
// article, treaty). The citation string is the natural key: no two items
// may share one, and repeated ingestion upserts by citation.
type CorpusItem struct {
	ID             int64        `json:"id"` // surrogate key, assigned by the store
	Source         Source       `json:"source"`
	Jurisdiction   Jurisdiction `json:"jurisdiction"`
	Citation       string       `json:"citation"`
	SectionID      string       `json:"sectionId,omitempty"`
	Title          string       `json:"title"`
	Text           string       `json:"text"`
	StrategicNotes string       `json:"strategicNotes,omitempty"`
	EffectiveDate  string       `json:"effectiveDate,omitempty"`
}

// CorpusIndex names a queryable secondary index on the corpus collection.
type CorpusIndex string

const (
	IndexSource       CorpusIndex = "source"
	IndexJurisdiction CorpusIndex = "jurisdiction"
	IndexSectionID    CorpusIndex = "sectionId"
)

// KeySlot names one of the two key-material slots.
type KeySlot string

const (
	SlotPublicKey  KeySlot = "publicKey"
	SlotPrivateKey KeySlot = "privateKey"
)

// IngestReport describes the outcome of a batch ingestion. Valid items are
// committed in one transaction; malformed items are skipped and reported.
type IngestReport struct {
	Upserted int            `json:"upserted"`
	Rejected []RejectedItem `json:"rejected,omitempty"`
}

// RejectedItem identifies one skipped batch entry and why it was skipped.
type RejectedItem struct {
	Index  int    `json:"index"` // position in the input slice
	Reason string `json:"reason"`
}

// Storer defines the interface for the versioned data layer.
// SQLiteStore is the sole implementation, using in-memory SQLite for WASM.
type Storer interface {
	// Corpus ingestion and queries
	AddItems(items []CorpusItem) (*IngestReport, error)
	GetByCitation(citation string) (*CorpusItem, error)
	QueryByIndex(index CorpusIndex, value string) ([]*CorpusItem, error)
	GetAll(source Source) ([]*CorpusItem, error)
	CountCorpus() (int, error)
	ClearCorpus() error

	// Key material (two named slots, last write wins)
	PutKey(slot KeySlot, value string) error
	GetKey(slot KeySlot) (string, error)
	ClearKeys() error

	// Export/Import (database serialization for OPFS sync)
	Export() ([]byte, error)
	Import(data []byte) error

	// Lifecycle
	Close() error
}
