// Package corpus provides the query and ingestion surface over the
// legal-reference collection. Ingestion is the one contract the external
// seeder feed has with the core: repeated runs with overlapping data are
// idempotent because the store upserts by citation.
package corpus

import (
	"fmt"

	"github.com/kittclouds/lexkitt/internal/store"
)

// Service coordinates corpus access for the UI layer.
type Service struct {
	store store.Storer
}

// NewService creates a corpus service backed by the given store.
func NewService(s store.Storer) *Service {
	return &Service{store: s}
}

// Ingest upserts a batch of feed items. Malformed items are skipped and
// reported in the returned IngestReport; valid items commit together.
func (s *Service) Ingest(items []store.CorpusItem) (*store.IngestReport, error) {
	if s.store == nil {
		return nil, fmt.Errorf("corpus: store not initialized")
	}
	report, err := s.store.AddItems(items)
	if err != nil {
		return nil, fmt.Errorf("corpus: ingest failed: %w", err)
	}
	return report, nil
}

// QueryByIndex returns all items matching value on the named index
// (source, jurisdiction, sectionId).
func (s *Service) QueryByIndex(index store.CorpusIndex, value string) ([]*store.CorpusItem, error) {
	return s.store.QueryByIndex(index, value)
}

// BySource returns all items from one source.
func (s *Service) BySource(source store.Source) ([]*store.CorpusItem, error) {
	return s.store.QueryByIndex(store.IndexSource, string(source))
}

// ByJurisdiction returns all items in one jurisdiction.
func (s *Service) ByJurisdiction(j store.Jurisdiction) ([]*store.CorpusItem, error) {
	return s.store.QueryByIndex(store.IndexJurisdiction, string(j))
}

// Lookup retrieves one item by its citation string. Returns nil if absent.
func (s *Service) Lookup(citation string) (*store.CorpusItem, error) {
	return s.store.GetByCitation(citation)
}

// All returns the full corpus, optionally pre-filtered by source.
func (s *Service) All(source store.Source) ([]*store.CorpusItem, error) {
	return s.store.GetAll(source)
}

// Count returns the number of corpus records.
func (s *Service) Count() (int, error) {
	return s.store.CountCorpus()
}
