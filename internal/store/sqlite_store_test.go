package store

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItems() []CorpusItem {
	return []CorpusItem{
		{
			Source:       SourceRule,
			Jurisdiction: JurisdictionFederal,
			Citation:     "FRCP Rule 12",
			SectionID:    "12",
			Title:        "Defenses",
			Text:         "Every defense to a claim for relief...",
		},
		{
			Source:       SourceStatute,
			Jurisdiction: JurisdictionFederal,
			Citation:     "15 U.S.C. 1692",
			SectionID:    "1692",
			Title:        "Fair Debt Collection Practices Act",
			Text:         "Congressional findings and declaration of purpose...",
		},
		{
			Source:       SourceConstitution,
			Jurisdiction: JurisdictionFederal,
			Citation:     "U.S. Const. amend. IV",
			SectionID:    "IV",
			Title:        "Fourth Amendment",
			Text:         "The right of the people to be secure...",
		},
	}
}

func TestAddItemsIdempotent(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	items := seedItems()

	report, err := s.AddItems(items)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Upserted)
	assert.Empty(t, report.Rejected)

	// Second run with identical citations must not grow the collection.
	report, err = s.AddItems(items)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Upserted)

	count, err := s.CountCorpus()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpsertByCitationKeepsSurrogateID(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.AddItems(seedItems())
	require.NoError(t, err)

	before, err := s.GetByCitation("FRCP Rule 12")
	require.NoError(t, err)
	require.NotNil(t, before)

	// Re-ingest with the same citation but new content.
	_, err = s.AddItems([]CorpusItem{{
		Source:       SourceRule,
		Jurisdiction: JurisdictionFederal,
		Citation:     "FRCP Rule 12",
		SectionID:    "12",
		Title:        "Defenses and Objections",
		Text:         "Updated body text.",
	}})
	require.NoError(t, err)

	after, err := s.GetByCitation("FRCP Rule 12")
	require.NoError(t, err)
	require.NotNil(t, after)

	assert.Equal(t, before.ID, after.ID, "surrogate id must survive upsert")
	assert.Equal(t, "Defenses and Objections", after.Title)
	assert.Equal(t, "Updated body text.", after.Text)

	rules, err := s.QueryByIndex(IndexSource, string(SourceRule))
	require.NoError(t, err)
	assert.Len(t, rules, 1, "colliding citation must never add a record")
}

func TestAddItemsSkipAndReport(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	items := seedItems()
	// Index 1 has no citation, index 2 an unknown source.
	items[1].Citation = ""
	items[2].Source = "blog"

	report, err := s.AddItems(items)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Upserted)
	require.Len(t, report.Rejected, 2)
	assert.Equal(t, 1, report.Rejected[0].Index)
	assert.Contains(t, report.Rejected[0].Reason, "citation")
	assert.Equal(t, 2, report.Rejected[1].Index)
	assert.Contains(t, report.Rejected[1].Reason, "source")

	// The valid subset is committed.
	count, err := s.CountCorpus()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestQueryByIndex(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.AddItems(seedItems())
	require.NoError(t, err)

	rules, err := s.QueryByIndex(IndexSource, string(SourceRule))
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "FRCP Rule 12", rules[0].Citation)

	federal, err := s.QueryByIndex(IndexJurisdiction, string(JurisdictionFederal))
	require.NoError(t, err)
	assert.Len(t, federal, 3)

	section, err := s.QueryByIndex(IndexSectionID, "1692")
	require.NoError(t, err)
	require.Len(t, section, 1)
	assert.Equal(t, "15 U.S.C. 1692", section[0].Citation)

	_, err = s.QueryByIndex("title", "Defenses")
	assert.Error(t, err, "unknown index must be rejected")
}

func TestGetAllSourceFilter(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.AddItems(seedItems())
	require.NoError(t, err)

	all, err := s.GetAll("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	statutes, err := s.GetAll(SourceStatute)
	require.NoError(t, err)
	require.Len(t, statutes, 1)
	assert.Equal(t, SourceStatute, statutes[0].Source)
}

func TestGetByCitationAbsent(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	item, err := s.GetByCitation("no such citation")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestKeySlots(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutKey(SlotPublicKey, "pub-1"))
	require.NoError(t, s.PutKey(SlotPrivateKey, "priv-1"))

	// Last write wins.
	require.NoError(t, s.PutKey(SlotPublicKey, "pub-2"))

	pub, err := s.GetKey(SlotPublicKey)
	require.NoError(t, err)
	assert.Equal(t, "pub-2", pub)

	require.NoError(t, s.ClearKeys())

	pub, err = s.GetKey(SlotPublicKey)
	require.NoError(t, err)
	assert.Empty(t, pub)

	priv, err := s.GetKey(SlotPrivateKey)
	require.NoError(t, err)
	assert.Empty(t, priv)
}

func TestMigrationIdempotent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "lexkitt.db")

	s, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)

	version, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	_, err = s.AddItems(seedItems())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening a store already at the current version runs zero migration
	// steps and leaves the data alone.
	s2, err := NewSQLiteStoreWithDSN(dsn)
	require.NoError(t, err)
	defer s2.Close()

	version, err = s2.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	count, err := s2.CountCorpus()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestOpenerSharesHandle(t *testing.T) {
	var opener Opener
	dsn := filepath.Join(t.TempDir(), "lexkitt.db")

	var wg sync.WaitGroup
	handles := make([]*SQLiteStore, 8)
	for i := range handles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := opener.Open(dsn)
			require.NoError(t, err)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	for _, h := range handles[1:] {
		assert.Same(t, handles[0], h, "racing callers must observe one handle")
	}
	handles[0].Close()
}

func TestExportImport(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	_, err = s.AddItems(seedItems())
	require.NoError(t, err)
	require.NoError(t, s.PutKey(SlotPublicKey, "pub"))

	data, err := s.Export()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Fresh store simulates a reload from OPFS.
	s2, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s2.Close()

	require.NoError(t, s2.Import(data))

	count, err := s2.CountCorpus()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	restored, err := s2.GetByCitation("FRCP Rule 12")
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "Defenses", restored.Title)

	pub, err := s2.GetKey(SlotPublicKey)
	require.NoError(t, err)
	assert.Equal(t, "pub", pub)
}
