package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/lexkitt/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := store.NewSQLiteStore()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s)
}

func feedItems() []store.CorpusItem {
	return []store.CorpusItem{
		{
			Source:       store.SourceRule,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "FRCP Rule 12",
			SectionID:    "12",
			Title:        "Defenses",
			Text:         "Every defense to a claim for relief in any pleading must be asserted.",
		},
		{
			Source:       store.SourceStatute,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "15 U.S.C. 1692g",
			SectionID:    "1692g",
			Title:        "Validation of debts",
			Text:         "Within five days after the initial communication with a consumer...",
		},
		{
			Source:       store.SourceConstitution,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "U.S. Const. amend. IV",
			SectionID:    "IV",
			Title:        "Fourth Amendment",
			Text:         "The right of the people to be secure in their persons, houses, papers...",
		},
	}
}

func TestIngestIdempotent(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.Ingest(feedItems())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Upserted)

	// The seeder feed may run again with overlapping data.
	_, err = svc.Ingest(feedItems())
	require.NoError(t, err)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestIngestOverwritesByCitation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ingest(feedItems())
	require.NoError(t, err)

	_, err = svc.Ingest([]store.CorpusItem{{
		Source:       store.SourceRule,
		Jurisdiction: store.JurisdictionFederal,
		Citation:     "FRCP Rule 12",
		SectionID:    "12",
		Title:        "Defenses and Objections",
		Text:         "Every defense to a claim for relief in any pleading must be asserted.",
	}})
	require.NoError(t, err)

	rules, err := svc.BySource(store.SourceRule)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Defenses and Objections", rules[0].Title)
}

func TestSearchRanksCitationHitsFirst(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ingest(feedItems())
	require.NoError(t, err)

	results, err := svc.Search("1692g", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "15 U.S.C. 1692g", results[0].Item.Citation)

	// "defense" appears in the rule's title and body.
	results, err = svc.Search("defenses", "")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "FRCP Rule 12", results[0].Item.Citation)
}

func TestSearchSourceFilter(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ingest(feedItems())
	require.NoError(t, err)

	// "people" only matches the amendment; filtering by statute excludes it.
	results, err := svc.Search("people", store.SourceStatute)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search("people", store.SourceConstitution)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "U.S. Const. amend. IV", results[0].Item.Citation)
}

func TestSearchStopwordOnlyQuery(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Ingest(feedItems())
	require.NoError(t, err)

	// Stopwords are stripped before matching.
	results, err := svc.Search("the validation", "")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "15 U.S.C. 1692g", results[0].Item.Citation)

	// A query that is only stopwords still searches with the raw tokens.
	results, err = svc.Search("the", "")
	require.NoError(t, err)
	assert.NotEmpty(t, results)

	// Empty query returns nothing.
	results, err = svc.Search("   ", "")
	require.NoError(t, err)
	assert.Empty(t, results)
}
