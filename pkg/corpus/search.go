package corpus

import (
	"sort"
	"strings"

	"github.com/orsinium-labs/stopwords"

	"github.com/kittclouds/lexkitt/internal/store"
)

// english filters noise words out of search queries.
var english = stopwords.MustGet("en")

// SearchResult pairs a corpus item with its relevance score.
type SearchResult struct {
	Item  *store.CorpusItem `json:"item"`
	Score int               `json:"score"`
}

// Field weights. Citation and title hits matter more than a body mention.
const (
	weightCitation = 8
	weightTitle    = 4
	weightSection  = 3
	weightText     = 1
)

// Search performs client-side text search across title, text, sectionId and
// citation, optionally pre-filtered by source. Query terms are lowercased
// and stripped of English stopwords; every remaining term must appear in at
// least one field. Results are ranked by weighted hit count, ties broken by
// surrogate id so the order is stable for a given store state.
func (s *Service) Search(query string, source store.Source) ([]SearchResult, error) {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil, nil
	}

	items, err := s.store.GetAll(source)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	for _, item := range items {
		score, ok := scoreItem(item, terms)
		if !ok {
			continue
		}
		results = append(results, SearchResult{Item: item, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Item.ID < results[j].Item.ID
	})
	return results, nil
}

// queryTerms lowercases and tokenizes the query, dropping stopwords.
// If every token is a stopword the original tokens are kept, so a query
// like "the people" still searches.
func queryTerms(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		if english.Contains(f) {
			continue
		}
		terms = append(terms, f)
	}
	if len(terms) == 0 {
		return fields
	}
	return terms
}

// scoreItem returns the weighted hit score for item, and false when any
// term is missing from every field.
func scoreItem(item *store.CorpusItem, terms []string) (int, bool) {
	citation := strings.ToLower(item.Citation)
	title := strings.ToLower(item.Title)
	section := strings.ToLower(item.SectionID)
	text := strings.ToLower(item.Text)

	score := 0
	for _, term := range terms {
		hit := 0
		if strings.Contains(citation, term) {
			hit += weightCitation
		}
		if strings.Contains(title, term) {
			hit += weightTitle
		}
		if section != "" && strings.Contains(section, term) {
			hit += weightSection
		}
		if strings.Contains(text, term) {
			hit += weightText
		}
		if hit == 0 {
			return 0, false
		}
		score += hit
	}
	return score, true
}
