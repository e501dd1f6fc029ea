// Package citescan provides a runtime citation dictionary using Aho-Corasick.
// A single AC automaton serves as both citation lookup AND document scanner:
// compile it from the corpus, then scan uploaded document text to find which
// statutes, rules, and articles the document cites.
package citescan

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coregx/ahocorasick"

	"github.com/kittclouds/lexkitt/internal/store"
)

// isJoiner returns true for punctuation that commonly appears INSIDE
// citations. These are preserved during canonicalization so multiword
// citations stay coherent. Examples: "U.S.C.", "amend. IV", "12(b)(6)".
func isJoiner(r rune) bool {
	switch r {
	case '.', '-', '–', '—', // period, hyphen, en-dash, em-dash
		'(', ')', '/', '§': // subsection parens, slash, section sign
		return true
	default:
		return false
	}
}

// isSeparator returns true for characters that split tokens.
func isSeparator(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || isJoiner(r) {
		return false
	}
	return true
}

// CanonicalizeForMatch transforms text into a normalized form for
// Aho-Corasick matching. The same function normalizes both the compiled
// citation patterns and the scanned document text; that symmetry is what
// makes "15 u.s.c. 1692g" in a filing match "15 U.S.C. 1692g" in the corpus.
// Rules:
// - Fold to lowercase
// - Preserve letters, digits, and joiners (period, hyphen, parens, section sign)
// - Replace all other characters with a single space, collapsing runs
// - Trim leading/trailing spaces
func CanonicalizeForMatch(s string) string {
	var out strings.Builder
	out.Grow(len(s))

	lastWasSpace := true // start true to trim leading spaces

	for _, ch := range s {
		c := unicode.ToLower(ch)

		// Normalize en-dash/em-dash to hyphen
		if c == '–' || c == '—' {
			c = '-'
		}

		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			out.WriteRune(c)
			lastWasSpace = false
		} else {
			if !lastWasSpace {
				out.WriteRune(' ')
				lastWasSpace = true
			}
		}
	}

	result := out.String()
	if len(result) > 0 && result[len(result)-1] == ' ' {
		result = result[:len(result)-1]
	}
	return result
}

// Match is a detected citation in document text.
type Match struct {
	Start       int    // byte offset start in ORIGINAL text
	End         int    // byte offset end in ORIGINAL text
	MatchedText string // original text slice (preserves casing)
	Citations   []string
}

// Dictionary maps citation surface forms to corpus citations via a compiled
// AC automaton.
type Dictionary struct {
	ac *ahocorasick.Automaton

	// Pattern index -> citations (aliases may collide across items)
	patternToCitations [][]string

	// Normalized surface form -> pattern index
	patternIndex map[string]int

	// All patterns in compile order (for the AC builder)
	patterns []string
}

// Compile builds a Dictionary from the current corpus contents.
// Surface forms per item: the citation itself plus source-specific
// shorthands derived from the section id ("rule 12", "section 1692g",
// "article IV" and so on), since filings rarely spell citations in full.
func Compile(items []*store.CorpusItem) (*Dictionary, error) {
	dict := &Dictionary{
		patternIndex: make(map[string]int),
	}

	for _, item := range items {
		for _, surface := range surfaceForms(item) {
			key := CanonicalizeForMatch(surface)
			if key == "" {
				continue
			}

			if idx, exists := dict.patternIndex[key]; exists {
				dict.patternToCitations[idx] = appendUnique(dict.patternToCitations[idx], item.Citation)
			} else {
				idx := len(dict.patterns)
				dict.patterns = append(dict.patterns, key)
				dict.patternIndex[key] = idx
				dict.patternToCitations = append(dict.patternToCitations, []string{item.Citation})
			}
		}
	}

	// LeftmostLongest prefers "FRCP Rule 12(b)(6)" over "FRCP Rule 12"
	automaton, err := ahocorasick.NewBuilder().
		AddStrings(dict.patterns).
		SetMatchKind(ahocorasick.LeftmostLongest).
		SetPrefilter(true).
		Build()
	if err != nil {
		return nil, err
	}
	dict.ac = automaton

	return dict, nil
}

// surfaceForms collects the matchable spellings of one corpus item.
func surfaceForms(item *store.CorpusItem) []string {
	surfaces := []string{item.Citation}
	if item.SectionID == "" {
		return surfaces
	}

	switch item.Source {
	case store.SourceRule:
		surfaces = append(surfaces, "rule "+item.SectionID)
	case store.SourceStatute:
		surfaces = append(surfaces,
			"section "+item.SectionID,
			"§ "+item.SectionID)
	case store.SourceConstitution:
		surfaces = append(surfaces,
			"article "+item.SectionID,
			"amendment "+item.SectionID,
			"amend. "+item.SectionID)
	}
	return surfaces
}

// Lookup finds corpus citations matching a surface form exactly.
func (d *Dictionary) Lookup(surface string) []string {
	key := CanonicalizeForMatch(surface)
	idx, exists := d.patternIndex[key]
	if !exists {
		return nil
	}
	return d.patternToCitations[idx]
}

// IsKnownCitation checks if a surface form matches any compiled pattern.
func (d *Dictionary) IsKnownCitation(surface string) bool {
	_, exists := d.patternIndex[CanonicalizeForMatch(surface)]
	return exists
}

// Scan finds all citation mentions in text (O(n) via AC).
// Offsets are mapped back to the original text for accurate highlighting.
func (d *Dictionary) Scan(text string) []Match {
	if d.ac == nil {
		return nil
	}

	canonicalized := CanonicalizeForMatch(text)
	haystack := []byte(canonicalized)

	canonToOrig := buildOffsetMap(text)

	matches := d.ac.FindAllOverlapping(haystack)
	result := make([]Match, 0, len(matches))

	for _, m := range matches {
		origStart := mapOffset(m.Start, canonToOrig, len(text))
		origEnd := mapOffset(m.End, canonToOrig, len(text))

		if origStart >= len(text) || origEnd > len(text) || origStart >= origEnd {
			continue
		}

		result = append(result, Match{
			Start:       origStart,
			End:         origEnd,
			MatchedText: text[origStart:origEnd],
			Citations:   d.patternToCitations[m.PatternID],
		})
	}

	return result
}

// CitedIn returns the distinct corpus citations mentioned in text, in first
// appearance order. This is what the vault attaches to an uploaded document.
func (d *Dictionary) CitedIn(text string) []string {
	var cited []string
	for _, m := range d.Scan(text) {
		for _, c := range m.Citations {
			cited = appendUnique(cited, c)
		}
	}
	return cited
}

// buildOffsetMap creates a mapping from canonicalized byte positions to
// original positions, so matches found in canonicalized text map back to
// the original.
func buildOffsetMap(original string) []int {
	mapping := make([]int, 0, len(original)+1)

	lastWasSpace := true
	origPos := 0

	for _, ch := range original {
		runeLen := utf8.RuneLen(ch)
		c := unicode.ToLower(ch)

		if c == '–' || c == '—' {
			c = '-'
		}

		if unicode.IsLetter(c) || unicode.IsDigit(c) || isJoiner(c) {
			canonLen := utf8.RuneLen(c)
			for i := 0; i < canonLen; i++ {
				mapping = append(mapping, origPos)
			}
			lastWasSpace = false
		} else {
			// Separator - may become a single space
			if !lastWasSpace {
				mapping = append(mapping, origPos)
				lastWasSpace = true
			}
		}

		origPos += runeLen
	}

	// Final position for end-of-string
	mapping = append(mapping, origPos)

	return mapping
}

// mapOffset converts a canonicalized byte offset to an original byte offset.
func mapOffset(canonOffset int, mapping []int, originalLen int) int {
	if canonOffset >= len(mapping) {
		return originalLen
	}
	if canonOffset < 0 {
		return 0
	}
	return mapping[canonOffset]
}

func appendUnique(slice []string, item string) []string {
	for _, s := range slice {
		if s == item {
			return slice
		}
	}
	return append(slice, item)
}
