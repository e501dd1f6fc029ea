package citescan

import (
	"testing"

	"github.com/kittclouds/lexkitt/internal/store"
)

func compileTestDictionary(t *testing.T) *Dictionary {
	t.Helper()
	items := []*store.CorpusItem{
		{
			Source:       store.SourceRule,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "FRCP Rule 12",
			SectionID:    "12",
			Title:        "Defenses",
		},
		{
			Source:       store.SourceStatute,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "15 U.S.C. 1692g",
			SectionID:    "1692g",
			Title:        "Validation of debts",
		},
		{
			Source:       store.SourceConstitution,
			Jurisdiction: store.JurisdictionFederal,
			Citation:     "U.S. Const. amend. IV",
			SectionID:    "IV",
			Title:        "Fourth Amendment",
		},
	}
	dict, err := Compile(items)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	return dict
}

func TestCanonicalizeForMatch(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"15 U.S.C. 1692g", "15 u.s.c. 1692g"},
		{"FRCP  Rule\t12", "frcp rule 12"},
		{"  Rule 12(b)(6), ", "rule 12(b)(6)"},
		{"amend — IV", "amend - iv"},
	}
	for _, c := range cases {
		if got := CanonicalizeForMatch(c.in); got != c.want {
			t.Errorf("CanonicalizeForMatch(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestExactLookup(t *testing.T) {
	dict := compileTestDictionary(t)

	got := dict.Lookup("15 u.s.c. 1692g")
	if len(got) != 1 || got[0] != "15 U.S.C. 1692g" {
		t.Errorf("Lookup mismatch: %v", got)
	}

	if !dict.IsKnownCitation("FRCP Rule 12") {
		t.Error("expected FRCP Rule 12 to be known")
	}
	if dict.IsKnownCitation("FRCP Rule 56") {
		t.Error("did not expect FRCP Rule 56 to be known")
	}
}

func TestScanFindsCitationsInDocumentText(t *testing.T) {
	dict := compileTestDictionary(t)

	text := "Defendant moves to dismiss under FRCP Rule 12. The demand letter " +
		"relies on 15 U.S.C. 1692g and, separately, the Fourth Amendment via " +
		"U.S. Const. amend. IV."

	matches := dict.Scan(text)
	if len(matches) == 0 {
		t.Fatal("expected matches, got none")
	}

	cited := dict.CitedIn(text)
	want := map[string]bool{
		"FRCP Rule 12":          true,
		"15 U.S.C. 1692g":       true,
		"U.S. Const. amend. IV": true,
	}
	for _, c := range cited {
		if !want[c] {
			t.Errorf("unexpected citation %q", c)
		}
		delete(want, c)
	}
	for c := range want {
		t.Errorf("missing citation %q", c)
	}
}

func TestScanShorthandForms(t *testing.T) {
	dict := compileTestDictionary(t)

	// Filings rarely spell citations in full.
	cited := dict.CitedIn("A motion under Rule 12 must raise every defense; see also section 1692g.")
	found := map[string]bool{}
	for _, c := range cited {
		found[c] = true
	}
	if !found["FRCP Rule 12"] {
		t.Errorf("shorthand 'Rule 12' did not resolve, got %v", cited)
	}
	if !found["15 U.S.C. 1692g"] {
		t.Errorf("shorthand 'section 1692g' did not resolve, got %v", cited)
	}
}

func TestScanOffsetsAnchorOriginalText(t *testing.T) {
	dict := compileTestDictionary(t)

	text := "See FRCP Rule 12 for defenses."
	matches := dict.Scan(text)
	if len(matches) == 0 {
		t.Fatal("expected a match")
	}

	m := matches[0]
	if m.Start < 0 || m.End > len(text) || m.Start >= m.End {
		t.Fatalf("bad offsets: %d..%d", m.Start, m.End)
	}
	if text[m.Start:m.End] != m.MatchedText {
		t.Errorf("MatchedText %q does not match slice %q", m.MatchedText, text[m.Start:m.End])
	}
}

func TestCitedInDeduplicates(t *testing.T) {
	dict := compileTestDictionary(t)

	cited := dict.CitedIn("Rule 12, again Rule 12, and FRCP Rule 12 once more.")
	count := 0
	for _, c := range cited {
		if c == "FRCP Rule 12" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one deduplicated citation, got %d in %v", count, cited)
	}
}
