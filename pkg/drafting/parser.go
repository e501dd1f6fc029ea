package drafting

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DocumentAnalysis is the structured metadata extracted from an uploaded
// file. Fields map directly onto VaultDocumentRecord columns in the cache.
type DocumentAnalysis struct {
	DocType   string   `json:"docType"`
	Summary   string   `json:"summary"`
	KeyDates  []string `json:"keyDates"`
	RiskFlags []string `json:"riskFlags"`
}

// validDocTypes is the closed set the analysis prompt asks for. Anything
// else degrades to "other" rather than failing the upload.
var validDocTypes = map[string]bool{
	"collection letter": true,
	"court filing":      true,
	"contract":          true,
	"credit report":     true,
	"correspondence":    true,
	"invoice":           true,
	"other":             true,
}

// ParseDocumentAnalysis parses the raw LLM response into a DocumentAnalysis.
// Handles markdown code fences and stray prose around the JSON object.
func ParseDocumentAnalysis(raw string) (*DocumentAnalysis, error) {
	cleaned := stripCodeFence(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil, fmt.Errorf("drafting: empty analysis response")
	}

	// Models sometimes wrap the object in explanation text. Locate the
	// outermost braces and parse just that span.
	obj := extractJSONObject(cleaned)
	if obj == "" {
		return nil, fmt.Errorf("drafting: no JSON object in analysis response")
	}

	var analysis DocumentAnalysis
	if err := json.Unmarshal([]byte(obj), &analysis); err != nil {
		return nil, fmt.Errorf("drafting: malformed analysis JSON: %w", err)
	}

	return filterAnalysis(&analysis), nil
}

// stripCodeFence removes markdown code block wrappers (```json ... ```).
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	// Remove first line (```json or ```)
	if len(lines) > 0 {
		lines = lines[1:]
	}
	// Remove last line if it's a closing fence
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// extractJSONObject returns the span from the first '{' to its matching
// closing brace, or "" when no balanced object exists. Braces inside string
// literals are skipped.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// filterAnalysis validates and cleans the parsed fields.
func filterAnalysis(a *DocumentAnalysis) *DocumentAnalysis {
	out := &DocumentAnalysis{
		DocType: strings.ToLower(strings.TrimSpace(a.DocType)),
		Summary: strings.TrimSpace(a.Summary),
	}

	if !validDocTypes[out.DocType] {
		out.DocType = "other"
	}

	for _, d := range a.KeyDates {
		d = strings.TrimSpace(d)
		if d != "" {
			out.KeyDates = append(out.KeyDates, d)
		}
	}
	for _, f := range a.RiskFlags {
		f = strings.TrimSpace(f)
		if f != "" {
			out.RiskFlags = append(out.RiskFlags, f)
		}
	}

	return out
}
