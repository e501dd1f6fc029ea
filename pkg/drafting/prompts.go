package drafting

import (
	"strings"
)

// MaxLetterContextLength is the maximum number of characters of case context
// sent to the LLM when drafting a letter.
const MaxLetterContextLength = 8000

// AnalysisSystemPrompt instructs the LLM to return structured JSON only.
const AnalysisSystemPrompt = `You are a document analysis assistant for a consumer legal self-help tool.
Classify the attached document and extract key facts.
Return ONLY a valid JSON object. No markdown, no explanation. Start with { and end with }.`

// LetterSystemPrompt frames letter drafting requests.
const LetterSystemPrompt = `You are a drafting assistant for consumer legal correspondence.
Write formal, factual letters in plain business English.
Do not give legal advice. Do not invent facts not present in the context.`

// BuildAnalysisPrompt constructs the document-analysis prompt. The document
// itself travels as an inline attachment part, so the prompt only describes
// the expected output shape.
func BuildAnalysisPrompt() string {
	var sb strings.Builder
	sb.WriteString("Analyze the attached document. Return a JSON object with these fields:\n\n")
	sb.WriteString("- \"docType\": One of: collection letter, court filing, contract, credit report, correspondence, invoice, other\n")
	sb.WriteString("- \"summary\": 2-3 sentence plain-language summary (string)\n")
	sb.WriteString("- \"keyDates\": Dates and deadlines mentioned, ISO format where possible (string[])\n")
	sb.WriteString("- \"riskFlags\": Potential problems for the recipient, e.g. missed validation window, threatened suit (string[])\n\n")
	sb.WriteString("RULES:\n")
	sb.WriteString("1. Classify conservatively. Use \"other\" when unsure\n")
	sb.WriteString("2. Summarize what the document says, not what the recipient should do\n")
	sb.WriteString("3. Empty arrays are fine when nothing applies\n")
	return sb.String()
}

// BuildLetterPrompt constructs a letter-drafting prompt from a template body
// and free-form case context gathered by the UI.
func BuildLetterPrompt(templateBody, context string) string {
	truncated := context
	if len(truncated) > MaxLetterContextLength {
		truncated = truncated[:MaxLetterContextLength]
	}

	var sb strings.Builder
	sb.WriteString("Draft a letter based on the template below, filling it in from the case context. ")
	sb.WriteString("Keep the template's structure and legal citations. Return only the letter text.\n\n")
	sb.WriteString("TEMPLATE:\n")
	sb.WriteString(templateBody)
	sb.WriteString("\n\nCASE CONTEXT:\n")
	sb.WriteString(truncated)
	return sb.String()
}
