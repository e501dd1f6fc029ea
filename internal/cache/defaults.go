package cache

// Built-in template and script ids. Stable across releases so user data
// referencing them never dangles.
const (
	TemplateDebtValidation = "tpl-debt-validation"
	TemplateCeaseDesist    = "tpl-cease-desist"
	TemplateRecordsRequest = "tpl-records-request"

	ScriptCollectorCall = "scr-collector-call"
	ScriptCourtClerk    = "scr-court-clerk"
)

// DefaultTemplates returns the built-in letter templates. These are always
// present in Templates.List output and are not deletable.
func DefaultTemplates() []TemplateRecord {
	return []TemplateRecord{
		{
			ID:       TemplateDebtValidation,
			Name:     "Debt Validation Demand",
			Category: "creditor",
			Body: "To whom it may concern,\n\n" +
				"Pursuant to 15 U.S.C. 1692g, I dispute the alleged debt referenced " +
				"above and demand validation. Provide the original signed agreement, " +
				"a complete accounting of the amount claimed, and proof of your " +
				"authority to collect.\n\nUntil validation is provided, cease all " +
				"collection activity.\n\nSincerely,\n{{fullName}}",
			IsCustom: false,
		},
		{
			ID:       TemplateCeaseDesist,
			Name:     "Cease and Desist",
			Category: "creditor",
			Body: "To whom it may concern,\n\n" +
				"Pursuant to 15 U.S.C. 1692c(c), you are hereby notified to cease " +
				"all communication with me regarding the account referenced above, " +
				"except as permitted by statute.\n\nSincerely,\n{{fullName}}",
			IsCustom: false,
		},
		{
			ID:       TemplateRecordsRequest,
			Name:     "Records Request",
			Category: "agency",
			Body: "To the records custodian,\n\n" +
				"Under the applicable public records statute, I request copies of " +
				"all records pertaining to {{subject}}. Please respond within the " +
				"statutory period.\n\nSincerely,\n{{fullName}}",
			IsCustom: false,
		},
	}
}

// DefaultScripts returns the built-in call scripts, same lifecycle as
// DefaultTemplates.
func DefaultScripts() []ScriptRecord {
	return []ScriptRecord{
		{
			ID:       ScriptCollectorCall,
			Name:     "Collector Call",
			Scenario: "inbound collection call",
			Body: "1. Ask for the caller's name, company, and mailing address.\n" +
				"2. State that you do not discuss alleged debts by phone.\n" +
				"3. Request everything in writing and end the call.",
			IsCustom: false,
		},
		{
			ID:       ScriptCourtClerk,
			Name:     "Court Clerk Inquiry",
			Scenario: "case status call",
			Body: "1. Provide the case number and party names.\n" +
				"2. Ask for pending deadlines and the next hearing date.\n" +
				"3. Ask how to obtain certified copies of filings.",
			IsCustom: false,
		},
	}
}
