// Package cache provides flat keyed collections for user-owned local data.
// Unlike the versioned corpus store this layer is advisory: every collection
// is a JSON payload in a simple key-value table, and storage failures degrade
// to empty reads instead of surfacing to the UI.
package cache

// ProfileRecord holds user-entered identity data.
type ProfileRecord struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// CreditorRecord is one entry in the creditor book.
type CreditorRecord struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address,omitempty"`
	AccountNumber string  `json:"accountNumber,omitempty"`
	AmountClaimed float64 `json:"amountClaimed,omitempty"`
	Status        string  `json:"status,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// VaultDocumentRecord is an uploaded file plus AI-extracted metadata.
type VaultDocumentRecord struct {
	ID           string   `json:"id"`
	FileName     string   `json:"fileName"`
	MimeType     string   `json:"mimeType"`
	DataBase64   string   `json:"dataBase64,omitempty"`
	DocType      string   `json:"docType,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	KeyDates     []string `json:"keyDates,omitempty"`
	Citations    []string `json:"citations,omitempty"` // detected by the citation scanner
	DateUploaded int64    `json:"dateUploaded"`        // unix millis
}

// RemedyProcessRecord tracks one multi-step remedy workflow.
type RemedyProcessRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CreditorID string `json:"creditorId,omitempty"`
	Stage      string `json:"stage,omitempty"`
	StartDate  int64  `json:"startDate"` // unix millis
	Notes      string `json:"notes,omitempty"`
}

// InvoiceRecord is one generated invoice.
type InvoiceRecord struct {
	ID            string  `json:"id"`
	Number        string  `json:"number"`
	RecipientName string  `json:"recipientName,omitempty"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status,omitempty"`
	DateCreated   int64   `json:"dateCreated"` // unix millis
}

// TemplateRecord is a letter template. Built-in defaults ship with the app
// and are never deletable; only IsCustom entries live in storage.
type TemplateRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Body     string `json:"body"`
	IsCustom bool   `json:"isCustom"`
}

// ScriptRecord is a call/negotiation script, same lifecycle as templates.
type ScriptRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Scenario string `json:"scenario,omitempty"`
	Body     string `json:"body"`
	IsCustom bool   `json:"isCustom"`
}

// UserRecord is the persisted current-user slot read at process start.
type UserRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (r ProfileRecord) RecordID() string       { return r.ID }
func (r CreditorRecord) RecordID() string      { return r.ID }
func (r VaultDocumentRecord) RecordID() string { return r.ID }
func (r RemedyProcessRecord) RecordID() string { return r.ID }
func (r InvoiceRecord) RecordID() string       { return r.ID }
func (r TemplateRecord) RecordID() string      { return r.ID }
func (r ScriptRecord) RecordID() string        { return r.ID }
