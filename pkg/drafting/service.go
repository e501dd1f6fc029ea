// Package drafting provides non-streaming LLM completion plumbing for the
// document analyzer and letter drafter. The prompts and the interpretation
// of generated prose belong to the UI layer; this package owns the request
// transport and the defensive parsing of structured responses.
//
// Supports two providers:
//   - Google GenAI (generativelanguage.googleapis.com)
//   - OpenRouter (openrouter.ai)
//
// All HTTP calls use syscall/js to leverage the browser's fetch API,
// avoiding CORS issues in WASM environment.
package drafting

import (
	"context"
	"errors"
	"fmt"
)

// Provider type for LLM providers.
type Provider string

const (
	ProviderGoogle     Provider = "google"
	ProviderOpenRouter Provider = "openrouter"
)

// Config holds drafting settings passed from the host UI.
type Config struct {
	Provider         Provider `json:"provider"`
	GoogleAPIKey     string   `json:"googleApiKey"`
	GoogleModel      string   `json:"googleModel"`
	OpenRouterAPIKey string   `json:"openRouterApiKey"`
	OpenRouterModel  string   `json:"openRouterModel"`
}

// Attachment is a base64-encoded document or image sent for analysis.
type Attachment struct {
	Base64 string `json:"base64"`
	Mime   string `json:"mimeType"`
}

// Service handles non-streaming drafting completions.
type Service struct {
	config Config
}

// NewService creates a drafting service with config from the host UI.
func NewService(config Config) *Service {
	return &Service{config: config}
}

// UpdateConfig updates the service configuration.
func (s *Service) UpdateConfig(config Config) {
	s.config = config
}

// GetConfig returns the current configuration.
func (s *Service) GetConfig() Config {
	return s.config
}

// IsConfigured checks if the current provider has valid credentials.
func (s *Service) IsConfigured() bool {
	switch s.config.Provider {
	case ProviderGoogle:
		return s.config.GoogleAPIKey != ""
	case ProviderOpenRouter:
		return s.config.OpenRouterAPIKey != ""
	default:
		return false
	}
}

// GetCurrentModel returns the model for the current provider.
func (s *Service) GetCurrentModel() string {
	switch s.config.Provider {
	case ProviderGoogle:
		return s.config.GoogleModel
	case ProviderOpenRouter:
		return s.config.OpenRouterModel
	default:
		return ""
	}
}

// Generate makes a non-streaming completion request.
// Returns the full response text.
func (s *Service) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !s.IsConfigured() {
		return "", errors.New("drafting: provider not configured")
	}

	switch s.config.Provider {
	case ProviderGoogle:
		return s.callGoogle(ctx, userPrompt, systemPrompt)
	case ProviderOpenRouter:
		return s.callOpenRouter(ctx, userPrompt, systemPrompt)
	default:
		return "", errors.New("drafting: unknown provider")
	}
}

// GenerateWithAttachment makes a completion request that includes an inline
// document or image for analysis.
//
// Only Google GenAI supports inline attachments.
func (s *Service) GenerateWithAttachment(ctx context.Context, systemPrompt, userPrompt string, att Attachment) (string, error) {
	if !s.IsConfigured() {
		return "", errors.New("drafting: provider not configured")
	}
	if att.Base64 == "" || att.Mime == "" {
		return "", errors.New("drafting: attachment requires base64 data and a mime type")
	}
	if s.config.Provider != ProviderGoogle {
		return "", errors.New("drafting: attachments only supported via Google")
	}

	return s.callGoogleWithAttachment(ctx, userPrompt, systemPrompt, att)
}

// AnalyzeDocument sends an uploaded file for metadata extraction and parses
// the structured response. This is the path that fills VaultDocumentRecord
// metadata.
func (s *Service) AnalyzeDocument(ctx context.Context, att Attachment) (*DocumentAnalysis, error) {
	raw, err := s.GenerateWithAttachment(ctx, AnalysisSystemPrompt, BuildAnalysisPrompt(), att)
	if err != nil {
		return nil, fmt.Errorf("drafting: analysis call failed: %w", err)
	}

	analysis, err := ParseDocumentAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("drafting: parse failed: %w", err)
	}
	return analysis, nil
}

// DraftLetter fills a letter template from free-form case context. Works on
// either provider since no attachment is involved.
func (s *Service) DraftLetter(ctx context.Context, templateBody, caseContext string) (string, error) {
	return s.Generate(ctx, LetterSystemPrompt, BuildLetterPrompt(templateBody, caseContext))
}
