//go:build js && wasm
// +build js,wasm

package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"syscall/js"
)

// googleRequest represents the request body for Google GenAI API.
type googleRequest struct {
	Contents          []googleContent         `json:"contents"`
	SystemInstruction *googleContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *googleGenerationConfig `json:"generationConfig,omitempty"`
}

type googleContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []googlePart `json:"parts"`
}

// googlePart is either a text part or an inline_data part. Exactly one of
// Text / InlineData is set.
type googlePart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *googleInlineData `json:"inline_data,omitempty"`
}

type googleInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type googleGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

// googleResponse represents the response from Google GenAI API.
type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// callGoogle makes a non-streaming request to Google GenAI API.
func (s *Service) callGoogle(ctx context.Context, userPrompt, systemPrompt string) (string, error) {
	parts := []googlePart{{Text: userPrompt}}
	return s.googleGenerate(ctx, parts, systemPrompt)
}

// callGoogleWithAttachment sends the prompt together with an inline document
// (PDF, image) for analysis. The attachment part goes first so the model sees
// the document before the instructions.
func (s *Service) callGoogleWithAttachment(ctx context.Context, userPrompt, systemPrompt string, att Attachment) (string, error) {
	parts := []googlePart{
		{InlineData: &googleInlineData{MimeType: att.Mime, Data: att.Base64}},
		{Text: userPrompt},
	}
	return s.googleGenerate(ctx, parts, systemPrompt)
}

func (s *Service) googleGenerate(_ context.Context, parts []googlePart, systemPrompt string) (string, error) {
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		s.config.GoogleModel,
		s.config.GoogleAPIKey,
	)

	req := googleRequest{
		Contents: []googleContent{
			{
				Role:  "user",
				Parts: parts,
			},
		},
		GenerationConfig: &googleGenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 8192,
		},
	}

	if systemPrompt != "" {
		req.SystemInstruction = &googleContent{
			Parts: []googlePart{{Text: systemPrompt}},
		}
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("drafting: failed to marshal Google request: %w", err)
	}

	response, err := s.jsFetch(url, string(reqBody))
	if err != nil {
		return "", fmt.Errorf("drafting: Google API request failed: %w", err)
	}

	var resp googleResponse
	if err := json.Unmarshal([]byte(response), &resp); err != nil {
		return "", fmt.Errorf("drafting: failed to parse Google response: %w", err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("drafting: Google API error %d: %s", resp.Error.Code, resp.Error.Message)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("drafting: empty response from Google")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// jsFetch performs a fetch request using the browser's fetch API.
func (s *Service) jsFetch(url, body string) (string, error) {
	fetch := js.Global().Get("fetch")
	if fetch.IsUndefined() {
		return "", fmt.Errorf("drafting: fetch not available")
	}

	headers := js.Global().Get("Object").New()
	headers.Set("Content-Type", "application/json")

	options := js.Global().Get("Object").New()
	options.Set("method", "POST")
	options.Set("headers", headers)
	options.Set("body", body)

	promise := fetch.Invoke(url, options)

	// Wait for the response on a channel; fetch resolves on the JS event loop.
	resultCh := make(chan struct {
		response string
		err      error
	})

	then := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		response := args[0]

		textPromise := response.Call("text")

		textThen := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			text := args[0].String()
			resultCh <- struct {
				response string
				err      error
			}{response: text, err: nil}
			return nil
		})
		defer textThen.Release()

		textPromise.Call("then", textThen)
		return nil
	})
	defer then.Release()

	catch := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		errMsg := args[0].Get("message").String()
		resultCh <- struct {
			response string
			err      error
		}{response: "", err: fmt.Errorf("%s", errMsg)}
		return nil
	})
	defer catch.Release()

	promise.Call("then", then).Call("catch", catch)

	result := <-resultCh
	return result.response, result.err
}
