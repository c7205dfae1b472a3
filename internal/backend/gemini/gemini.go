// Package gemini implements both collaborator contracts against Google's
// Gemini REST API: a vision backend for text acquisition and a
// completion client for entity extraction.
package gemini

import (
	"fmt"
	"net/http"

	"schedo/internal/domain"
)

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// geminiResponse models the generateContent response.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig map[string]any  `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// statusToErr maps a non-200 API status to an error kind so operators
// can distinguish a misconfigured key from a flaky upstream.
func statusToErr(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: gemini API status %d: %s", domain.ErrAuth, status, truncate(string(body), 200))
	case status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("%w: gemini API status %d: %s", domain.ErrTransport, status, truncate(string(body), 200))
	default:
		return fmt.Errorf("gemini API error (status %d): %s", status, truncate(string(body), 200))
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
