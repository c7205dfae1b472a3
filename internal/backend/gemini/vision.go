package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"schedo/internal/config"
	"schedo/internal/domain"
	"schedo/internal/port"
)

// transcriptionPrompt asks for a verbatim transcription with no
// commentary so the reply can be used as OCR output directly.
const transcriptionPrompt = `Transcribe ALL text visible in this image exactly as written.
Return only the transcribed text, one line per line of text in the image.
Do not add any explanation, commentary, or formatting.
If the image contains no readable text, return an empty reply.`

// Vision implements port.TextAcquisitionBackend using Gemini's
// multimodal API. The engine reports no per-fragment confidence, so
// fragments carry none and the acquisition stage applies its convention.
type Vision struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewVision creates a Gemini-based acquisition backend.
func NewVision(cfg *config.BackendConfig) *Vision {
	return newVision(cfg, "")
}

// NewVisionWithEndpoint creates a backend pointing at a custom API
// endpoint (for testing).
func NewVisionWithEndpoint(cfg *config.BackendConfig, endpoint string) *Vision {
	return newVision(cfg, endpoint)
}

func newVision(cfg *config.BackendConfig, endpoint string) *Vision {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	return &Vision{
		apiKey:   cfg.APIKey,
		model:    model,
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (v *Vision) ExtractText(ctx context.Context, image []byte) (*port.OCRResult, error) {
	if v.apiKey == "" {
		return nil, fmt.Errorf("%w: gemini API key is not configured", domain.ErrEngineUnavailable)
	}

	mimeType := http.DetectContentType(image)
	switch mimeType {
	case "image/png", "image/jpeg", "image/webp", "image/gif":
	default:
		return nil, fmt.Errorf("%w: unsupported image type %s", domain.ErrNoTextExtracted, mimeType)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{InlineData: &geminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
					{Text: transcriptionPrompt},
				},
			},
		},
		GenerationConfig: map[string]any{
			"temperature":     0.0,
			"maxOutputTokens": 2048,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", v.apiKey)

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling gemini vision API: %v", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusToErr(resp.StatusCode, respBody)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: unmarshaling response: %v", domain.ErrTransport, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, domain.ErrNoTextExtracted
	}

	var fragments []port.TextFragment
	for _, line := range strings.Split(parsed.Candidates[0].Content.Parts[0].Text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fragments = append(fragments, port.TextFragment{Text: line})
	}
	if len(fragments) == 0 {
		return nil, domain.ErrNoTextExtracted
	}

	return &port.OCRResult{Fragments: fragments}, nil
}
