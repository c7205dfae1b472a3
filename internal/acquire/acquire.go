// Package acquire implements the text acquisition stage: it normalizes
// direct text and OCR output into a uniform (text, confidence) pair,
// independent of which engine produced it.
package acquire

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"schedo/internal/confidence"
	"schedo/internal/domain"
	"schedo/internal/port"
)

// defaultEngineConfidence is assumed when the engine reports no
// per-fragment confidence of its own.
const defaultEngineConfidence = 0.7

var whitespaceRe = regexp.MustCompile(`\s+`)

// Service acquires text from raw request input.
type Service struct {
	backend port.TextAcquisitionBackend
}

// NewService creates an acquisition Service backed by the given engine.
func NewService(backend port.TextAcquisitionBackend) *Service {
	return &Service{backend: backend}
}

// Acquire dispatches on the input kind.
func (s *Service) Acquire(ctx context.Context, input domain.RawInput) (*domain.AcquiredText, error) {
	switch input.Kind {
	case domain.InputImage:
		return s.FromImage(ctx, input.Content)
	default:
		return s.FromText(input.Content)
	}
}

// FromText processes direct text input: whitespace-collapses it and
// scores it. Empty or all-whitespace input fails with ErrEmptyInput.
func (s *Service) FromText(text string) (*domain.AcquiredText, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text content is empty", domain.ErrEmptyInput)
	}
	clean := CollapseWhitespace(text)
	return &domain.AcquiredText{
		Text:       clean,
		Confidence: confidence.Acquisition(clean, nil),
	}, nil
}

// FromImage decodes a base64 image payload, delegates to the OCR engine,
// joins the returned fragments, and scores the result. Per-fragment
// engine confidences are averaged; an engine that reports none gets the
// 0.7 convention.
func (s *Service) FromImage(ctx context.Context, content string) (*domain.AcquiredText, error) {
	image, err := DecodeImagePayload(content)
	if err != nil {
		return nil, err
	}

	result, err := s.backend.ExtractText(ctx, image)
	if err != nil {
		return nil, err
	}

	var texts []string
	var confidences []float64
	for _, frag := range result.Fragments {
		text := strings.TrimSpace(frag.Text)
		if text == "" {
			continue
		}
		texts = append(texts, text)
		if frag.Confidence != nil {
			confidences = append(confidences, *frag.Confidence)
		}
	}

	if len(texts) == 0 {
		return nil, domain.ErrNoTextExtracted
	}

	engine := defaultEngineConfidence
	if len(confidences) > 0 {
		sum := 0.0
		for _, c := range confidences {
			sum += c
		}
		engine = sum / float64(len(confidences))
	}

	clean := CollapseWhitespace(strings.Join(texts, " "))
	return &domain.AcquiredText{
		Text:       clean,
		Confidence: confidence.Acquisition(clean, &engine),
	}, nil
}

// CollapseWhitespace replaces every run of whitespace with a single
// space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// DecodeImagePayload decodes a base64 image string, tolerating a
// data-URI prefix.
func DecodeImagePayload(content string) ([]byte, error) {
	if idx := strings.Index(content, ","); idx >= 0 && strings.HasPrefix(content, "data:") {
		content = content[idx+1:]
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: image content is empty", domain.ErrEmptyInput)
	}
	image, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, fmt.Errorf("%w: image content is not valid base64: %v", domain.ErrEmptyInput, err)
	}
	return image, nil
}
