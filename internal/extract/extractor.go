package extract

import (
	"context"

	"schedo/internal/confidence"
	"schedo/internal/domain"
	"schedo/internal/port"
)

// Extractor drives the extraction backend and parses its reply into the
// fixed entity shape with a presence-based confidence score.
type Extractor struct {
	backend port.EntityExtractionBackend
}

// NewExtractor creates an Extractor backed by the given completion API.
func NewExtractor(backend port.EntityExtractionBackend) *Extractor {
	return &Extractor{backend: backend}
}

// Extract prompts the backend with rawText and returns the normalized
// entities plus the extraction confidence. Backend errors propagate
// unchanged so the caller can distinguish transport faults from
// malformed replies.
func (e *Extractor) Extract(ctx context.Context, rawText string) (*domain.Entities, float64, error) {
	reply, err := e.backend.Complete(ctx, BuildEntityPrompt(rawText))
	if err != nil {
		return nil, 0, err
	}

	entities, err := ParseResponse(reply)
	if err != nil {
		return nil, 0, err
	}

	score := confidence.Extraction(
		entities.DatePhrase != nil,
		entities.TimePhrase != nil,
		entities.Department != nil,
	)
	return entities, score, nil
}
