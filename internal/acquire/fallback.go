package acquire

import (
	"context"
	"errors"
	"fmt"
	"log"

	"schedo/internal/domain"
	"schedo/internal/port"
)

// FallbackBackend tries acquisition engines in order; the first success
// wins. It is assembled only in the composition root so the acquisition
// contract itself stays backend-agnostic.
type FallbackBackend struct {
	backends []port.TextAcquisitionBackend
	names    []string
}

// NewFallbackBackend creates a FallbackBackend from an ordered list of
// backends and their names.
func NewFallbackBackend(backends []port.TextAcquisitionBackend, names []string) *FallbackBackend {
	return &FallbackBackend{backends: backends, names: names}
}

func (f *FallbackBackend) ExtractText(ctx context.Context, image []byte) (*port.OCRResult, error) {
	if len(f.backends) == 0 {
		return nil, fmt.Errorf("%w: no acquisition backend configured", domain.ErrEngineUnavailable)
	}

	var lastErr error
	for i, b := range f.backends {
		out, err := b.ExtractText(ctx, image)
		if err == nil {
			return out, nil
		}
		log.Printf("acquire.FallbackBackend: %s failed: %v", f.names[i], err)
		lastErr = err
	}

	// A recoverable failure from the last engine keeps its kind so the
	// orchestrator can still convert it into a clarification.
	if domain.Clarifiable(lastErr) || errors.Is(lastErr, domain.ErrEngineUnavailable) {
		return nil, lastErr
	}
	return nil, fmt.Errorf("all acquisition backends failed: %w", lastErr)
}

// Unavailable is the explicit no-engine variant, selected by the
// composition root when no OCR backend is configured.
type Unavailable struct {
	Reason string
}

func (u Unavailable) ExtractText(ctx context.Context, image []byte) (*port.OCRResult, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrEngineUnavailable, u.Reason)
}
