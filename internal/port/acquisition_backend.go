package port

import "context"

// TextFragment is one piece of text recovered from an image. Confidence
// is the engine's own per-fragment score in [0,1] when the engine
// reports one, nil otherwise.
type TextFragment struct {
	Text       string
	Confidence *float64
}

// OCRResult is the raw output of a text acquisition engine.
type OCRResult struct {
	Fragments []TextFragment
}

// TextAcquisitionBackend abstracts the OCR/vision engine that turns
// image bytes into text fragments.
type TextAcquisitionBackend interface {
	ExtractText(ctx context.Context, image []byte) (*OCRResult, error)
}
