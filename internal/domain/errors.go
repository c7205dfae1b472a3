package domain

import "errors"

// Error kinds. The first four are recoverable by re-asking the user and
// are converted into needs_clarification results at the orchestrator
// boundary; the rest indicate a misconfigured or unreachable backend and
// surface as hard failures so operators can tell bad input from a broken
// service.
var (
	ErrEmptyInput          = errors.New("empty input")
	ErrNoTextExtracted     = errors.New("no text could be extracted from the image")
	ErrMalformedExtraction = errors.New("malformed extraction response")
	ErrAmbiguousInput      = errors.New("input is ambiguous and requires clarification")

	ErrEngineUnavailable = errors.New("acquisition engine unavailable")
	ErrAuth              = errors.New("backend authentication failed")
	ErrTransport         = errors.New("backend transport failure")
)

// Clarifiable reports whether err is recoverable by asking the user for
// better input.
func Clarifiable(err error) bool {
	return errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrNoTextExtracted) ||
		errors.Is(err, ErrMalformedExtraction) ||
		errors.Is(err, ErrAmbiguousInput)
}
