package port

import "context"

// EntityExtractionBackend abstracts the LLM completion API used for
// entity extraction. Complete sends a prompt and returns the model's
// raw reply text.
type EntityExtractionBackend interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
