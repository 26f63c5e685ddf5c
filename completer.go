package jobpost

import "context"

// Completer is the single LLM call contract the pipeline depends on.
type Completer interface {
	// Complete sends a prompt to the model and returns the raw text
	// response. The context bounds the call.
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
