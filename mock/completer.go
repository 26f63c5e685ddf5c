package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.Completer = (*Completer)(nil)

// Completer is a mock implementation of jobpost.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	return c.CompleteFn(ctx, prompt, maxTokens, temperature)
}
