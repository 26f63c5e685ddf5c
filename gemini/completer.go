// Package gemini implements jobpost.Completer using Google Gemini.
package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/mwalto/jobpost"
)

const model = "gemini-2.5-flash"

// Ensure Completer implements jobpost.Completer at compile time.
var _ jobpost.Completer = (*Completer)(nil)

// Completer implements jobpost.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
}

// NewCompleter creates a new Completer.
func NewCompleter(client *genai.Client) *Completer {
	return &Completer{client: client}
}

// Complete sends a prompt to the model and returns the raw text response.
func (c *Completer) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if prompt == "" {
		return "", jobpost.Errorf(jobpost.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		buildConfig(maxTokens, temperature),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", jobpost.Errorf(jobpost.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

func buildConfig(maxTokens int, temperature float64) *genai.GenerateContentConfig {
	temp := float32(temperature)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = int32(maxTokens)
	}
	return config
}
