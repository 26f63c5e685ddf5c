package jobpost

import "context"

// Notifier publishes posting status changes to external collaborators.
// The core only emits events; delivery (webhooks, SSE) is out of scope.
type Notifier interface {
	// PostingChanged is called after each persisted status transition.
	PostingChanged(ctx context.Context, posting *JobPosting)
}

// Converter converts HTML fragments to plain newline/bullet text.
// Used to normalize description markup from structured data.
type Converter interface {
	// Convert transforms HTML content into plain text, turning block and
	// list elements into newlines and bullets and decoding entities.
	Convert(html string) (string, error)
}
