package jobpost

import (
	"context"
	"time"
)

// FetchAttempt is an append-only audit record of one extraction stage
// attempt against one posting. Records are write-once: success, duration,
// note and error are set at attempt completion and never mutated after.
type FetchAttempt struct {
	ID           string    `json:"id"`
	PostingID    string    `json:"postingId"`
	Method       Method    `json:"method"`
	ResponseCode int       `json:"responseCode,omitempty"`
	DurationMS   int64     `json:"durationMs"`
	Success      bool      `json:"success"`
	Error        string    `json:"error,omitempty"`
	Note         string    `json:"note,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the attempt contains invalid fields.
func (a *FetchAttempt) Validate() error {
	if a.PostingID == "" {
		return Errorf(EINVALID, "attempt posting ID required")
	}
	switch a.Method {
	case MethodSchema, MethodHeuristic, MethodLLM, MethodManual:
	default:
		return Errorf(EINVALID, "invalid attempt method %q", a.Method)
	}
	return nil
}

// AttemptService represents the storage boundary for fetch attempts.
type AttemptService interface {
	// AppendFetchAttempt appends an attempt to the posting's audit
	// trail. Returns EINVALID if the attempt fails validation.
	AppendFetchAttempt(ctx context.Context, attempt *FetchAttempt) error

	// FindAttemptsByPosting retrieves all attempts for a posting in
	// creation order.
	FindAttemptsByPosting(ctx context.Context, postingID string) ([]*FetchAttempt, error)
}
