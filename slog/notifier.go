package slog

import (
	"context"
	"log/slog"

	"github.com/mwalto/jobpost"
)

// Ensure Notifier implements jobpost.Notifier.
var _ jobpost.Notifier = (*Notifier)(nil)

// Notifier implements jobpost.Notifier by logging status changes.
// It stands in for a delivery transport; consumers poll posting status.
type Notifier struct {
	logger *slog.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger}
}

// PostingChanged logs the posting's new status.
func (n *Notifier) PostingChanged(_ context.Context, posting *jobpost.JobPosting) {
	attrs := []any{
		"posting", posting.ID,
		"status", posting.Status,
	}
	if posting.Provenance != nil {
		attrs = append(attrs, "method", posting.Provenance.Method)
	}
	n.logger.Info("posting status changed", attrs...)
}
