package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of jobpost.Notifier.
type Notifier struct {
	PostingChangedFn func(ctx context.Context, posting *jobpost.JobPosting)
}

func (n *Notifier) PostingChanged(ctx context.Context, posting *jobpost.JobPosting) {
	if n.PostingChangedFn != nil {
		n.PostingChangedFn(ctx, posting)
	}
}
