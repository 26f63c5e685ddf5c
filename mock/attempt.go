package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.AttemptService = (*AttemptService)(nil)

// AttemptService is a mock implementation of jobpost.AttemptService.
type AttemptService struct {
	AppendFetchAttemptFn    func(ctx context.Context, attempt *jobpost.FetchAttempt) error
	FindAttemptsByPostingFn func(ctx context.Context, postingID string) ([]*jobpost.FetchAttempt, error)
}

func (s *AttemptService) AppendFetchAttempt(ctx context.Context, attempt *jobpost.FetchAttempt) error {
	return s.AppendFetchAttemptFn(ctx, attempt)
}

func (s *AttemptService) FindAttemptsByPosting(ctx context.Context, postingID string) ([]*jobpost.FetchAttempt, error) {
	return s.FindAttemptsByPostingFn(ctx, postingID)
}
