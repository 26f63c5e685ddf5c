package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.PostingService = (*PostingService)(nil)

// PostingService is a mock implementation of jobpost.PostingService.
type PostingService struct {
	CreatePostingFn   func(ctx context.Context, posting *jobpost.JobPosting) error
	FindPostingByIDFn func(ctx context.Context, id string) (*jobpost.JobPosting, error)
	SavePostingFn     func(ctx context.Context, posting *jobpost.JobPosting) error
	FindPostingsFn    func(ctx context.Context, filter jobpost.PostingFilter) ([]*jobpost.JobPosting, error)
}

func (s *PostingService) CreatePosting(ctx context.Context, posting *jobpost.JobPosting) error {
	return s.CreatePostingFn(ctx, posting)
}

func (s *PostingService) FindPostingByID(ctx context.Context, id string) (*jobpost.JobPosting, error) {
	return s.FindPostingByIDFn(ctx, id)
}

func (s *PostingService) SavePosting(ctx context.Context, posting *jobpost.JobPosting) error {
	return s.SavePostingFn(ctx, posting)
}

func (s *PostingService) FindPostings(ctx context.Context, filter jobpost.PostingFilter) ([]*jobpost.JobPosting, error) {
	return s.FindPostingsFn(ctx, filter)
}
