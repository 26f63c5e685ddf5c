package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of jobpost.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*jobpost.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*jobpost.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
