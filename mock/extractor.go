package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of jobpost.Extractor.
type Extractor struct {
	ExtractorName string
	ExtractFn     func(ctx context.Context, input jobpost.ExtractInput) (*jobpost.Result, error)
}

func (e *Extractor) Name() string {
	if e.ExtractorName == "" {
		return "mock"
	}
	return e.ExtractorName
}

func (e *Extractor) Extract(ctx context.Context, input jobpost.ExtractInput) (*jobpost.Result, error) {
	return e.ExtractFn(ctx, input)
}
