package mock

import (
	"context"

	"github.com/mwalto/jobpost"
)

var _ jobpost.SelectorService = (*SelectorService)(nil)

// SelectorService is a mock implementation of jobpost.SelectorService.
type SelectorService struct {
	FindDomainSelectorFn   func(ctx context.Context, domain string) (*jobpost.DomainSelector, error)
	UpsertDomainSelectorFn func(ctx context.Context, sel *jobpost.DomainSelector) error
	RecordSuccessFn        func(ctx context.Context, domain string, discovered []jobpost.Selector) error
	RecordFailureFn        func(ctx context.Context, domain string) error
}

func (s *SelectorService) FindDomainSelector(ctx context.Context, domain string) (*jobpost.DomainSelector, error) {
	return s.FindDomainSelectorFn(ctx, domain)
}

func (s *SelectorService) UpsertDomainSelector(ctx context.Context, sel *jobpost.DomainSelector) error {
	return s.UpsertDomainSelectorFn(ctx, sel)
}

func (s *SelectorService) RecordSuccess(ctx context.Context, domain string, discovered []jobpost.Selector) error {
	return s.RecordSuccessFn(ctx, domain, discovered)
}

func (s *SelectorService) RecordFailure(ctx context.Context, domain string) error {
	return s.RecordFailureFn(ctx, domain)
}
