// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// SeenFilter tracks URLs already enqueued for extraction. False
// positives are possible and acceptable: a duplicate posting URL is
// skipped, never corrupted. Safe for concurrent use.
type SeenFilter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewSeenFilter creates a filter sized for n expected URLs with the
// given false positive rate.
func NewSeenFilter(n uint, fpRate float64) *SeenFilter {
	return &SeenFilter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Seen records a URL and reports whether it was already present.
func (s *SeenFilter) Seen(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestAndAddString(url)
}

// Test reports whether the URL might have been recorded.
func (s *SeenFilter) Test(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of recorded URLs.
func (s *SeenFilter) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
