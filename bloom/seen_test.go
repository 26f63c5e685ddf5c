package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwalto/jobpost/bloom"
)

func TestSeenFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewSeenFilter(1000, 0.01)

	assert.False(t, f.Seen("https://example.com/jobs/1"))
	assert.True(t, f.Seen("https://example.com/jobs/1"))
	assert.False(t, f.Seen("https://example.com/jobs/2"))
}

func TestSeenFilter_Concurrent(t *testing.T) {
	t.Parallel()

	f := bloom.NewSeenFilter(10000, 0.01)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				f.Seen(fmt.Sprintf("https://example.com/jobs/%d-%d", g, i))
			}
		}()
	}
	wg.Wait()

	assert.True(t, f.Test("https://example.com/jobs/0-0"))
	assert.True(t, f.EstimatedCount() > 700)
}
