package pipeline_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mwalto/jobpost/pipeline"
)

type processorFunc func(ctx context.Context, postingID string) error

func (f processorFunc) Process(ctx context.Context, postingID string) error {
	return f(ctx, postingID)
}

func TestQueue(t *testing.T) {
	t.Parallel()

	t.Run("processes enqueued postings in the background", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		processed := map[string]bool{}
		q := pipeline.NewQueue(processorFunc(func(_ context.Context, id string) error {
			mu.Lock()
			defer mu.Unlock()
			processed[id] = true
			return nil
		}), pipeline.WithQueueLogger(slog.New(slog.DiscardHandler)))

		for i := range 10 {
			ok := q.Enqueue(fmt.Sprintf("p%d", i), fmt.Sprintf("https://example.com/jobs/%d", i))
			assert.True(t, ok)
		}
		q.Wait()

		assert.Len(t, processed, 10)
	})

	t.Run("deduplicates by source url", func(t *testing.T) {
		t.Parallel()
		var mu sync.Mutex
		runs := 0
		q := pipeline.NewQueue(processorFunc(func(context.Context, string) error {
			mu.Lock()
			defer mu.Unlock()
			runs++
			return nil
		}), pipeline.WithQueueLogger(slog.New(slog.DiscardHandler)))

		assert.True(t, q.Enqueue("p1", "https://example.com/jobs/1"))
		assert.False(t, q.Enqueue("p2", "https://example.com/jobs/1"))
		q.Wait()

		assert.Equal(t, 1, runs)
	})

	t.Run("runs receive a deadline-bounded context", func(t *testing.T) {
		t.Parallel()
		var hasDeadline bool
		q := pipeline.NewQueue(processorFunc(func(ctx context.Context, _ string) error {
			_, hasDeadline = ctx.Deadline()
			return nil
		}), pipeline.WithQueueLogger(slog.New(slog.DiscardHandler)))

		q.Enqueue("p1", "https://example.com/jobs/1")
		q.Wait()

		assert.True(t, hasDeadline)
	})
}
