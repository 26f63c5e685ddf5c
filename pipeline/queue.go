package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mwalto/jobpost/bloom"
)

// Queue defaults.
const (
	DefaultConcurrency  = 4
	DefaultRunTimeout   = 2 * time.Minute
	DefaultExpectedURLs = 100000
	DefaultFPRate       = 0.01
)

// Processor drives one posting to a terminal state.
type Processor interface {
	Process(ctx context.Context, postingID string) error
}

var _ Processor = (*Pipeline)(nil)

// Queue runs pipeline executions as fire-and-forget background work.
// Each run gets its own deadline-bounded context detached from the
// caller: a caller may poll posting status but cannot abort a run.
// Submitted URLs are deduplicated with a Bloom filter, so a false
// positive skips a never-seen URL; that trade is acceptable for
// duplicate job links.
type Queue struct {
	processor Processor
	group     *errgroup.Group
	seen      *bloom.SeenFilter
	timeout   time.Duration
	logger    *slog.Logger
}

// NewQueue returns a queue over the given processor.
func NewQueue(processor Processor, opts ...QueueOption) *Queue {
	q := &Queue{
		processor: processor,
		group:     &errgroup.Group{},
		seen:      bloom.NewSeenFilter(DefaultExpectedURLs, DefaultFPRate),
		timeout:   DefaultRunTimeout,
		logger:    slog.Default(),
	}
	concurrency := DefaultConcurrency
	for _, opt := range opts {
		opt(q, &concurrency)
	}
	q.group.SetLimit(concurrency)
	return q
}

// QueueOption configures a Queue.
type QueueOption func(*Queue, *int)

// WithConcurrency bounds the number of concurrent pipeline runs.
func WithConcurrency(n int) QueueOption {
	return func(_ *Queue, concurrency *int) { *concurrency = n }
}

// WithRunTimeout bounds each pipeline run.
func WithRunTimeout(d time.Duration) QueueOption {
	return func(q *Queue, _ *int) { q.timeout = d }
}

// WithQueueLogger overrides the default logger.
func WithQueueLogger(logger *slog.Logger) QueueOption {
	return func(q *Queue, _ *int) { q.logger = logger }
}

// Enqueue submits a posting for background processing and reports
// whether it was accepted. A URL already submitted in this process is
// skipped. Enqueue blocks only when the concurrency limit is reached.
func (q *Queue) Enqueue(postingID, sourceURL string) bool {
	if sourceURL != "" && q.seen.Seen(sourceURL) {
		q.logger.Debug("skipping duplicate url", "url", sourceURL)
		return false
	}
	q.group.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		defer cancel()
		if err := q.processor.Process(ctx, postingID); err != nil {
			q.logger.Error("pipeline run failed", "posting", postingID, "error", err)
		}
		return nil
	})
	return true
}

// Wait blocks until all enqueued runs have finished.
func (q *Queue) Wait() {
	_ = q.group.Wait()
}
