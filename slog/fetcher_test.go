package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/mock"
	jobslog "github.com/mwalto/jobpost/slog"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*jobpost.FetchResult, error) {
				return &jobpost.FetchResult{HTML: "<html>content</html>", StatusCode: 200}, nil
			},
		}

		fetcher := jobslog.NewLoggingFetcher(inner, logger)
		result, err := fetcher.Fetch(context.Background(), "https://example.com/jobs/1")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", result.HTML)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/jobs/1")
		assert.Contains(t, output, "status=200")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*jobpost.FetchResult, error) {
				return nil, jobpost.Errorf(jobpost.EUNAVAILABLE, "network error")
			},
		}

		fetcher := jobslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/jobs/1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "network error")
	})

	t.Run("close delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := jobslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler))
		require.NoError(t, fetcher.Close())
		assert.True(t, closeCalled)
	})
}

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs found result with confidence", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractorName: "schema",
			ExtractFn: func(context.Context, jobpost.ExtractInput) (*jobpost.Result, error) {
				return &jobpost.Result{Title: "Backend Engineer", Confidence: 0.8}, nil
			},
		}

		ex := jobslog.NewLoggingExtractor(inner, logger)
		result, err := ex.Extract(context.Background(), jobpost.ExtractInput{URL: "https://example.com/jobs/1"})

		require.NoError(t, err)
		require.NotNil(t, result)
		output := buf.String()
		assert.Contains(t, output, "extractor=schema")
		assert.Contains(t, output, "found=true")
		assert.Contains(t, output, "confidence=0.8")
	})

	t.Run("logs misses", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractorName: "heuristic",
			ExtractFn: func(context.Context, jobpost.ExtractInput) (*jobpost.Result, error) {
				return nil, nil
			},
		}

		ex := jobslog.NewLoggingExtractor(inner, logger)
		result, err := ex.Extract(context.Background(), jobpost.ExtractInput{URL: "https://example.com/jobs/1"})

		require.NoError(t, err)
		assert.Nil(t, result)
		assert.Contains(t, buf.String(), "found=false")
	})
}

func TestNotifier_PostingChanged(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := jobslog.NewNotifier(logger)

	n.PostingChanged(context.Background(), &jobpost.JobPosting{
		ID:     "p1",
		Status: jobpost.StatusComplete,
		Provenance: &jobpost.Provenance{
			Method: jobpost.MethodSchema,
		},
	})

	output := buf.String()
	assert.Contains(t, output, "posting status changed")
	assert.Contains(t, output, "posting=p1")
	assert.Contains(t, output, "status=complete")
	assert.Contains(t, output, "method=schema")
}
