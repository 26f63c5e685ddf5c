// Package slog provides logging decorators for jobpost interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalto/jobpost"
)

// Ensure LoggingFetcher implements jobpost.Fetcher.
var _ jobpost.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging.
type LoggingFetcher struct {
	next   jobpost.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next jobpost.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs outcome, size and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*jobpost.FetchResult, error) {
	begin := time.Now()
	result, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Info("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return nil, err
	}
	f.logger.Info("fetch",
		"url", url,
		"status", result.StatusCode,
		"rendered", result.Rendered,
		"bytes", len(result.HTML),
		"duration", time.Since(begin),
	)
	return result, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
