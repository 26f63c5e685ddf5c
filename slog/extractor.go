package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mwalto/jobpost"
)

// Ensure LoggingExtractor implements jobpost.Extractor.
var _ jobpost.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging.
type LoggingExtractor struct {
	next   jobpost.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next jobpost.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}

// Extract delegates to the wrapped extractor and logs the stage outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, input jobpost.ExtractInput) (*jobpost.Result, error) {
	begin := time.Now()
	result, err := e.next.Extract(ctx, input)
	if err != nil {
		e.logger.Info("extract",
			"extractor", e.next.Name(),
			"url", input.URL,
			"duration", time.Since(begin),
			"err", err.Error(),
		)
		return nil, err
	}
	if result == nil {
		e.logger.Info("extract",
			"extractor", e.next.Name(),
			"url", input.URL,
			"duration", time.Since(begin),
			"found", false,
		)
		return nil, nil
	}
	e.logger.Info("extract",
		"extractor", e.next.Name(),
		"url", input.URL,
		"duration", time.Since(begin),
		"found", true,
		"confidence", result.Confidence,
	)
	return result, nil
}
