// Package pipeline orchestrates job-posting extraction: it drives a
// posting through the fetch and extraction stages, records one audit
// attempt per stage, and persists the terminal state.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mwalto/jobpost"
)

// Validation bounds for an extraction result to complete a posting.
const (
	minTitleLen       = 3
	minDescriptionLen = 50
)

// persistTimeout bounds audit and terminal-state writes, which run on a
// context detached from the caller's.
const persistTimeout = 10 * time.Second

// Pipeline runs the staged extraction state machine. Stages execute
// strictly sequentially; each is a fallback for the previous one, and
// the first valid result short-circuits the rest.
type Pipeline struct {
	fetcher    jobpost.Fetcher
	extractors []jobpost.Extractor
	postings   jobpost.PostingService
	attempts   jobpost.AttemptService
	selectors  jobpost.SelectorService
	notifier   jobpost.Notifier
	logger     *slog.Logger
	now        func() time.Time
}

// New returns a pipeline over the given extractor priority list.
// Extractors run in slice order; leaving one out disables its stage.
func New(fetcher jobpost.Fetcher, extractors []jobpost.Extractor, postings jobpost.PostingService, attempts jobpost.AttemptService, selectors jobpost.SelectorService, opts ...Option) *Pipeline {
	p := &Pipeline{
		fetcher:    fetcher,
		extractors: extractors,
		postings:   postings,
		attempts:   attempts,
		selectors:  selectors,
		logger:     slog.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNotifier installs a status-change notifier.
func WithNotifier(n jobpost.Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// Process drives one posting through the pipeline to a terminal state.
// Complete and manual postings are left untouched; a posting already in
// fetching returns ECONFLICT. Nothing here is fatal: fetch and stage
// failures degrade to recorded attempts and a failed status.
func (p *Pipeline) Process(ctx context.Context, postingID string) error {
	posting, err := p.postings.FindPostingByID(ctx, postingID)
	if err != nil {
		return err
	}

	switch posting.Status {
	case jobpost.StatusComplete, jobpost.StatusManual:
		return nil
	case jobpost.StatusFetching:
		return jobpost.Errorf(jobpost.ECONFLICT, "posting %s is already being processed", postingID)
	}

	posting.Status = jobpost.StatusFetching
	if err := p.postings.SavePosting(ctx, posting); err != nil {
		return err
	}
	p.notify(ctx, posting)

	input, fetchErr := p.fetch(ctx, posting)

	var failures []string
	if fetchErr != nil {
		failures = append(failures, fmt.Sprintf("fetch: %v", fetchErr))
	}

	lastMethod := jobpost.MethodSchema
	for _, extractor := range p.extractors {
		method := jobpost.Method(extractor.Name())
		lastMethod = method

		start := time.Now()
		result, stageErr := p.runStage(ctx, extractor, input)
		duration := time.Since(start)
		valid := stageErr == nil && validResult(result)
		p.recordAttempt(ctx, posting, method, input.StatusCode, duration, stageErr, valid, fetchErr)

		if stageErr != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", method, stageErr))
			continue
		}
		if !valid {
			failures = append(failures, fmt.Sprintf("%s: no valid result", method))
			continue
		}
		return p.complete(ctx, posting, result)
	}

	return p.fail(ctx, posting, lastMethod, failures)
}

// stageInput is the extraction input plus fetch metadata for the audit
// trail.
type stageInput struct {
	jobpost.ExtractInput
	StatusCode int
}

// fetch retrieves the posting's page and seeds the extraction input
// with any cached domain selectors. A fetch failure is returned but the
// pipeline still runs every stage against empty input so that each
// stage's attempt row is written.
func (p *Pipeline) fetch(ctx context.Context, posting *jobpost.JobPosting) (stageInput, error) {
	input := stageInput{ExtractInput: jobpost.ExtractInput{URL: posting.SourceURL}}

	if ds, err := p.selectors.FindDomainSelector(ctx, posting.Domain); err == nil {
		input.Selectors = ds.Selectors
	} else if jobpost.ErrorCode(err) != jobpost.ENOTFOUND {
		p.logger.Warn("selector cache lookup failed", "domain", posting.Domain, "error", err)
	}

	result, err := p.fetcher.Fetch(ctx, posting.SourceURL)
	if err != nil {
		return input, err
	}
	input.HTML = result.HTML
	input.Rendered = result.Rendered
	input.StatusCode = result.StatusCode
	posting.RawSnapshot = result.HTML
	return input, nil
}

// runStage executes one extractor with panic containment. A panicking
// stage is recorded as a failed attempt, never crashes the pipeline.
func (p *Pipeline) runStage(ctx context.Context, extractor jobpost.Extractor, input stageInput) (result *jobpost.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = jobpost.Errorf(jobpost.EINTERNAL, "%s stage panic: %v", extractor.Name(), r)
			p.logger.Error("extraction stage panicked", "extractor", extractor.Name(), "panic", r)
		}
	}()
	start := p.now()
	result, err = extractor.Extract(ctx, input.ExtractInput)
	p.logger.Debug("extraction stage finished",
		"extractor", extractor.Name(),
		"duration", time.Since(start),
		"found", err == nil && result != nil)
	return result, err
}

// recordAttempt writes the stage's audit row. Attempt writes are
// best-effort: a storage error here must not abort the pipeline.
func (p *Pipeline) recordAttempt(ctx context.Context, posting *jobpost.JobPosting, method jobpost.Method, statusCode int, duration time.Duration, stageErr error, success bool, fetchErr error) {
	attempt := &jobpost.FetchAttempt{
		PostingID:    posting.ID,
		Method:       method,
		ResponseCode: statusCode,
		DurationMS:   duration.Milliseconds(),
		Success:      success,
	}
	switch {
	case stageErr != nil:
		attempt.Error = stageErr.Error()
	case fetchErr != nil && !success:
		attempt.Error = fmt.Sprintf("fetch failed: %v", fetchErr)
	}
	switch {
	case success:
		attempt.Note = fmt.Sprintf("%s extraction succeeded", method)
	case fetchErr != nil:
		attempt.Note = fmt.Sprintf("%s extraction skipped page content: fetch failed", method)
	default:
		attempt.Note = fmt.Sprintf("%s extraction found no valid posting", method)
	}
	wctx, cancel := persistCtx(ctx)
	defer cancel()
	if err := p.attempts.AppendFetchAttempt(wctx, attempt); err != nil {
		p.logger.Error("append fetch attempt failed", "posting", posting.ID, "method", method, "error", err)
	}
}

// complete persists a successful extraction and updates the domain
// selector cache: heuristic successes bump the success counter, llm
// successes additionally promote the discovered selectors.
func (p *Pipeline) complete(ctx context.Context, posting *jobpost.JobPosting, result *jobpost.Result) error {
	posting.Title = result.Title
	posting.Company = result.Company
	posting.Description = result.Description
	posting.Status = jobpost.StatusComplete
	posting.Provenance = &jobpost.Provenance{
		Method:     result.Method,
		Extractor:  result.Extractor,
		Confidence: result.Confidence,
		Excerpt:    result.Excerpt,
		Selectors:  result.Selectors,
		At:         p.now(),
	}
	wctx, cancel := persistCtx(ctx)
	defer cancel()
	if err := p.postings.SavePosting(wctx, posting); err != nil {
		return err
	}
	p.notify(wctx, posting)

	if posting.Domain != "" {
		switch result.Method {
		case jobpost.MethodHeuristic:
			p.recordOutcome(wctx, posting.Domain, nil)
		case jobpost.MethodLLM:
			p.recordOutcome(wctx, posting.Domain, result.Selectors)
		}
	}
	return nil
}

// fail drives the posting to failed with a synthetic provenance payload
// carrying the aggregate failure reason.
func (p *Pipeline) fail(ctx context.Context, posting *jobpost.JobPosting, lastMethod jobpost.Method, failures []string) error {
	posting.Status = jobpost.StatusFailed
	posting.Provenance = &jobpost.Provenance{
		Method:    lastMethod,
		Extractor: "pipeline",
		Excerpt:   strings.Join(failures, "; "),
		At:        p.now(),
	}
	wctx, cancel := persistCtx(ctx)
	defer cancel()
	if err := p.postings.SavePosting(wctx, posting); err != nil {
		return err
	}
	p.notify(wctx, posting)

	if posting.Domain != "" {
		if err := p.selectors.RecordFailure(wctx, posting.Domain); err != nil {
			p.logger.Error("record domain failure failed", "domain", posting.Domain, "error", err)
		}
	}
	return nil
}

// persistCtx detaches a storage write from the run context. A stage
// that runs out the caller's deadline must not strand the posting in
// fetching, so the writes that record what happened get their own
// deadline instead of inheriting an expired one.
func persistCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
}

func (p *Pipeline) recordOutcome(ctx context.Context, domain string, discovered []jobpost.Selector) {
	if err := p.selectors.RecordSuccess(ctx, domain, discovered); err != nil {
		p.logger.Error("record domain success failed", "domain", domain, "error", err)
	}
}

func (p *Pipeline) notify(ctx context.Context, posting *jobpost.JobPosting) {
	if p.notifier != nil {
		p.notifier.PostingChanged(ctx, posting)
	}
}

func validResult(r *jobpost.Result) bool {
	return r != nil && len(strings.TrimSpace(r.Title)) >= minTitleLen && len(strings.TrimSpace(r.Description)) >= minDescriptionLen
}
