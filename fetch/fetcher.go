// Package fetch composes the plain HTTP and browser fetchers into the
// escalation strategy the pipeline uses: try the cheap request first,
// escalate to a full render when the page looks JavaScript-driven.
package fetch

import (
	"context"
	"strings"

	"github.com/mwalto/jobpost"
)

// substantialityIndicators are job-related keywords counted in a plain
// HTTP response body. Fewer than MinIndicators matches means the page
// likely renders its content client-side.
var substantialityIndicators = []string{
	"responsibilities",
	"qualifications",
	"requirements",
	"salary",
	"benefits",
	"apply now",
	"job description",
	"experience",
	"full-time",
	"part-time",
}

// MinIndicators is the substantiality threshold: a plain response with
// fewer matches escalates to the browser.
const MinIndicators = 3

// Ensure Fetcher implements jobpost.Fetcher at compile time.
var _ jobpost.Fetcher = (*Fetcher)(nil)

// Fetcher tries a plain HTTP fetch first and escalates to a browser
// render when the plain request fails or returns an insubstantial body.
type Fetcher struct {
	plain   jobpost.Fetcher
	browser jobpost.Fetcher
	limiter *DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDomainLimiter paces fetches per domain. No pacing if unset.
func WithDomainLimiter(l *DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates an escalating Fetcher. The browser fetcher may be
// nil, in which case insubstantial plain results are returned as-is and
// plain failures surface directly.
func NewFetcher(plain, browser jobpost.Fetcher, opts ...Option) *Fetcher {
	f := &Fetcher{plain: plain, browser: browser}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves HTML for the URL, escalating to a browser render when
// the plain response fails or carries fewer than MinIndicators job
// keywords.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*jobpost.FetchResult, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, jobpost.NormalizeDomain(url)); err != nil {
			return nil, err
		}
	}

	plain, plainErr := f.plain.Fetch(ctx, url)
	if plainErr == nil && Substantial(plain.HTML) {
		return plain, nil
	}

	if f.browser == nil {
		if plainErr != nil {
			return nil, plainErr
		}
		return plain, nil
	}

	rendered, renderErr := f.browser.Fetch(ctx, url)
	if renderErr != nil {
		// The render is the better source when it works; otherwise an
		// insubstantial plain body still beats nothing.
		if plainErr == nil {
			return plain, nil
		}
		return nil, renderErr
	}
	if plain != nil {
		rendered.StatusCode = plain.StatusCode
	}
	return rendered, nil
}

// Close releases both underlying fetchers.
func (f *Fetcher) Close() error {
	err := f.plain.Close()
	if f.browser != nil {
		if berr := f.browser.Close(); err == nil {
			err = berr
		}
	}
	return err
}

// Substantial reports whether the HTML body carries enough job-related
// keyword indicators to be worth parsing without a browser render.
func Substantial(html string) bool {
	lower := strings.ToLower(html)
	count := 0
	for _, indicator := range substantialityIndicators {
		if strings.Contains(lower, indicator) {
			count++
			if count >= MinIndicators {
				return true
			}
		}
	}
	return false
}
