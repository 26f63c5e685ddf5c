// Package rod provides a browser-based implementation of jobpost.Fetcher
// using Chrome automation. It renders JavaScript-driven job pages and
// suppresses the fingerprints bot-detection scripts look for.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mwalto/jobpost"
)

// DefaultRenderTimeout bounds a full browser fetch: navigation, network
// idle, and the structured-data wait combined.
const DefaultRenderTimeout = 20 * time.Second

// defaultUserAgent matches the plain HTTP fetcher so a page sees a
// consistent identity across escalation.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// stealthScript clears the automation markers pages probe for before any
// page script runs.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
Object.defineProperty(navigator, 'languages', {get: () => ['en-US', 'en']});
Object.defineProperty(navigator, 'plugins', {get: () => [1, 2, 3]});
window.chrome = window.chrome || { runtime: {} };
`

// jsonLDSelector matches embedded structured-data script tags. Rendered
// job pages typically inject these after hydration.
const jsonLDSelector = `script[type="application/ld+json"]`

// Ensure Fetcher implements jobpost.Fetcher at compile time.
var _ jobpost.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager       *BrowserManager
	renderTimeout time.Duration
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithRenderTimeout sets the total time budget for one rendered fetch.
// Defaults to DefaultRenderTimeout if not specified.
func WithRenderTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.renderTimeout = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}

	f := &Fetcher{
		manager:       manager,
		renderTimeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL with a realistic browser profile, waits for
// the page to settle, and returns the rendered DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*jobpost.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, f.renderTimeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := f.preparePage(page); err != nil {
		return nil, err
	}

	if err := page.Navigate(url); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	// Let in-flight XHR settle; hydrated job boards fetch the posting
	// body after load.
	wait := page.WaitRequestIdle(500*time.Millisecond, nil, nil, nil)
	wait()

	// Best-effort wait for structured data to appear. Pages without
	// JSON-LD simply run out the remaining budget.
	_, _ = page.Element(jsonLDSelector)

	html, err := page.HTML()
	if err != nil {
		return nil, err
	}

	f.manager.IncrementPageCount()

	return &jobpost.FetchResult{
		HTML:     html,
		Rendered: true,
	}, nil
}

// preparePage applies the realistic profile: viewport, user agent,
// locale, and the stealth script injected before any page script runs.
func (f *Fetcher) preparePage(page *rod.Page) error {
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		return err
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      defaultUserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		return err
	}

	if _, err := page.EvalOnNewDocument(stealthScript); err != nil {
		return err
	}

	return nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
