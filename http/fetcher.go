// Package http provides a plain HTTP implementation of jobpost.Fetcher
// for job pages that render server-side and don't require JavaScript.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/mwalto/jobpost"
)

// DefaultFetchTimeout bounds a plain HTTP request.
const DefaultFetchTimeout = 8 * time.Second

// DefaultUserAgent is a realistic desktop browser User-Agent. Many job
// boards serve a bot-detection interstitial to generic Go clients.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// maxRedirects caps redirect chains; job-board short links routinely
// bounce through trackers before landing on the posting.
const maxRedirects = 10

// Ensure Fetcher implements jobpost.Fetcher at compile time.
var _ jobpost.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML from URLs using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript and is suitable
// for server-rendered pages only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (8s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML at the given URL. Non-HTML content types are
// rejected with EINVALID.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*jobpost.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, jobpost.Errorf(jobpost.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	if !isHTML(resp.Header.Get("Content-Type")) {
		return nil, jobpost.Errorf(jobpost.EINVALID, "non-HTML content type %q for %s", resp.Header.Get("Content-Type"), url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &jobpost.FetchResult{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}

// Close releases resources. For an HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// isHTML reports whether the Content-Type header denotes an HTML page.
// A missing header passes; some career sites omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}
