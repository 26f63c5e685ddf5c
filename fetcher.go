package jobpost

import "context"

// FetchResult holds fetched HTML together with metadata the pipeline
// records in the attempt audit trail.
type FetchResult struct {
	// HTML is the page markup, rendered if Rendered is true.
	HTML string

	// StatusCode is the final HTTP status of the plain request, when one
	// was made. Zero when the page came straight from a browser render.
	StatusCode int

	// Rendered reports whether a headless browser produced the HTML.
	// The selector-discovery extractor requires rendered input.
	Rendered bool
}

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content. Fetch failures are expected steady-state outcomes; callers
// treat an error as a failed attempt, never as a fault.
type Fetcher interface {
	// Fetch retrieves the page at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
