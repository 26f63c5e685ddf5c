package jobpost

import "context"

// ExtractInput carries everything an extraction stage may need. HTML is
// the fetched page; Selectors are cached domain selectors the heuristic
// stage uses to seed extraction. Rendered mirrors FetchResult.Rendered so
// stages that require a browser render can re-fetch when necessary.
type ExtractInput struct {
	URL       string
	HTML      string
	Rendered  bool
	Selectors []Selector
}

// Result is the normalized triple recovered by an extraction stage.
type Result struct {
	Title       string
	Company     string
	Description string

	// Confidence is a 0.0-1.0 heuristic score, not a calibrated
	// probability.
	Confidence float64

	// Method and Extractor identify the stage that produced the result.
	Method    Method
	Extractor string

	// Excerpt is a short sample of the evidence the stage matched on.
	Excerpt string

	// Selectors lists the selectors that produced the result, enabling
	// promotion into the domain selector cache.
	Selectors []Selector
}

// Extractor is one stage of the extraction pipeline. The orchestrator
// runs extractors in a fixed priority list and short-circuits on the
// first valid result.
//
// Extract returns (nil, nil) when the stage finds nothing usable; that is
// the expected miss outcome, not an error. Errors are reserved for
// unexpected stage failures and are recorded in the audit trail.
type Extractor interface {
	// Name returns the stage identifier used in provenance and logs.
	Name() string

	// Extract attempts to recover the normalized triple from the input.
	Extract(ctx context.Context, input ExtractInput) (*Result, error)
}
