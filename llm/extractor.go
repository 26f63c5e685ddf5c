// Package llm discovers CSS selectors for job-posting fields by asking
// a language model, then applies the selectors locally. The model never
// sees extracted values, only the page; extraction itself stays
// deterministic and auditable.
package llm

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/schema"
)

// Confidence is the fixed confidence for llm extractions.
const Confidence = 0.7

// Completion defaults.
const (
	DefaultMaxTokens   = 1024
	DefaultTemperature = 0.1
)

// DefaultCompletionTimeout bounds a single model call so a slow
// completion cannot consume the whole pipeline run.
const DefaultCompletionTimeout = 30 * time.Second

// Field validation bounds.
const (
	minTitleLen       = 3
	maxTitleLen       = 200
	minDescriptionLen = 50
)

// Extractor implements jobpost.Extractor by prompting a Completer for
// selectors. When the input HTML was not browser-rendered and a browser
// fetcher is configured, the page is re-fetched rendered first, since
// selector discovery on a skeleton page learns selectors for nodes that
// only exist after scripts run.
type Extractor struct {
	completer   jobpost.Completer
	browser     jobpost.Fetcher
	maxTokens   int
	temperature float64
	timeout     time.Duration
}

var _ jobpost.Extractor = (*Extractor)(nil)

// NewExtractor returns an llm extractor backed by the given completer.
func NewExtractor(completer jobpost.Completer, opts ...Option) *Extractor {
	e := &Extractor{
		completer:   completer,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
		timeout:     DefaultCompletionTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithBrowserFetcher installs a fetcher used to re-fetch pages rendered
// before selector discovery.
func WithBrowserFetcher(f jobpost.Fetcher) Option {
	return func(e *Extractor) { e.browser = f }
}

// WithMaxTokens overrides the completion token limit.
func WithMaxTokens(n int) Option {
	return func(e *Extractor) { e.maxTokens = n }
}

// WithTemperature overrides the completion temperature.
func WithTemperature(t float64) Option {
	return func(e *Extractor) { e.temperature = t }
}

// WithCompletionTimeout overrides the per-call model deadline.
func WithCompletionTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.timeout = d }
}

// Name implements jobpost.Extractor.
func (e *Extractor) Name() string { return "llm" }

// Extract implements jobpost.Extractor. A nil result with a nil error
// means the model's selectors did not locate a valid posting.
func (e *Extractor) Extract(ctx context.Context, input jobpost.ExtractInput) (*jobpost.Result, error) {
	rawHTML := input.HTML
	if !input.Rendered && e.browser != nil {
		fetched, err := e.browser.Fetch(ctx, input.URL)
		if err == nil && fetched.HTML != "" {
			rawHTML = fetched.HTML
		}
	}
	if strings.TrimSpace(rawHTML) == "" {
		return nil, nil
	}

	sanitized, err := sanitizeHTML(rawHTML)
	if err != nil {
		return nil, jobpost.Errorf(jobpost.EINVALID, "llm: sanitize html: %v", err)
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	response, err := e.completer.Complete(cctx, buildPrompt(input.URL, sanitized), e.maxTokens, e.temperature)
	cancel()
	if err != nil {
		return nil, err
	}
	selectors, err := parseSelectors(response)
	if err != nil {
		return nil, err
	}
	if len(selectors) == 0 {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, jobpost.Errorf(jobpost.EINVALID, "llm: parse html: %v", err)
	}

	title, company, description := e.applySelectors(doc, selectors)
	if len(title) < minTitleLen || len(title) > maxTitleLen || len(description) < minDescriptionLen {
		return nil, nil
	}

	return &jobpost.Result{
		Title:       title,
		Company:     company,
		Description: description,
		Confidence:  Confidence,
		Method:      jobpost.MethodLLM,
		Extractor:   e.Name(),
		Excerpt:     excerptOf(description),
		Selectors:   selectors,
	}, nil
}

// applySelectors executes the discovered CSS selectors against the
// page. XPath selectors are stored for the cache but never executed.
func (e *Extractor) applySelectors(doc *goquery.Document, selectors []jobpost.Selector) (title, company, description string) {
	for _, sel := range selectors {
		if sel.Type != jobpost.SelectorCSS {
			continue
		}
		text := strings.TrimSpace(doc.Find(sel.Value).First().Text())
		if text == "" {
			continue
		}
		switch sel.Field {
		case jobpost.FieldTitle:
			if title == "" {
				title = schema.CleanTitle(text)
			}
		case jobpost.FieldCompany:
			if company == "" {
				company = schema.CleanCompany(text)
			}
		case jobpost.FieldDescription:
			if description == "" {
				description = normalizeSpace(text)
			}
		}
	}
	return title, company, description
}

func normalizeSpace(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func excerptOf(description string) string {
	if len(description) <= 200 {
		return description
	}
	return description[:200]
}
