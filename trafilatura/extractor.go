// Package trafilatura recovers main-content text from HTML with
// boilerplate removed. The heuristic extractor uses it as a last-resort
// description source when every selector-driven path comes up empty.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mwalto/jobpost"
	"golang.org/x/net/html"
)

// Extractor wraps go-trafilatura for main-content recovery.
type Extractor struct {
	converter jobpost.Converter
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter renders recovered content through the given converter
// instead of trafilatura's plain-text flattening, so list and paragraph
// structure survives into the description.
func WithConverter(c jobpost.Converter) Option {
	return func(e *Extractor) { e.converter = c }
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MainText returns the page's main content as plain text with
// boilerplate (nav, footer, sidebar, ads) removed. With a converter
// configured, the content is recovered as HTML and converted so its
// structure is kept.
func (e *Extractor) MainText(rawHTML string) (string, error) {
	if e.converter != nil {
		content, err := e.MainHTML(rawHTML)
		if err != nil {
			return "", err
		}
		if content != "" {
			if text, err := e.converter.Convert(content); err == nil && strings.TrimSpace(text) != "" {
				return strings.TrimSpace(text), nil
			}
		}
	}

	result, err := e.extract(rawHTML)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result.ContentText), nil
}

// MainHTML returns the main content as HTML, preserving structure.
func (e *Extractor) MainHTML(rawHTML string) (string, error) {
	result, err := e.extract(rawHTML)
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", nil
	}
	return renderNode(result.ContentNode)
}

func (e *Extractor) extract(rawHTML string) (*trafilatura.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, jobpost.Errorf(jobpost.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	return trafilatura.Extract(strings.NewReader(rawHTML), opts)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
