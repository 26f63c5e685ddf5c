// Package heuristic extracts job postings from pages without structured
// data by scoring DOM regions against job-content signals and filtering
// out navigation chrome.
package heuristic

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwalto/jobpost"
	"github.com/mwalto/jobpost/schema"
)

// Confidence is the fixed confidence for heuristic extractions.
const Confidence = 0.6

// ContentRecoverer recovers main-content text when every selector path
// fails, typically backed by a readability engine.
type ContentRecoverer interface {
	MainText(html string) (string, error)
}

// Extractor implements jobpost.Extractor with DOM heuristics.
type Extractor struct {
	cfg       Config
	recoverer ContentRecoverer
}

var _ jobpost.Extractor = (*Extractor)(nil)

// NewExtractor returns a heuristic extractor with default thresholds.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{cfg: DefaultConfig()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConfig overrides the default thresholds.
func WithConfig(cfg Config) Option {
	return func(e *Extractor) { e.cfg = cfg }
}

// WithContentRecoverer installs a last-resort content recoverer.
func WithContentRecoverer(r ContentRecoverer) Option {
	return func(e *Extractor) { e.recoverer = r }
}

// Name implements jobpost.Extractor.
func (e *Extractor) Name() string { return "heuristic" }

// Extract implements jobpost.Extractor. Cached domain selectors are
// applied first; heuristics fill whatever they leave empty. A nil
// result with a nil error means no posting was found.
func (e *Extractor) Extract(ctx context.Context, input jobpost.ExtractInput) (*jobpost.Result, error) {
	if strings.TrimSpace(input.HTML) == "" {
		return nil, nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input.HTML))
	if err != nil {
		return nil, jobpost.Errorf(jobpost.EINVALID, "heuristic: parse html: %v", err)
	}

	title, company, description, used := e.applyCachedSelectors(doc, input.Selectors)

	if title == "" || company == "" {
		t, c := e.titleCompany(doc)
		if title == "" {
			title = t
		}
		if company == "" {
			company = c
		}
	}
	if company == "" {
		company = companyFromDomain(jobpost.NormalizeDomain(input.URL))
	}
	if description == "" {
		description = e.description(doc)
	}

	if !validTitle(title) || description == "" {
		return nil, nil
	}

	return &jobpost.Result{
		Title:       title,
		Company:     company,
		Description: description,
		Confidence:  Confidence,
		Method:      jobpost.MethodHeuristic,
		Extractor:   e.Name(),
		Excerpt:     excerptOf(description),
		Selectors:   used,
	}, nil
}

// applyCachedSelectors runs previously learned CSS selectors before any
// heuristic scan. XPath entries are skipped; only selectors that yield
// a valid value count as used.
func (e *Extractor) applyCachedSelectors(doc *goquery.Document, selectors []jobpost.Selector) (title, company, description string, used []jobpost.Selector) {
	for _, sel := range selectors {
		if sel.Type != jobpost.SelectorCSS {
			continue
		}
		text := normalizeSpace(doc.Find(sel.Value).First().Text())
		if text == "" {
			continue
		}
		switch sel.Field {
		case jobpost.FieldTitle:
			if t := schema.CleanTitle(text); title == "" && validTitle(t) {
				title = t
				used = append(used, sel)
			}
		case jobpost.FieldCompany:
			if c := schema.CleanCompany(text); company == "" && validCompany(c) {
				company = c
				used = append(used, sel)
			}
		case jobpost.FieldDescription:
			if description == "" && !e.cfg.IsNavigation(text) {
				description = text
				used = append(used, sel)
			}
		}
	}
	return title, company, description, used
}

// titleCompany resolves title and company from the title tag, og: meta
// tags, and DOM selectors, in that order.
func (e *Extractor) titleCompany(doc *goquery.Document) (title, company string) {
	title, company = parseTitleTag(doc.Find("title").First().Text())

	if title == "" || company == "" {
		if og := metaContent(doc, "og:title"); og != "" {
			t, c := parseTitleTag(og)
			if title == "" {
				title = t
			}
			if company == "" {
				company = c
			}
		}
	}
	if title == "" {
		title = titleFromDOM(doc)
	}
	if company == "" {
		if c := schema.CleanCompany(metaContent(doc, "og:site_name")); validCompany(c) {
			company = c
		}
	}
	if company == "" {
		company = companyFromDOM(doc)
	}
	return title, company
}

// description runs the candidate scan and its fallbacks in order:
// heading-driven sections, scored selector candidates, nav-stripped
// main content, substantial paragraphs, then the content recoverer.
func (e *Extractor) description(doc *goquery.Document) string {
	headingText := e.sectionsFromHeadings(doc)
	headingScore := -1.0
	if headingText != "" && !e.cfg.IsNavigation(headingText) {
		headingScore = e.scoreText(headingText, 0, 0)
	}

	bestText, bestScore := e.bestCandidate(doc)

	if headingScore >= bestScore && headingText != "" && headingScore >= 0 {
		return headingText
	}
	if bestText != "" {
		return bestText
	}

	if text := e.mainContentFallback(doc); text != "" {
		return text
	}
	if text := e.paragraphFallback(doc); text != "" {
		return text
	}
	if e.recoverer != nil {
		html, err := doc.Html()
		if err == nil {
			if text, err := e.recoverer.MainText(html); err == nil {
				text = normalizeSpace(text)
				if !e.cfg.IsNavigation(text) {
					return text
				}
			}
		}
	}
	return ""
}

// bestCandidate scores every element matched by the candidate selector
// list and returns the highest-scoring survivor of the nav filter.
func (e *Extractor) bestCandidate(doc *goquery.Document) (string, float64) {
	bestScore := -1.0
	var bestText string
	for _, sel := range descriptionSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := normalizeSpace(s.Text())
			if e.cfg.IsNavigation(text) {
				return
			}
			score := e.scoreText(text, s.Find("li").Length(), s.Find("p").Length())
			if score > bestScore {
				bestScore = score
				bestText = text
			}
		})
	}
	return bestText, bestScore
}

// scoreText scores a description candidate by length, job keywords, and
// list/paragraph structure.
func (e *Extractor) scoreText(text string, listItems, paragraphs int) float64 {
	var score float64
	switch {
	case len(text) > e.cfg.LongDescriptionLen:
		score += 0.3
	case len(text) >= e.cfg.MidDescriptionLen:
		score += 0.2
	}
	lower := strings.ToLower(text)
	var kw float64
	for _, k := range jobKeywords {
		if strings.Contains(lower, k) {
			kw += e.cfg.KeywordBonus
		}
	}
	if kw > e.cfg.KeywordBonusCap {
		kw = e.cfg.KeywordBonusCap
	}
	score += kw
	if listItems > 3 {
		score += 0.05
	}
	if paragraphs > 2 {
		score += 0.05
	}
	return score
}

// sectionsFromHeadings collects headings that name posting sections
// together with the content up to the next heading.
func (e *Extractor) sectionsFromHeadings(doc *goquery.Document) string {
	var sections []string
	doc.Find("h2, h3, h4").Each(func(_ int, h *goquery.Selection) {
		heading := normalizeSpace(h.Text())
		lower := strings.ToLower(heading)
		match := false
		for _, k := range sectionKeywords {
			if strings.Contains(lower, k) {
				match = true
				break
			}
		}
		if !match {
			return
		}
		body := normalizeSpace(h.NextUntil("h1, h2, h3, h4").Text())
		if body == "" {
			return
		}
		sections = append(sections, heading+"\n"+body)
	})
	return strings.Join(sections, "\n\n")
}

// mainContentFallback scans main-content containers with navigation
// subtrees removed from a clone.
func (e *Extractor) mainContentFallback(doc *goquery.Document) string {
	for _, sel := range mainContentSelectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		clone := s.Clone()
		clone.Find(navSubtreeSelector).Remove()
		text := normalizeSpace(clone.Text())
		if !e.cfg.IsNavigation(text) {
			return text
		}
	}
	return ""
}

// paragraphFallback concatenates substantial paragraphs that are not
// navigation-flagged and do not open with legal boilerplate.
func (e *Extractor) paragraphFallback(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		text := normalizeSpace(p.Text())
		if len(text) <= e.cfg.MinParagraphLen {
			return
		}
		if e.cfg.looksLikeNavigation(text) || hasLegalPrefix(text) {
			return
		}
		parts = append(parts, text)
	})
	combined := strings.Join(parts, "\n\n")
	if e.cfg.IsNavigation(combined) {
		return ""
	}
	return combined
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(`meta[property="` + property + `"]`).First().Attr("content")
	if content == "" {
		content, _ = doc.Find(`meta[name="` + property + `"]`).First().Attr("content")
	}
	return strings.TrimSpace(content)
}

// normalizeSpace collapses runs of whitespace within lines and drops
// empty lines, preserving line structure.
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
