// Package schema extracts job postings from embedded structured markup:
// JSON-LD first, then microdata. It tolerates the malformed JSON real
// career sites publish and maps schema.org JobPosting fields onto the
// normalized triple.
package schema

import (
	"context"
	"encoding/json"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mwalto/jobpost"
)

// minDescriptionLen is the minimum cleaned description length for a
// structured-data item to count as a job posting.
const minDescriptionLen = 50

// microdataConfidence is the fixed confidence for microdata results;
// itemprop markup carries weaker structural guarantees than JSON-LD.
const microdataConfidence = 0.7

// jsonLDRe isolates ld+json script blocks regardless of attribute order
// or quoting style.
var jsonLDRe = regexp.MustCompile(`(?is)<script[^>]*type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)

// bracketRe matches bracketed annotations appended to titles, e.g.
// "Senior Engineer [Multiple Positions]".
var bracketRe = regexp.MustCompile(`\s*\[[^\]]*\]`)

// titleFields is the ordered list of JSON-LD fields consulted for the
// job title.
var titleFields = []string{"title", "jobTitle", "name", "headline"}

// descriptionFields is the ordered list of JSON-LD fields consulted for
// the description.
var descriptionFields = []string{"description", "jobDescription"}

// companyFallbackFields is consulted when hiringOrganization is absent.
var companyFallbackFields = []string{"companyName", "employer"}

// portalSuffixes are career-portal decorations appended to organization
// names, stripped case-insensitively.
var portalSuffixes = []string{
	"careers page",
	"candidate experience",
	"career site",
	"careers",
	"talent community",
	"hiring",
	"jobs",
}

// Ensure Extractor implements jobpost.Extractor at compile time.
var _ jobpost.Extractor = (*Extractor)(nil)

// Extractor recovers the normalized triple from structured markup.
type Extractor struct {
	converter jobpost.Converter
}

// NewExtractor creates a new Extractor. The converter flattens
// description HTML into newline/bullet text.
func NewExtractor(converter jobpost.Converter) *Extractor {
	return &Extractor{converter: converter}
}

// Name returns the stage identifier.
func (e *Extractor) Name() string { return "schema" }

// Extract scans the HTML for JobPosting structured markup. Returns
// (nil, nil) when no item yields both a non-empty title and an adequately
// long description.
func (e *Extractor) Extract(_ context.Context, input jobpost.ExtractInput) (*jobpost.Result, error) {
	if strings.TrimSpace(input.HTML) == "" {
		return nil, nil
	}

	if result := e.extractJSONLD(input.HTML); result != nil {
		return result, nil
	}
	if result := e.extractMicrodata(input.HTML); result != nil {
		return result, nil
	}
	return nil, nil
}

// extractJSONLD walks every ld+json block, repairing malformed JSON
// before giving up on a block, and returns the first JobPosting item
// that yields a valid triple.
func (e *Extractor) extractJSONLD(rawHTML string) *jobpost.Result {
	for _, match := range jsonLDRe.FindAllStringSubmatch(rawHTML, -1) {
		for _, item := range parseBlock(match[1]) {
			if !isJobPostingType(item["@type"]) {
				continue
			}
			if result := e.buildResult(item); result != nil {
				return result
			}
		}
	}
	return nil
}

// parseBlock parses one script block into candidate items. Single
// objects, top-level arrays, and @graph containers are all accepted.
// Unparseable blocks yield nothing; malformed structured data is "no
// structured data", not an error.
func parseBlock(raw string) []map[string]any {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		repaired := Repair(raw)
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			return nil
		}
	}
	return flattenItems(doc)
}

// flattenItems normalizes the parsed document into a flat item list,
// descending into arrays and @graph containers one level deep.
func flattenItems(doc any) []map[string]any {
	var items []map[string]any
	switch v := doc.(type) {
	case map[string]any:
		items = append(items, v)
		if graph, ok := v["@graph"].([]any); ok {
			for _, g := range graph {
				if m, ok := g.(map[string]any); ok {
					items = append(items, m)
				}
			}
		}
	case []any:
		for _, el := range v {
			if m, ok := el.(map[string]any); ok {
				items = append(items, m)
			}
		}
	}
	return items
}

// isJobPostingType matches @type against known JobPosting spellings,
// case-insensitively, including schema.org-prefixed forms. @type may be
// a string or an array of strings.
func isJobPostingType(typeValue any) bool {
	switch v := typeValue.(type) {
	case string:
		return normalizeType(v) == "jobposting"
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && normalizeType(s) == "jobposting" {
				return true
			}
		}
	}
	return false
}

func normalizeType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range []string{"https://schema.org/", "http://schema.org/", "schema.org/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return s
}

// buildResult maps a JobPosting item onto the normalized triple.
// Returns nil unless the item yields a non-empty title and a
// sufficiently long description.
func (e *Extractor) buildResult(item map[string]any) *jobpost.Result {
	title := CleanTitle(stringField(item, titleFields...))
	if title == "" {
		return nil
	}

	description := e.cleanDescription(stringField(item, descriptionFields...))
	if len(description) < minDescriptionLen {
		return nil
	}

	company := CleanCompany(extractCompany(item))

	return &jobpost.Result{
		Title:       title,
		Company:     company,
		Description: description,
		Confidence:  confidence(item, title, company, description),
		Method:      jobpost.MethodSchema,
		Extractor:   "schema",
		Excerpt:     excerpt(description),
	}
}

// extractCompany reads hiringOrganization.{name,legalName,alternateName},
// accepting a bare string organization, then falls back to direct fields.
func extractCompany(item map[string]any) string {
	switch org := item["hiringOrganization"].(type) {
	case string:
		if org != "" {
			return org
		}
	case map[string]any:
		if name := stringField(org, "name", "legalName", "alternateName"); name != "" {
			return name
		}
	}
	return stringField(item, companyFallbackFields...)
}

// confidence starts at 0.5 and earns 0.1 per quality signal, capped at 1.0.
func confidence(item map[string]any, title, company, description string) float64 {
	score := 0.5
	if len(title) > 5 {
		score += 0.1
	}
	if len(company) > 2 {
		score += 0.1
	}
	if len(description) > 100 {
		score += 0.1
	}
	for _, field := range []string{"hiringOrganization", "jobDescription", "datePosted"} {
		if _, ok := item[field]; ok {
			score += 0.1
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// extractMicrodata applies the same field-priority and cleaning rules to
// itemprop markup at a fixed lower confidence.
func (e *Extractor) extractMicrodata(rawHTML string) *jobpost.Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}

	var result *jobpost.Result
	doc.Find("[itemtype]").EachWithBreak(func(_ int, scope *goquery.Selection) bool {
		itemtype, _ := scope.Attr("itemtype")
		if !strings.Contains(strings.ToLower(itemtype), "jobposting") {
			return true
		}

		title := CleanTitle(firstItempropText(scope, "title", "name"))
		if title == "" {
			return true
		}

		var descRaw string
		if sel := scope.Find(`[itemprop="description"]`).First(); sel.Length() > 0 {
			descRaw, _ = sel.Html()
		}
		description := e.cleanDescription(descRaw)
		if len(description) < minDescriptionLen {
			return true
		}

		company := scope.Find(`[itemprop="hiringOrganization"] [itemprop="name"]`).First().Text()
		if company == "" {
			company = scope.Find(`[itemprop="hiringOrganization"]`).First().Text()
		}

		result = &jobpost.Result{
			Title:       title,
			Company:     CleanCompany(strings.TrimSpace(company)),
			Description: description,
			Confidence:  microdataConfidence,
			Method:      jobpost.MethodSchema,
			Extractor:   "schema",
			Excerpt:     excerpt(description),
		}
		return false
	})

	return result
}

// cleanDescription flattens description markup to newline/bullet text
// and decodes entities. Plain-text descriptions skip the converter.
func (e *Extractor) cleanDescription(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.ContainsRune(raw, '<') && e.converter != nil {
		if converted, err := e.converter.Convert(raw); err == nil {
			return strings.TrimSpace(converted)
		}
	}
	return strings.TrimSpace(html.UnescapeString(raw))
}

// CleanTitle strips bracketed annotations and surrounding whitespace:
// "Senior Engineer [Remote]" becomes "Senior Engineer".
func CleanTitle(title string) string {
	title = bracketRe.ReplaceAllString(title, "")
	return strings.TrimSpace(html.UnescapeString(title))
}

// CleanCompany strips known career-portal suffixes case-insensitively:
// "Acme Careers Page" becomes "Acme".
func CleanCompany(company string) string {
	company = strings.TrimSpace(html.UnescapeString(company))
	lower := strings.ToLower(company)
	for _, suffix := range portalSuffixes {
		if strings.HasSuffix(lower, suffix) {
			trimmed := strings.TrimSpace(company[:len(company)-len(suffix)])
			trimmed = strings.TrimRight(trimmed, "-|–: ")
			if trimmed != "" {
				return strings.TrimSpace(trimmed)
			}
		}
	}
	return company
}

// stringField returns the first non-empty string among the named fields.
func stringField(item map[string]any, fields ...string) string {
	for _, field := range fields {
		if s, ok := item[field].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstItempropText returns the first non-empty trimmed text among the
// named itemprops within a scope.
func firstItempropText(scope *goquery.Selection, props ...string) string {
	for _, prop := range props {
		if text := strings.TrimSpace(scope.Find(`[itemprop="` + prop + `"]`).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// excerpt returns a short evidence sample for provenance.
func excerpt(description string) string {
	const maxExcerpt = 200
	if len(description) <= maxExcerpt {
		return description
	}
	return description[:maxExcerpt]
}
