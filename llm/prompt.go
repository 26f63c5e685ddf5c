package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mwalto/jobpost"
)

const promptTemplate = `You are extracting a job posting from an HTML page.

Identify CSS selectors that locate the job posting fields on this page.
Respond with ONLY a JSON array, no prose, where each element has:
  "type": "css"
  "selector": the CSS selector string
  "field": one of "title", "company", "description"
  "confidence": a number between 0 and 1

Include at most one selector per field. Prefer the most specific stable
selector (ids and semantic class names over positional paths).

URL: %s

HTML:
%s`

// buildPrompt renders the selector-discovery prompt for a page.
func buildPrompt(url, sanitizedHTML string) string {
	return fmt.Sprintf(promptTemplate, url, sanitizedHTML)
}

// selectorResponse is the wire shape the model is asked to produce.
type selectorResponse struct {
	Type       string  `json:"type"`
	Selector   string  `json:"selector"`
	Field      string  `json:"field"`
	Confidence float64 `json:"confidence"`
}

// parseSelectors decodes the model response into validated selectors.
// Markdown code fences around the JSON are tolerated. Entries with an
// unknown type or field, an empty selector, or an out-of-range
// confidence are dropped rather than failing the batch.
func parseSelectors(response string) ([]jobpost.Selector, error) {
	cleaned := stripCodeFence(response)

	var raw []selectorResponse
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, jobpost.Errorf(jobpost.EINTERNAL, "llm: decode selector response: %v", err)
	}

	var selectors []jobpost.Selector
	for _, r := range raw {
		sel := jobpost.Selector{
			Type:       jobpost.SelectorType(strings.ToLower(strings.TrimSpace(r.Type))),
			Field:      jobpost.Field(strings.ToLower(strings.TrimSpace(r.Field))),
			Value:      strings.TrimSpace(r.Selector),
			Source:     jobpost.MethodLLM,
			Confidence: r.Confidence,
		}
		if sel.Validate() != nil {
			continue
		}
		selectors = append(selectors, sel)
	}
	return selectors, nil
}

// stripCodeFence removes a surrounding markdown fence if present and
// otherwise trims to the outermost JSON array.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		return strings.TrimSpace(s)
	}
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
