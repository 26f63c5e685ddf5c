package heuristic

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mwalto/jobpost/schema"
)

var (
	atPattern    = regexp.MustCompile(`(?i)^(.+?)\s+at\s+(.+)$`)
	atSymPattern = regexp.MustCompile(`^(.+?)\s+@\s+(.+)$`)
	titleSplitRe = regexp.MustCompile(`\s+[-|–—]\s+`)
	wordSplitRe  = regexp.MustCompile(`[\s._-]+`)
)

// parseTitleTag derives a job title and optionally a company name from
// the page <title>. Generic trailing segments such as "Careers" are
// dropped before pattern matching.
func parseTitleTag(raw string) (title, company string) {
	segments := titleSplitRe.Split(strings.TrimSpace(raw), -1)
	for len(segments) > 0 && isGenericSegment(segments[len(segments)-1]) {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return "", ""
	}

	head := strings.TrimSpace(segments[0])
	for _, re := range []*regexp.Regexp{atPattern, atSymPattern} {
		if m := re.FindStringSubmatch(head); m != nil {
			t := schema.CleanTitle(m[1])
			c := schema.CleanCompany(m[2])
			if validTitle(t) && validCompany(c) {
				return t, c
			}
		}
	}

	// "Title - Company" with a non-generic second segment.
	if len(segments) >= 2 {
		t := schema.CleanTitle(head)
		c := schema.CleanCompany(segments[1])
		if validTitle(t) && validCompany(c) {
			return t, c
		}
	}

	if t := schema.CleanTitle(head); validTitle(t) {
		return t, ""
	}
	return "", ""
}

func isGenericSegment(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return true
	}
	for _, g := range []string{"careers", "career", "jobs", "job application", "job opening", "hiring", "join us"} {
		if lower == g || strings.HasSuffix(lower, " "+g) {
			return true
		}
	}
	return false
}

// titleFromDOM walks the title selector list and returns the first
// candidate that survives validation.
func titleFromDOM(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			t := schema.CleanTitle(s.Text())
			if validTitle(t) {
				found = t
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// companyFromDOM walks the company selector list.
func companyFromDOM(doc *goquery.Document) string {
	for _, sel := range companySelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			c := schema.CleanCompany(s.Text())
			if validCompany(c) {
				found = c
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// companyFromDomain derives a display name from the first label of the
// posting's domain, e.g. "globex.com" yields "Globex".
func companyFromDomain(domain string) string {
	label, _, _ := strings.Cut(domain, ".")
	label = strings.TrimSpace(label)
	if label == "" || label == "www" {
		return ""
	}
	parts := wordSplitRe.Split(label, -1)
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	name := strings.TrimSpace(strings.Join(parts, " "))
	if !validCompany(name) {
		return ""
	}
	return name
}

func validTitle(t string) bool {
	t = strings.TrimSpace(t)
	if len(t) < 3 || len(t) > 200 {
		return false
	}
	_, boiler := titleBoilerplate[strings.ToLower(t)]
	return !boiler
}

func validCompany(c string) bool {
	c = strings.TrimSpace(c)
	if len(c) < 2 || len(c) > 100 {
		return false
	}
	_, black := companyBlacklist[strings.ToLower(c)]
	return !black
}
