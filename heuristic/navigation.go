package heuristic

import "strings"

// IsNavigation reports whether text reads as navigation chrome or legal
// boilerplate rather than posting content. Candidates shorter than
// MinDescriptionLen are rejected outright.
func (c Config) IsNavigation(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < c.MinDescriptionLen {
		return true
	}
	return c.looksLikeNavigation(trimmed)
}

// looksLikeNavigation applies the pattern checks without the length
// cutoff, so per-paragraph callers can use it on shorter text.
func (c Config) looksLikeNavigation(text string) bool {
	lower := strings.ToLower(text)

	matched := 0
	for _, p := range navPatterns {
		matched += strings.Count(lower, p) * len(p)
	}
	if float64(matched)/float64(len(lower)) > c.NavPatternDensity {
		return true
	}

	words := strings.Fields(lower)
	if len(words) > 0 {
		nav := 0
		for _, w := range words {
			if _, ok := navWords[strings.Trim(w, ".,|:;()")]; ok {
				nav++
			}
		}
		if float64(nav)/float64(len(words)) > c.NavWordRatio {
			return true
		}
	}

	opening := lower
	if len(opening) > 60 {
		opening = opening[:60]
	}
	for _, p := range navPatterns {
		if strings.Contains(opening, p) {
			return true
		}
	}
	return false
}

// hasLegalPrefix reports whether a paragraph opens with legal
// boilerplate such as an EEO statement or a copyright line.
func hasLegalPrefix(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, p := range legalPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}
