package heuristic

// Config holds the empirically tuned thresholds and keyword lists the
// heuristic extractor scores with. The defaults are behavioral constants;
// they are exposed as configuration so tests and callers can see them,
// not because tuning per deployment is expected.
type Config struct {
	// MinDescriptionLen is the minimum length for a description
	// candidate; shorter text is flagged as navigation.
	MinDescriptionLen int

	// MinParagraphLen is the minimum length for a paragraph to count as
	// substantial in the paragraph-concatenation fallback.
	MinParagraphLen int

	// NavPatternDensity is the fraction of candidate text covered by
	// navigation patterns above which the candidate is rejected.
	NavPatternDensity float64

	// NavWordRatio is the fraction of tokens drawn from the navigation
	// vocabulary above which the candidate is rejected.
	NavWordRatio float64

	// LongDescriptionLen and MidDescriptionLen are the scoring length
	// cutoffs (+0.3 above Long, +0.2 between Mid and Long).
	LongDescriptionLen int
	MidDescriptionLen  int

	// KeywordBonus is added per matched job keyword, up to KeywordBonusCap.
	KeywordBonus    float64
	KeywordBonusCap float64
}

// DefaultConfig returns the tuned thresholds.
func DefaultConfig() Config {
	return Config{
		MinDescriptionLen:  200,
		MinParagraphLen:    150,
		NavPatternDensity:  0.2,
		NavWordRatio:       0.3,
		LongDescriptionLen: 200,
		MidDescriptionLen:  100,
		KeywordBonus:       0.1,
		KeywordBonusCap:    0.4,
	}
}

// jobKeywords are content signals a real posting body tends to carry.
var jobKeywords = []string{
	"responsibilities",
	"qualifications",
	"requirements",
	"experience",
	"skills",
	"benefits",
	"salary",
	"you will",
	"we offer",
	"about the role",
}

// sectionKeywords identify headings that open posting sections.
var sectionKeywords = []string{
	"responsibilities",
	"qualifications",
	"requirements",
	"benefits",
	"about the role",
	"about this role",
	"what you'll do",
	"what you will do",
	"who you are",
	"your impact",
	"nice to have",
}

// navPatterns mark navigation and legal boilerplate.
var navPatterns = []string{
	"back to search results",
	"privacy policy",
	"terms of service",
	"terms of use",
	"equal opportunity",
	"all rights reserved",
	"cookie policy",
	"cookie settings",
	"sign in",
	"log in",
	"create account",
	"related jobs",
	"similar jobs",
	"share this job",
	"save this job",
	"job alerts",
	"skip to content",
	"view all jobs",
}

// navWords is the navigation vocabulary for the token-ratio check.
var navWords = map[string]struct{}{
	"home":      {},
	"about":     {},
	"contact":   {},
	"login":     {},
	"register":  {},
	"privacy":   {},
	"terms":     {},
	"careers":   {},
	"jobs":      {},
	"search":    {},
	"menu":      {},
	"next":      {},
	"previous":  {},
	"share":     {},
	"sitemap":   {},
	"cookie":    {},
	"cookies":   {},
	"copyright": {},
	"faq":       {},
	"help":      {},
}

// legalPrefixes disqualify paragraphs that open with legal boilerplate.
var legalPrefixes = []string{
	"equal opportunity",
	"we are an equal opportunity",
	"©",
	"copyright",
	"by using this site",
	"this website uses cookies",
}

// companyBlacklist rejects generic strings mistaken for company names.
var companyBlacklist = map[string]struct{}{
	"careers":        {},
	"career":         {},
	"jobs":           {},
	"job":            {},
	"home":           {},
	"apply":          {},
	"apply now":      {},
	"job search":     {},
	"search results": {},
	"login":          {},
	"welcome":        {},
	"hiring":         {},
	"join us":        {},
	"join our team":  {},
}

// titleBoilerplate rejects generic strings mistaken for job titles.
var titleBoilerplate = map[string]struct{}{
	"job details":      {},
	"job description":  {},
	"careers":          {},
	"search results":   {},
	"apply now":        {},
	"apply":            {},
	"open positions":   {},
	"current openings": {},
}

// descriptionSelectors is the fixed candidate list, in priority order.
var descriptionSelectors = []string{
	`[class*="job-description"]`,
	`[class*="jobDescription"]`,
	`[id*="job-description"]`,
	`[id*="jobDescription"]`,
	`[class*="job-details"]`,
	`[class*="posting-body"]`,
	`.description`,
	`[class*="description"]`,
	`article`,
	`section`,
}

// titleSelectors is the DOM fallback list for job titles.
var titleSelectors = []string{
	"h1",
	".job-title",
	`[class*="job-title"]`,
	`[class*="jobTitle"]`,
	`[class*="position-title"]`,
	`[data-testid*="title"]`,
	"h2",
}

// companySelectors is the DOM fallback list for company names.
var companySelectors = []string{
	`[class*="company-name"]`,
	`[class*="companyName"]`,
	".company",
	`[class*="company"]`,
	`[class*="employer"]`,
	`[data-company]`,
}

// mainContentSelectors scope the nav-stripped fallback scan.
var mainContentSelectors = []string{
	"main",
	`[role="main"]`,
	".content",
	"#content",
}

// navSubtreeSelector matches subtrees surgically removed from main
// content before the fallback scan.
const navSubtreeSelector = `nav, header, footer, aside, button, form, ` +
	`[class*="nav"], [class*="menu"], [class*="footer"], [class*="header"], ` +
	`[class*="sidebar"], [id*="nav"], [id*="menu"]`
