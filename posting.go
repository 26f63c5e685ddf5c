package jobpost

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Status represents the lifecycle state of a JobPosting.
type Status string

// JobPosting lifecycle states. A posting moves pending → fetching →
// {complete | failed}. Manual is terminal and reached only by direct
// creation, never by the pipeline.
const (
	StatusPending  Status = "pending"
	StatusFetching Status = "fetching"
	StatusFailed   Status = "failed"
	StatusManual   Status = "manual"
	StatusComplete Status = "complete"
)

// Method identifies which extraction method produced a result.
type Method string

// Extraction methods, in pipeline priority order.
const (
	MethodSchema    Method = "schema"
	MethodHeuristic Method = "heuristic"
	MethodLLM       Method = "llm"
	MethodManual    Method = "manual"
)

// Provenance records which extraction method produced a posting's fields,
// with confidence and supporting evidence.
type Provenance struct {
	Method     Method     `json:"method"`
	Extractor  string     `json:"extractor"`
	Confidence float64    `json:"confidence"`
	Excerpt    string     `json:"excerpt,omitempty"`
	Selectors  []Selector `json:"selectors,omitempty"`
	At         time.Time  `json:"at"`
}

// JobPosting represents a single job posting submitted for extraction.
// SourceURL is empty for manually entered postings. Title, Company and
// Description remain empty until extraction succeeds.
type JobPosting struct {
	ID          string      `json:"id"`
	SourceURL   string      `json:"sourceUrl,omitempty"`
	Domain      string      `json:"domain,omitempty"`
	Source      string      `json:"source,omitempty"`
	Title       string      `json:"title,omitempty"`
	Company     string      `json:"company,omitempty"`
	Description string      `json:"description,omitempty"`
	Status      Status      `json:"status"`
	Provenance  *Provenance `json:"provenance,omitempty"`
	RawSnapshot string      `json:"-"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Validate returns an error if the posting contains invalid fields.
// A complete posting must carry both a title and a description.
func (p *JobPosting) Validate() error {
	switch p.Status {
	case StatusPending, StatusFetching, StatusFailed, StatusManual, StatusComplete:
	default:
		return Errorf(EINVALID, "invalid posting status %q", p.Status)
	}
	if p.SourceURL == "" && p.Status != StatusManual {
		return Errorf(EINVALID, "posting source URL required")
	}
	if p.SourceURL != "" {
		u, err := url.Parse(p.SourceURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Errorf(EINVALID, "posting source URL must be http or https")
		}
	}
	if p.Status == StatusComplete && (p.Title == "" || p.Description == "") {
		return Errorf(EINVALID, "complete posting requires title and description")
	}
	if p.Status == StatusManual && (p.Title == "" || p.Description == "") {
		return Errorf(EINVALID, "manual posting requires title and description")
	}
	return nil
}

// NormalizeDomain extracts the normalized domain from a URL: lowercased
// host with any port and leading "www." removed. Returns an empty string
// if the URL cannot be parsed.
func NormalizeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// PostingService represents the storage boundary for job postings.
// The extraction core never deletes postings; deletion is an external
// concern.
type PostingService interface {
	// CreatePosting creates a new posting. Returns EINVALID if the
	// posting fails validation.
	CreatePosting(ctx context.Context, posting *JobPosting) error

	// FindPostingByID retrieves a posting by ID.
	// Returns ENOTFOUND if the posting does not exist.
	FindPostingByID(ctx context.Context, id string) (*JobPosting, error)

	// SavePosting persists the posting's mutable fields (status, result
	// fields, provenance, snapshot). Returns ENOTFOUND if the posting
	// does not exist.
	SavePosting(ctx context.Context, posting *JobPosting) error

	// FindPostings retrieves postings matching the filter.
	FindPostings(ctx context.Context, filter PostingFilter) ([]*JobPosting, error)
}

// PostingFilter represents a filter for FindPostings.
type PostingFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Domain    *string `json:"domain"`
	Status    *Status `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
