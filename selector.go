package jobpost

import (
	"context"
	"time"
)

// SelectorType identifies the selector language.
type SelectorType string

// Selector types. XPath selectors are stored but never executed; only
// CSS selectors are applied during extraction.
const (
	SelectorCSS   SelectorType = "css"
	SelectorXPath SelectorType = "xpath"
)

// Field identifies which job-posting field a selector targets.
type Field string

// Selector target fields.
const (
	FieldTitle       Field = "title"
	FieldCompany     Field = "company"
	FieldDescription Field = "description"
)

// Selector is a single extraction rule discovered for a domain.
type Selector struct {
	Type       SelectorType `json:"type"`
	Field      Field        `json:"field"`
	Value      string       `json:"value"`
	Source     Method       `json:"source"`
	Confidence float64      `json:"confidence"`
}

// Validate returns an error if the selector contains invalid fields.
func (s *Selector) Validate() error {
	if s.Value == "" {
		return Errorf(EINVALID, "selector value required")
	}
	switch s.Type {
	case SelectorCSS, SelectorXPath:
	default:
		return Errorf(EINVALID, "invalid selector type %q", s.Type)
	}
	switch s.Field {
	case FieldTitle, FieldCompany, FieldDescription:
	default:
		return Errorf(EINVALID, "invalid selector field %q", s.Field)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return Errorf(EINVALID, "selector confidence must be in [0,1]")
	}
	return nil
}

// DomainSelector holds the selectors and outcome counters for one
// normalized domain. It is shared mutable state across concurrent
// pipeline runs; implementations must update counters atomically.
type DomainSelector struct {
	Domain       string     `json:"domain"`
	Selectors    []Selector `json:"selectors"`
	LastSuccess  *time.Time `json:"lastSuccess,omitempty"`
	SuccessCount int        `json:"successCount"`
	FailureCount int        `json:"failureCount"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Validate returns an error if the domain selector contains invalid fields.
func (d *DomainSelector) Validate() error {
	if d.Domain == "" {
		return Errorf(EINVALID, "domain required")
	}
	for i := range d.Selectors {
		if err := d.Selectors[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SelectorService represents the storage boundary for the domain selector
// cache. RecordSuccess and RecordFailure exist so counter updates are a
// single atomic operation per attempt; a read-then-upsert sequence would
// lose updates under concurrent runs for the same domain.
type SelectorService interface {
	// FindDomainSelector retrieves the cache entry for a domain.
	// Returns ENOTFOUND if no entry exists.
	FindDomainSelector(ctx context.Context, domain string) (*DomainSelector, error)

	// UpsertDomainSelector creates or replaces the cache entry.
	UpsertDomainSelector(ctx context.Context, sel *DomainSelector) error

	// RecordSuccess atomically increments the domain's success counter,
	// stamps last_success, and merges any newly discovered selectors.
	// The entry is created if it does not exist.
	RecordSuccess(ctx context.Context, domain string, discovered []Selector) error

	// RecordFailure atomically increments the domain's failure counter,
	// creating the entry if it does not exist.
	RecordFailure(ctx context.Context, domain string) error
}
