package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mwalto/jobpost"
)

// Compile-time interface verification.
var _ jobpost.SelectorService = (*SelectorService)(nil)

// SelectorService implements jobpost.SelectorService using SQLite.
// Counter updates are single UPSERT statements so concurrent pipeline
// runs for the same domain never lose increments.
type SelectorService struct {
	db *DB
}

// NewSelectorService creates a new SelectorService.
func NewSelectorService(db *DB) *SelectorService {
	return &SelectorService{db: db}
}

// FindDomainSelector retrieves the cache entry for a domain.
func (s *SelectorService) FindDomainSelector(ctx context.Context, domain string) (*jobpost.DomainSelector, error) {
	var ds jobpost.DomainSelector
	var selectors, updatedAt string
	var lastSuccess sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT domain, selectors, last_success, success_count, failure_count, updated_at
		FROM domain_selectors
		WHERE domain = ?
	`, domain).Scan(&ds.Domain, &selectors, &lastSuccess, &ds.SuccessCount, &ds.FailureCount, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, jobpost.Errorf(jobpost.ENOTFOUND, "no selectors for domain %q", domain)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(selectors), &ds.Selectors); err != nil {
		return nil, fmt.Errorf("failed to parse selectors: %w", err)
	}
	if lastSuccess.Valid {
		t, err := parseRFC3339(lastSuccess.String, "last_success")
		if err != nil {
			return nil, err
		}
		ds.LastSuccess = &t
	}
	if ds.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &ds, nil
}

// UpsertDomainSelector creates or replaces the cache entry.
func (s *SelectorService) UpsertDomainSelector(ctx context.Context, sel *jobpost.DomainSelector) error {
	if err := sel.Validate(); err != nil {
		return err
	}

	sel.UpdatedAt = time.Now().UTC()

	selectors, err := marshalSelectors(sel.Selectors)
	if err != nil {
		return err
	}
	var lastSuccess any
	if sel.LastSuccess != nil {
		lastSuccess = sel.LastSuccess.UTC().Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO domain_selectors (domain, selectors, last_success, success_count, failure_count, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(domain) DO UPDATE SET
			selectors = excluded.selectors,
			last_success = excluded.last_success,
			success_count = excluded.success_count,
			failure_count = excluded.failure_count,
			updated_at = excluded.updated_at
	`, sel.Domain, selectors, lastSuccess, sel.SuccessCount, sel.FailureCount,
		sel.UpdatedAt.Format(time.RFC3339))
	return err
}

// RecordSuccess atomically increments the domain's success counter and
// stamps last_success. Non-empty discovered selectors replace the
// stored list; an empty discovery keeps whatever is cached.
func (s *SelectorService) RecordSuccess(ctx context.Context, domain string, discovered []jobpost.Selector) error {
	if domain == "" {
		return jobpost.Errorf(jobpost.EINVALID, "domain required")
	}

	selectors, err := marshalSelectors(discovered)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO domain_selectors (domain, selectors, last_success, success_count, failure_count, updated_at)
		VALUES (?, ?, ?, 1, 0, ?)
		ON CONFLICT(domain) DO UPDATE SET
			success_count = success_count + 1,
			last_success = excluded.last_success,
			selectors = CASE WHEN excluded.selectors != '[]' THEN excluded.selectors ELSE selectors END,
			updated_at = excluded.updated_at
	`, domain, selectors, now, now)
	return err
}

// RecordFailure atomically increments the domain's failure counter.
func (s *SelectorService) RecordFailure(ctx context.Context, domain string) error {
	if domain == "" {
		return jobpost.Errorf(jobpost.EINVALID, "domain required")
	}

	now := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO domain_selectors (domain, selectors, success_count, failure_count, updated_at)
		VALUES (?, '[]', 0, 1, ?)
		ON CONFLICT(domain) DO UPDATE SET
			failure_count = failure_count + 1,
			updated_at = excluded.updated_at
	`, domain, now)
	return err
}

func marshalSelectors(selectors []jobpost.Selector) (string, error) {
	if len(selectors) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(selectors)
	if err != nil {
		return "", fmt.Errorf("failed to marshal selectors: %w", err)
	}
	return string(data), nil
}
