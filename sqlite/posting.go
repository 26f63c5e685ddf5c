package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/mwalto/jobpost"
)

// Compile-time interface verification.
var _ jobpost.PostingService = (*PostingService)(nil)

// PostingService implements jobpost.PostingService using SQLite.
type PostingService struct {
	db *DB
}

// NewPostingService creates a new PostingService.
func NewPostingService(db *DB) *PostingService {
	return &PostingService{db: db}
}

// CreatePosting creates a new posting. The status defaults to pending
// and the domain is derived from the source URL when unset.
func (s *PostingService) CreatePosting(ctx context.Context, posting *jobpost.JobPosting) error {
	if posting.Status == "" {
		posting.Status = jobpost.StatusPending
	}
	if posting.Domain == "" && posting.SourceURL != "" {
		posting.Domain = jobpost.NormalizeDomain(posting.SourceURL)
	}
	if err := posting.Validate(); err != nil {
		return err
	}

	posting.ID = uuid.New().String()
	now := time.Now().UTC()
	posting.CreatedAt = now
	posting.UpdatedAt = now

	provenance, err := marshalProvenance(posting.Provenance)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO postings (id, source_url, domain, source, title, company, description,
			status, provenance, raw_snapshot, snapshot_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, posting.ID, posting.SourceURL, posting.Domain, posting.Source,
		posting.Title, posting.Company, posting.Description,
		string(posting.Status), provenance, posting.RawSnapshot, snapshotHash(posting.RawSnapshot),
		posting.CreatedAt.Format(time.RFC3339), posting.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindPostingByID retrieves a posting by ID.
func (s *PostingService) FindPostingByID(ctx context.Context, id string) (*jobpost.JobPosting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, domain, source, title, company, description,
			status, provenance, raw_snapshot, created_at, updated_at
		FROM postings
		WHERE id = ?
	`, id)

	posting, err := scanPosting(row.Scan)
	if err == sql.ErrNoRows {
		return nil, jobpost.Errorf(jobpost.ENOTFOUND, "posting not found")
	}
	if err != nil {
		return nil, err
	}
	return posting, nil
}

// SavePosting persists the posting's mutable fields.
func (s *PostingService) SavePosting(ctx context.Context, posting *jobpost.JobPosting) error {
	if err := posting.Validate(); err != nil {
		return err
	}

	posting.UpdatedAt = time.Now().UTC()

	provenance, err := marshalProvenance(posting.Provenance)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE postings
		SET title = ?, company = ?, description = ?, status = ?, provenance = ?,
			raw_snapshot = ?, snapshot_hash = ?, updated_at = ?
		WHERE id = ?
	`, posting.Title, posting.Company, posting.Description, string(posting.Status),
		provenance, posting.RawSnapshot, snapshotHash(posting.RawSnapshot),
		posting.UpdatedAt.Format(time.RFC3339), posting.ID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return jobpost.Errorf(jobpost.ENOTFOUND, "posting not found")
	}
	return nil
}

// FindPostings retrieves postings matching the filter.
func (s *PostingService) FindPostings(ctx context.Context, filter jobpost.PostingFilter) ([]*jobpost.JobPosting, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, source_url, domain, source, title, company, description,
		status, provenance, raw_snapshot, created_at, updated_at FROM postings WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Domain != nil {
		query.WriteString(" AND domain = ?")
		args = append(args, *filter.Domain)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var postings []*jobpost.JobPosting
	for rows.Next() {
		posting, err := scanPosting(rows.Scan)
		if err != nil {
			return nil, err
		}
		postings = append(postings, posting)
	}
	return postings, rows.Err()
}

// scanPosting scans one posting row via the given Scan function.
func scanPosting(scan func(dest ...any) error) (*jobpost.JobPosting, error) {
	var posting jobpost.JobPosting
	var status, provenance, createdAt, updatedAt string

	if err := scan(&posting.ID, &posting.SourceURL, &posting.Domain, &posting.Source,
		&posting.Title, &posting.Company, &posting.Description,
		&status, &provenance, &posting.RawSnapshot, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	posting.Status = jobpost.Status(status)
	if provenance != "" {
		posting.Provenance = &jobpost.Provenance{}
		if err := json.Unmarshal([]byte(provenance), posting.Provenance); err != nil {
			return nil, fmt.Errorf("failed to parse provenance: %w", err)
		}
	}

	var err error
	if posting.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if posting.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &posting, nil
}

func marshalProvenance(p *jobpost.Provenance) (string, error) {
	if p == nil {
		return "", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal provenance: %w", err)
	}
	return string(data), nil
}

// snapshotHash fingerprints the raw snapshot so identical re-fetches
// are detectable without comparing full page bodies.
func snapshotHash(snapshot string) string {
	if snapshot == "" {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(snapshot))
}
