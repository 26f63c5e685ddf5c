package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwalto/jobpost"
)

// Compile-time interface verification.
var _ jobpost.AttemptService = (*AttemptService)(nil)

// AttemptService implements jobpost.AttemptService using SQLite.
// Attempt rows are append-only; there is no update path.
type AttemptService struct {
	db *DB
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(db *DB) *AttemptService {
	return &AttemptService{db: db}
}

// AppendFetchAttempt appends an attempt to the posting's audit trail.
func (s *AttemptService) AppendFetchAttempt(ctx context.Context, attempt *jobpost.FetchAttempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	attempt.ID = uuid.New().String()
	attempt.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fetch_attempts (id, posting_id, method, response_code, duration_ms, success, error, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, attempt.PostingID, string(attempt.Method), attempt.ResponseCode,
		attempt.DurationMS, attempt.Success, attempt.Error, attempt.Note,
		attempt.CreatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "FOREIGN KEY") {
		return jobpost.Errorf(jobpost.ENOTFOUND, "posting not found")
	}
	return err
}

// FindAttemptsByPosting retrieves all attempts for a posting in creation order.
func (s *AttemptService) FindAttemptsByPosting(ctx context.Context, postingID string) ([]*jobpost.FetchAttempt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, posting_id, method, response_code, duration_ms, success, error, note, created_at
		FROM fetch_attempts
		WHERE posting_id = ?
		ORDER BY rowid ASC
	`, postingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*jobpost.FetchAttempt
	for rows.Next() {
		var attempt jobpost.FetchAttempt
		var method, createdAt string

		if err := rows.Scan(&attempt.ID, &attempt.PostingID, &method, &attempt.ResponseCode,
			&attempt.DurationMS, &attempt.Success, &attempt.Error, &attempt.Note, &createdAt); err != nil {
			return nil, err
		}
		attempt.Method = jobpost.Method(method)
		if attempt.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}
	return attempts, rows.Err()
}
