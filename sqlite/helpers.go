package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseRFC3339 decodes a stored RFC3339 timestamp, naming the column so
// a scan failure points at the offending field.
func parseRFC3339(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %s: %w", column, err)
	}
	return t, nil
}

// appendPagination adds LIMIT/OFFSET clauses to the query being built.
// Zero values mean unbounded and add nothing.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
