package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"socialfeed/internal/domain"
)

// Timestamps are stored as fixed-width UTC text so that ORDER BY on the
// column is chronological.
const (
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
	dateLayout      = "2006-01-02"
)

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// ============================================================================
// Null Type Conversion Helpers
// ============================================================================

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// stringToNull stores empty strings as NULL
func stringToNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// ============================================================================
// Time Helpers
// ============================================================================

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

// dateToNull stores the zero time as NULL
func dateToNull(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

func nullToDate(ns sql.NullString) (time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", ns.String, err)
	}
	return t, nil
}

// ============================================================================
// Result Helpers
// ============================================================================

// lookupError maps a single-row query error onto the domain taxonomy
func lookupError(err error, resource string, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(resource, id)
	}
	return domain.NewStorageError("get "+resource, err)
}

// expectOneRow reports NotFound when a keyed UPDATE or DELETE touched nothing
func expectOneRow(res sql.Result, op, resource string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStorageError(op+" "+resource, err)
	}
	if n == 0 {
		return domain.NewNotFound(resource, id)
	}
	return nil
}
