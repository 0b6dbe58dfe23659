package dbx

import (
	"context"
	"fmt"
	"strings"
)

// Placeholders returns "?, ?, ... ?" with n markers, for IN clauses.
func Placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// StringArgs widens a string slice for ExecContext/QueryContext.
func StringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// BoolToInt maps a Go bool onto the 0/1 convention used by our SQLite columns.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ListStrings runs a single-column query and collects the values.
func ListStrings(ctx context.Context, db DBTX, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %q: %w", query, err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
