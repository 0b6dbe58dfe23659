package syncstate

import (
	"context"
	"time"
)

// Repository tracks the per-table pull watermark: the updated_at boundary of
// remote data already applied locally.
type Repository interface {
	// Get returns the watermark for a table, or the epoch when the table has
	// never been pulled.
	Get(ctx context.Context, table string) (time.Time, error)

	// Set advances the watermark. Attempts to move it backwards are ignored,
	// keeping the watermark monotonically non-decreasing.
	Set(ctx context.Context, table string, t time.Time) error

	// ResetAll drops every watermark back to the epoch. Only forceFullResync
	// uses this.
	ResetAll(ctx context.Context) error
}
