package syncstate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, table string) (time.Time, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT last_synced_at FROM sync_state WHERE table_name = ?`, table).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Epoch, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get sync state for %s: %w", table, err)
	}
	t, err := models.ParseTime(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sync state for %s: %w", table, err)
	}
	return t, nil
}

// Set upserts the watermark. The conflict clause only applies values that are
// newer than the stored one, so the watermark never moves backwards; the
// fixed-width timestamp format makes the string comparison safe.
func (r *SQLiteRepository) Set(ctx context.Context, table string, t time.Time) error {
	query := `INSERT INTO sync_state (table_name, last_synced_at) VALUES (?, ?)
			ON CONFLICT(table_name) DO UPDATE SET last_synced_at = excluded.last_synced_at
			WHERE excluded.last_synced_at > sync_state.last_synced_at`
	_, err := r.db.ExecContext(ctx, query, table, models.FormatTime(t))
	if err != nil {
		return fmt.Errorf("failed to set sync state for %s: %w", table, err)
	}
	return nil
}

func (r *SQLiteRepository) ResetAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sync_state`)
	if err != nil {
		return fmt.Errorf("failed to reset sync state: %w", err)
	}
	return nil
}
