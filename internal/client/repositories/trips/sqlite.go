package trips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/common"
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

func (r *SQLiteRepository) Insert(ctx context.Context, t *models.Trip) error {
	query := `INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Destination,
		models.FormatTime(t.StartDate), models.FormatTime(t.EndDate),
		t.Budget, t.CoverImage,
		models.FormatTime(t.CreatedAt), models.FormatTime(t.UpdatedAt),
		dbx.BoolToInt(t.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, t *models.Trip) error {
	query := `UPDATE trips SET destination = ?, start_date = ?, end_date = ?, budget = ?, cover_image = ?, updated_at = ?, is_synced = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Destination, models.FormatTime(t.StartDate), models.FormatTime(t.EndDate),
		t.Budget, t.CoverImage, models.FormatTime(t.UpdatedAt), dbx.BoolToInt(t.IsSynced), t.ID)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("trip %s: %w", t.ID, common.ErrNotFound)
	}
	return nil
}

// Upsert inserts or overwrites every column by primary key. The remote copy
// wins wholesale, which keeps repeated pulls idempotent.
func (r *SQLiteRepository) Upsert(ctx context.Context, t *models.Trip) error {
	query := `INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				destination = excluded.destination,
				start_date = excluded.start_date,
				end_date = excluded.end_date,
				budget = excluded.budget,
				cover_image = excluded.cover_image,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				is_synced = excluded.is_synced`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Destination,
		models.FormatTime(t.StartDate), models.FormatTime(t.EndDate),
		t.Budget, t.CoverImage,
		models.FormatTime(t.CreatedAt), models.FormatTime(t.UpdatedAt),
		dbx.BoolToInt(t.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to upsert trip: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM trips WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Trip, error) {
	query := `SELECT id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at, is_synced
			FROM trips WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTrip(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Trip, error) {
	query := `SELECT id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at, is_synced
			FROM trips ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select trips: %w", err)
	}
	defer rows.Close()

	var result []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]string, error) {
	return dbx.ListStrings(ctx, r.db, `SELECT id FROM trips`)
}

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM trips WHERE id IN (` + dbx.Placeholders(len(ids)) + `)`
	_, err := r.db.ExecContext(ctx, query, dbx.StringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to delete trips: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetCoverImage(ctx context.Context, id, ref string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE trips SET cover_image = ? WHERE id = ?`, ref, id)
	if err != nil {
		return fmt.Errorf("failed to set trip cover image: %w", err)
	}
	return nil
}

func scanTrip(scan func(dest ...any) error) (*models.Trip, error) {
	var t models.Trip
	var start, end, created, updated string
	var synced int
	if err := scan(&t.ID, &t.UserID, &t.Destination, &start, &end, &t.Budget, &t.CoverImage, &created, &updated, &synced); err != nil {
		return nil, err
	}
	var err error
	if t.StartDate, err = models.ParseTime(start); err != nil {
		return nil, err
	}
	if t.EndDate, err = models.ParseTime(end); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, err
	}
	t.IsSynced = synced != 0
	return &t, nil
}

