package memories

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

const selectColumns = `id, trip_id, user_id, image_url, caption, taken_at, created_at, updated_at, is_synced`

func (r *SQLiteRepository) Insert(ctx context.Context, m *models.Memory) error {
	query := `INSERT INTO memories (id, trip_id, user_id, image_url, caption, taken_at, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.TripID, m.UserID, m.ImageURL, m.Caption,
		models.FormatTime(m.TakenAt),
		models.FormatTime(m.CreatedAt), models.FormatTime(m.UpdatedAt),
		dbx.BoolToInt(m.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to insert memory: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, m *models.Memory) error {
	query := `UPDATE memories SET image_url = ?, caption = ?, taken_at = ?, updated_at = ?, is_synced = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.ImageURL, m.Caption, models.FormatTime(m.TakenAt),
		models.FormatTime(m.UpdatedAt), dbx.BoolToInt(m.IsSynced), m.ID)
	if err != nil {
		return fmt.Errorf("failed to update memory: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("memory %s: %w", m.ID, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, m *models.Memory) error {
	query := `INSERT INTO memories (id, trip_id, user_id, image_url, caption, taken_at, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				trip_id = excluded.trip_id,
				user_id = excluded.user_id,
				image_url = excluded.image_url,
				caption = excluded.caption,
				taken_at = excluded.taken_at,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				is_synced = excluded.is_synced`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.TripID, m.UserID, m.ImageURL, m.Caption,
		models.FormatTime(m.TakenAt),
		models.FormatTime(m.CreatedAt), models.FormatTime(m.UpdatedAt),
		dbx.BoolToInt(m.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to upsert memory: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Memory, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM memories WHERE id = ?`, id)
	m, err := scanMemory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("memory %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get memory: %w", err)
	}
	return m, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Memory, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM memories ORDER BY taken_at DESC, id`)
}

func (r *SQLiteRepository) GetByTripID(ctx context.Context, tripID string) ([]models.Memory, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM memories WHERE trip_id = ? ORDER BY taken_at DESC, id`, tripID)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Memory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select memories: %w", err)
	}
	defer rows.Close()

	var result []models.Memory
	for rows.Next() {
		m, err := scanMemory(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]string, error) {
	return dbx.ListStrings(ctx, r.db, `SELECT id FROM memories`)
}

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM memories WHERE id IN (` + dbx.Placeholders(len(ids)) + `)`
	_, err := r.db.ExecContext(ctx, query, dbx.StringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to delete memories: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetImageURL(ctx context.Context, id, ref string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE memories SET image_url = ? WHERE id = ?`, ref, id)
	if err != nil {
		return fmt.Errorf("failed to set memory image: %w", err)
	}
	return nil
}

func scanMemory(scan func(dest ...any) error) (*models.Memory, error) {
	var m models.Memory
	var taken, created, updated string
	var synced int
	if err := scan(&m.ID, &m.TripID, &m.UserID, &m.ImageURL, &m.Caption, &taken, &created, &updated, &synced); err != nil {
		return nil, err
	}
	var err error
	if m.TakenAt, err = models.ParseTime(taken); err != nil {
		return nil, err
	}
	if m.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, err
	}
	m.IsSynced = synced != 0
	return &m, nil
}
