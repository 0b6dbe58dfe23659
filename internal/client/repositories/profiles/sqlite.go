package profiles

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

const selectColumns = `id, user_id, display_name, avatar_url, created_at, updated_at, is_synced`

func (r *SQLiteRepository) Insert(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO profiles (id, user_id, display_name, avatar_url, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.DisplayName, p.AvatarURL,
		models.FormatTime(p.CreatedAt), models.FormatTime(p.UpdatedAt),
		dbx.BoolToInt(p.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, p *models.Profile) error {
	query := `UPDATE profiles SET display_name = ?, avatar_url = ?, updated_at = ?, is_synced = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.DisplayName, p.AvatarURL, models.FormatTime(p.UpdatedAt), dbx.BoolToInt(p.IsSynced), p.ID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("profile %s: %w", p.ID, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `INSERT INTO profiles (id, user_id, display_name, avatar_url, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				user_id = excluded.user_id,
				display_name = excluded.display_name,
				avatar_url = excluded.avatar_url,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				is_synced = excluded.is_synced`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.DisplayName, p.AvatarURL,
		models.FormatTime(p.CreatedAt), models.FormatTime(p.UpdatedAt),
		dbx.BoolToInt(p.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM profiles WHERE user_id = ?`, userID)
	p, err := scanProfile(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile for user %s: %w", userID, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM profiles ORDER BY display_name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select profiles: %w", err)
	}
	defer rows.Close()

	var result []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]string, error) {
	return dbx.ListStrings(ctx, r.db, `SELECT id FROM profiles`)
}

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM profiles WHERE id IN (` + dbx.Placeholders(len(ids)) + `)`
	_, err := r.db.ExecContext(ctx, query, dbx.StringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to delete profiles: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) SetAvatarURL(ctx context.Context, id, ref string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET avatar_url = ? WHERE id = ?`, ref, id)
	if err != nil {
		return fmt.Errorf("failed to set profile avatar: %w", err)
	}
	return nil
}

func scanProfile(scan func(dest ...any) error) (*models.Profile, error) {
	var p models.Profile
	var created, updated string
	var synced int
	if err := scan(&p.ID, &p.UserID, &p.DisplayName, &p.AvatarURL, &created, &updated, &synced); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, err
	}
	p.IsSynced = synced != 0
	return &p, nil
}
