package expenses

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

const selectColumns = `id, trip_id, user_id, amount, category, description, date, created_at, updated_at, is_synced`

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (id, trip_id, user_id, amount, category, description, date, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TripID, e.UserID, e.Amount, e.Category, e.Description,
		models.FormatTime(e.Date),
		models.FormatTime(e.CreatedAt), models.FormatTime(e.UpdatedAt),
		dbx.BoolToInt(e.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, e *models.Expense) error {
	query := `UPDATE expenses SET amount = ?, category = ?, description = ?, date = ?, updated_at = ?, is_synced = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Amount, e.Category, e.Description, models.FormatTime(e.Date),
		models.FormatTime(e.UpdatedAt), dbx.BoolToInt(e.IsSynced), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return fmt.Errorf("expense %s: %w", e.ID, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (id, trip_id, user_id, amount, category, description, date, created_at, updated_at, is_synced)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				trip_id = excluded.trip_id,
				user_id = excluded.user_id,
				amount = excluded.amount,
				category = excluded.category,
				description = excluded.description,
				date = excluded.date,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at,
				is_synced = excluded.is_synced`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TripID, e.UserID, e.Amount, e.Category, e.Description,
		models.FormatTime(e.Date),
		models.FormatTime(e.CreatedAt), models.FormatTime(e.UpdatedAt),
		dbx.BoolToInt(e.IsSynced))
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Expense, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM expenses ORDER BY date DESC, id`)
}

func (r *SQLiteRepository) GetByTripID(ctx context.Context, tripID string) ([]models.Expense, error) {
	return r.list(ctx, `SELECT `+selectColumns+` FROM expenses WHERE trip_id = ? ORDER BY date DESC, id`, tripID)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListIDs(ctx context.Context) ([]string, error) {
	return dbx.ListStrings(ctx, r.db, `SELECT id FROM expenses`)
}

func (r *SQLiteRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM expenses WHERE id IN (` + dbx.Placeholders(len(ids)) + `)`
	_, err := r.db.ExecContext(ctx, query, dbx.StringArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to delete expenses: %w", err)
	}
	return nil
}

func scanExpense(scan func(dest ...any) error) (*models.Expense, error) {
	var e models.Expense
	var date, created, updated string
	var synced int
	if err := scan(&e.ID, &e.TripID, &e.UserID, &e.Amount, &e.Category, &e.Description, &date, &created, &updated, &synced); err != nil {
		return nil, err
	}
	var err error
	if e.Date, err = models.ParseTime(date); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = models.ParseTime(created); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = models.ParseTime(updated); err != nil {
		return nil, err
	}
	e.IsSynced = synced != 0
	return &e, nil
}
