package mutations

import (
	"context"
	"fmt"

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

func (r *SQLiteRepository) Enqueue(ctx context.Context, m *models.Mutation) error {
	query := `INSERT INTO mutation_queue (table_name, action, record_id, data, created_at)
			VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		m.TableName, string(m.Action), m.RecordID, string(m.Data),
		models.FormatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read mutation id: %w", err)
	}
	m.ID = id
	return nil
}

// Dequeue removes one entry. It expects the entry to exist; dequeueing the
// same entry twice indicates a double replay.
func (r *SQLiteRepository) Dequeue(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mutation_queue WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to dequeue mutation: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count dequeueing %d: %d", id, ra)
	}
	return nil
}

func (r *SQLiteRepository) ListPending(ctx context.Context) ([]models.Mutation, error) {
	return r.list(ctx, `SELECT id, table_name, action, record_id, data, created_at
			FROM mutation_queue ORDER BY created_at, id`)
}

func (r *SQLiteRepository) ListPendingFor(ctx context.Context, table string, action models.Action) ([]models.Mutation, error) {
	query := `SELECT id, table_name, action, record_id, data, created_at FROM mutation_queue WHERE 1=1`
	var args []any
	if table != "" {
		query += ` AND table_name = ?`
		args = append(args, table)
	}
	if action != "" {
		query += ` AND action = ?`
		args = append(args, string(action))
	}
	query += ` ORDER BY created_at, id`
	return r.list(ctx, query, args...)
}

func (r *SQLiteRepository) PendingInsertIDs(ctx context.Context, table string) ([]string, error) {
	return dbx.ListStrings(ctx, r.db,
		`SELECT record_id FROM mutation_queue WHERE table_name = ? AND action = ?`,
		table, string(models.ActionInsert))
}

func (r *SQLiteRepository) UpdateData(ctx context.Context, id int64, data []byte) error {
	res, err := r.db.ExecContext(ctx, `UPDATE mutation_queue SET data = ? WHERE id = ?`, string(data), id)
	if err != nil {
		return fmt.Errorf("failed to update mutation payload: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra != 1 {
		return fmt.Errorf("wrong rows affected count updating %d: %d", id, ra)
	}
	return nil
}

func (r *SQLiteRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM mutation_queue`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count pending mutations: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Mutation, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select mutations: %w", err)
	}
	defer rows.Close()

	var result []models.Mutation
	for rows.Next() {
		var m models.Mutation
		var action, data, created string
		if err := rows.Scan(&m.ID, &m.TableName, &action, &m.RecordID, &data, &created); err != nil {
			return nil, err
		}
		m.Action = models.Action(action)
		m.Data = []byte(data)
		if m.CreatedAt, err = models.ParseTime(created); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
