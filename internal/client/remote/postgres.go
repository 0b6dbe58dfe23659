package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/common"
)

// PostgresBackend implements Backend against the hosted PostgreSQL database.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects a pool to dsn. The connection is lazy, so a
// successful return does not mean the remote is reachable; Ping decides that.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create remote pool: %w", err)
	}
	return &PostgresBackend{pool: pool}, nil
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return classify(b.pool.Ping(ctx))
}

func (b *PostgresBackend) Close() {
	b.pool.Close()
}

func (b *PostgresBackend) Insert(ctx context.Context, row models.Row) error {
	var err error
	switch v := row.(type) {
	case *models.Trip:
		_, err = b.pool.Exec(ctx,
			`INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			v.ID, v.UserID, v.Destination, v.StartDate, v.EndDate, v.Budget, v.CoverImage, v.CreatedAt, v.UpdatedAt)
	case *models.Expense:
		_, err = b.pool.Exec(ctx,
			`INSERT INTO expenses (id, trip_id, user_id, amount, category, description, date, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			v.ID, v.TripID, v.UserID, v.Amount, v.Category, v.Description, v.Date, v.CreatedAt, v.UpdatedAt)
	case *models.Memory:
		_, err = b.pool.Exec(ctx,
			`INSERT INTO memories (id, trip_id, user_id, image_url, caption, taken_at, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			v.ID, v.TripID, v.UserID, v.ImageURL, v.Caption, v.TakenAt, v.CreatedAt, v.UpdatedAt)
	case *models.Profile:
		_, err = b.pool.Exec(ctx,
			`INSERT INTO profiles (id, user_id, display_name, avatar_url, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			v.ID, v.UserID, v.DisplayName, v.AvatarURL, v.CreatedAt, v.UpdatedAt)
	default:
		return fmt.Errorf("%w: unknown row type %T", common.ErrRemoteRejected, row)
	}
	return classify(err)
}

func (b *PostgresBackend) Update(ctx context.Context, row models.Row) error {
	var tag interface{ RowsAffected() int64 }
	var err error
	switch v := row.(type) {
	case *models.Trip:
		tag, err = b.pool.Exec(ctx,
			`UPDATE trips SET destination = $2, start_date = $3, end_date = $4, budget = $5, cover_image = $6, updated_at = $7
			 WHERE id = $1`,
			v.ID, v.Destination, v.StartDate, v.EndDate, v.Budget, v.CoverImage, v.UpdatedAt)
	case *models.Expense:
		tag, err = b.pool.Exec(ctx,
			`UPDATE expenses SET trip_id = $2, amount = $3, category = $4, description = $5, date = $6, updated_at = $7
			 WHERE id = $1`,
			v.ID, v.TripID, v.Amount, v.Category, v.Description, v.Date, v.UpdatedAt)
	case *models.Memory:
		tag, err = b.pool.Exec(ctx,
			`UPDATE memories SET trip_id = $2, image_url = $3, caption = $4, taken_at = $5, updated_at = $6
			 WHERE id = $1`,
			v.ID, v.TripID, v.ImageURL, v.Caption, v.TakenAt, v.UpdatedAt)
	case *models.Profile:
		tag, err = b.pool.Exec(ctx,
			`UPDATE profiles SET display_name = $2, avatar_url = $3, updated_at = $4 WHERE id = $1`,
			v.ID, v.DisplayName, v.AvatarURL, v.UpdatedAt)
	default:
		return fmt.Errorf("%w: unknown row type %T", common.ErrRemoteRejected, row)
	}
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s %s does not exist", common.ErrRemoteRejected, row.Table(), row.RowID())
	}
	return nil
}

// Delete is idempotent: removing an already absent record is a success, the
// queued intent has been satisfied either way.
func (b *PostgresBackend) Delete(ctx context.Context, table, id string) error {
	if !models.KnownTable(table) {
		return fmt.Errorf("%w: unknown table %q", common.ErrRemoteRejected, table)
	}
	_, err := b.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	return classify(err)
}

func (b *PostgresBackend) FetchSince(ctx context.Context, table string, since time.Time) ([]models.Row, error) {
	if !models.KnownTable(table) {
		return nil, fmt.Errorf("%w: unknown table %q", common.ErrRemoteRejected, table)
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE updated_at > $1 ORDER BY updated_at, id`,
		selectColumns(table), table)
	rows, err := b.pool.Query(ctx, query, since)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var out []models.Row
	for rows.Next() {
		row, err := scanRow(table, rows)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return out, nil
}

func (b *PostgresBackend) FetchIDs(ctx context.Context, table string) ([]string, error) {
	if !models.KnownTable(table) {
		return nil, fmt.Errorf("%w: unknown table %q", common.ErrRemoteRejected, table)
	}

	rows, err := b.pool.Query(ctx, fmt.Sprintf(`SELECT id FROM %s`, table))
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, classify(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(err)
	}
	return ids, nil
}

func selectColumns(table string) string {
	switch table {
	case models.TableTrips:
		return "id, user_id, destination, start_date, end_date, budget, cover_image, created_at, updated_at"
	case models.TableExpenses:
		return "id, trip_id, user_id, amount, category, description, date, created_at, updated_at"
	case models.TableMemories:
		return "id, trip_id, user_id, image_url, caption, taken_at, created_at, updated_at"
	case models.TableProfiles:
		return "id, user_id, display_name, avatar_url, created_at, updated_at"
	}
	return ""
}

func scanRow(table string, rows pgx.Rows) (models.Row, error) {
	switch table {
	case models.TableTrips:
		t := &models.Trip{}
		err := rows.Scan(&t.ID, &t.UserID, &t.Destination, &t.StartDate, &t.EndDate, &t.Budget, &t.CoverImage, &t.CreatedAt, &t.UpdatedAt)
		return t, err
	case models.TableExpenses:
		e := &models.Expense{}
		err := rows.Scan(&e.ID, &e.TripID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.CreatedAt, &e.UpdatedAt)
		return e, err
	case models.TableMemories:
		m := &models.Memory{}
		err := rows.Scan(&m.ID, &m.TripID, &m.UserID, &m.ImageURL, &m.Caption, &m.TakenAt, &m.CreatedAt, &m.UpdatedAt)
		return m, err
	case models.TableProfiles:
		p := &models.Profile{}
		err := rows.Scan(&p.ID, &p.UserID, &p.DisplayName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
		return p, err
	}
	return nil, fmt.Errorf("unknown table %q", table)
}
