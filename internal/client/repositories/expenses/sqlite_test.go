package expenses

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/common"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE expenses (
  id TEXT PRIMARY KEY,
  trip_id TEXT NOT NULL,
  user_id TEXT NOT NULL DEFAULT '',
  amount REAL NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  date TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  is_synced INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func sampleExpense(id, tripID string, amount float64) *models.Expense {
	now := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	return &models.Expense{
		ID:        id,
		TripID:    tripID,
		UserID:    "u1",
		Amount:    amount,
		Category:  "food",
		Date:      now,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestInsertUpdateGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := sampleExpense("e1", "t1", 50)
	require.NoError(t, r.Insert(ctx, e))

	e.Amount = 75
	require.NoError(t, r.Update(ctx, e))

	got, err := r.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 75.0, got.Amount)
	assert.Equal(t, "t1", got.TripID)
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Update(context.Background(), sampleExpense("ghost", "t1", 1))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsert_NoDuplicates(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	e := sampleExpense("e1", "t1", 50)
	require.NoError(t, r.Upsert(ctx, e))
	e.Amount = 60
	require.NoError(t, r.Upsert(ctx, e))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 60.0, all[0].Amount)
}

func TestGetByTripID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sampleExpense("e1", "t1", 10)))
	require.NoError(t, r.Insert(ctx, sampleExpense("e2", "t2", 20)))
	require.NoError(t, r.Insert(ctx, sampleExpense("e3", "t1", 30)))

	got, err := r.GetByTripID(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, "t1", e.TripID)
	}
}

func TestListIDsAndDeleteByIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sampleExpense("e1", "t1", 10)))
	require.NoError(t, r.Insert(ctx, sampleExpense("e2", "t1", 20)))

	require.NoError(t, r.DeleteByIDs(ctx, []string{"e1"}))

	ids, err := r.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2"}, ids)
}
