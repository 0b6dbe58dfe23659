package trips

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
CREATE TABLE trips (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  destination TEXT NOT NULL DEFAULT '',
  start_date TEXT NOT NULL DEFAULT '',
  end_date TEXT NOT NULL DEFAULT '',
  budget REAL NOT NULL DEFAULT 0,
  cover_image TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  is_synced INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func sampleTrip(id string) *models.Trip {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &models.Trip{
		ID:          id,
		UserID:      "u1",
		Destination: "Lisbon",
		StartDate:   time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Budget:      1500,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	in := sampleTrip("t1")
	require.NoError(t, r.Insert(ctx, in))

	got, err := r.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.True(t, got.StartDate.Equal(in.StartDate))
	assert.True(t, got.EndDate.Equal(in.EndDate))
	assert.Equal(t, 1500.0, got.Budget)
	assert.False(t, got.IsSynced)
}

func TestGetByID_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	trip := sampleTrip("t1")
	require.NoError(t, r.Insert(ctx, trip))

	trip.Destination = "Porto"
	trip.Budget = 900
	require.NoError(t, r.Update(ctx, trip))

	got, err := r.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Porto", got.Destination)
	assert.Equal(t, 900.0, got.Budget)
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Update(context.Background(), sampleTrip("ghost"))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsert_InsertThenOverwrite(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	trip := sampleTrip("t1")
	require.NoError(t, r.Upsert(ctx, trip))

	trip.Destination = "Madeira"
	trip.IsSynced = true
	require.NoError(t, r.Upsert(ctx, trip))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "upsert must not duplicate rows")
	assert.Equal(t, "Madeira", all[0].Destination)
	assert.True(t, all[0].IsSynced)
}

func TestListIDsAndDeleteByIDs(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, r.Insert(ctx, sampleTrip(id)))
	}

	ids, err := r.ListIDs(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)

	require.NoError(t, r.DeleteByIDs(ctx, []string{"a", "c"}))
	ids, err = r.ListIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids)

	// empty set is a no-op
	require.NoError(t, r.DeleteByIDs(ctx, nil))
}

func TestSetCoverImage(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	trip := sampleTrip("t1")
	trip.CoverImage = "/tmp/cover.jpg"
	require.NoError(t, r.Insert(ctx, trip))

	require.NoError(t, r.SetCoverImage(ctx, "t1", "https://cdn.example.com/trip-images/u1/1.jpg"))

	got, err := r.GetByID(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/trip-images/u1/1.jpg", got.CoverImage)
}
