package profiles

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
CREATE TABLE profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL DEFAULT '',
  display_name TEXT NOT NULL DEFAULT '',
  avatar_url TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  is_synced INTEGER NOT NULL DEFAULT 0
);
`)
	require.NoError(t, err)
	return db
}

func sampleProfile(id, userID string) *models.Profile {
	now := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	return &models.Profile{
		ID:          id,
		UserID:      userID,
		DisplayName: "Maya",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestInsertAndGetByUserID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Insert(ctx, sampleProfile("p1", "u1")))

	got, err := r.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Maya", got.DisplayName)

	_, err = r.GetByUserID(ctx, "nobody")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpsertAndSetAvatarURL(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	p := sampleProfile("p1", "u1")
	p.AvatarURL = "/tmp/avatar.png"
	require.NoError(t, r.Upsert(ctx, p))

	p.DisplayName = "Maya K."
	require.NoError(t, r.Upsert(ctx, p))

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Maya K.", all[0].DisplayName)

	require.NoError(t, r.SetAvatarURL(ctx, "p1", "https://cdn.example.com/avatars/u1/a.png"))
	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/u1/a.png", got.AvatarURL)
}

func TestUpdate_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.Update(context.Background(), sampleProfile("ghost", "u1"))
	require.ErrorIs(t, err, common.ErrNotFound)
}
