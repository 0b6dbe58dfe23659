package mutations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvilks/wayfarer/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE mutation_queue (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  table_name TEXT NOT NULL,
  action TEXT NOT NULL,
  record_id TEXT NOT NULL,
  data TEXT NOT NULL,
  created_at TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func enqueue(t *testing.T, r *SQLiteRepository, table string, action models.Action, recordID string, at time.Time) *models.Mutation {
	t.Helper()
	m := &models.Mutation{
		TableName: table,
		Action:    action,
		RecordID:  recordID,
		Data:      []byte(`{"id":"` + recordID + `"}`),
		CreatedAt: at,
	}
	require.NoError(t, r.Enqueue(context.Background(), m))
	return m
}

func TestEnqueue_AssignsMonotonicIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	m1 := enqueue(t, r, models.TableTrips, models.ActionInsert, "t1", at)
	m2 := enqueue(t, r, models.TableTrips, models.ActionUpdate, "t1", at)

	assert.Greater(t, m2.ID, m1.ID)
}

func TestListPending_CreationOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	enqueue(t, r, models.TableExpenses, models.ActionInsert, "e1", at)
	enqueue(t, r, models.TableExpenses, models.ActionUpdate, "e1", at.Add(time.Second))
	// same created_at as the first entry: id breaks the tie
	enqueue(t, r, models.TableTrips, models.ActionInsert, "t1", at)

	got, err := r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e1", got[0].RecordID)
	assert.Equal(t, models.ActionInsert, got[0].Action)
	assert.Equal(t, "t1", got[1].RecordID)
	assert.Equal(t, models.ActionUpdate, got[2].Action)
}

func TestDequeue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	m := enqueue(t, r, models.TableTrips, models.ActionInsert, "t1", at)

	require.NoError(t, r.Dequeue(ctx, m.ID))

	n, err := r.CountPending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// second dequeue of the same entry is an error, not a silent no-op
	require.Error(t, r.Dequeue(ctx, m.ID))
}

func TestListPendingFor_Filters(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	enqueue(t, r, models.TableTrips, models.ActionInsert, "t1", at)
	enqueue(t, r, models.TableTrips, models.ActionDelete, "t2", at)
	enqueue(t, r, models.TableMemories, models.ActionInsert, "m1", at)

	got, err := r.ListPendingFor(ctx, models.TableTrips, "")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = r.ListPendingFor(ctx, models.TableTrips, models.ActionDelete)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].RecordID)

	got, err = r.ListPendingFor(ctx, "", models.ActionInsert)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPendingInsertIDs(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	at := time.Now().UTC()

	enqueue(t, r, models.TableTrips, models.ActionInsert, "t1", at)
	enqueue(t, r, models.TableTrips, models.ActionUpdate, "t2", at)
	enqueue(t, r, models.TableExpenses, models.ActionInsert, "e1", at)

	ids, err := r.PendingInsertIDs(ctx, models.TableTrips)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1"}, ids)
}

func TestUpdateData(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	m := enqueue(t, r, models.TableMemories, models.ActionInsert, "m1", time.Now().UTC())

	rewritten := []byte(`{"id":"m1","image_url":"https://cdn.example.com/memory-images/u1/x.jpg"}`)
	require.NoError(t, r.UpdateData(ctx, m.ID, rewritten))

	got, err := r.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.JSONEq(t, string(rewritten), string(got[0].Data))
}
