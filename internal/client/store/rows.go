package store

import (
	"context"
	"fmt"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// The sync engine works on models.Row values decoded from queue payloads or
// pull batches. These helpers route a row to the repository for its table so
// the engine does not repeat the table switch everywhere.

// InsertRow adds row via the repository for its table.
func (r *Repos) InsertRow(ctx context.Context, row models.Row) error {
	switch v := row.(type) {
	case *models.Trip:
		return r.Trips.Insert(ctx, v)
	case *models.Expense:
		return r.Expenses.Insert(ctx, v)
	case *models.Memory:
		return r.Memories.Insert(ctx, v)
	case *models.Profile:
		return r.Profiles.Insert(ctx, v)
	default:
		return fmt.Errorf("unknown row type %T", row)
	}
}

// UpdateRow rewrites row via the repository for its table.
func (r *Repos) UpdateRow(ctx context.Context, row models.Row) error {
	switch v := row.(type) {
	case *models.Trip:
		return r.Trips.Update(ctx, v)
	case *models.Expense:
		return r.Expenses.Update(ctx, v)
	case *models.Memory:
		return r.Memories.Update(ctx, v)
	case *models.Profile:
		return r.Profiles.Update(ctx, v)
	default:
		return fmt.Errorf("unknown row type %T", row)
	}
}

// UpsertRow inserts or overwrites row. Pull uses this: the remote copy wins.
func (r *Repos) UpsertRow(ctx context.Context, row models.Row) error {
	switch v := row.(type) {
	case *models.Trip:
		return r.Trips.Upsert(ctx, v)
	case *models.Expense:
		return r.Expenses.Upsert(ctx, v)
	case *models.Memory:
		return r.Memories.Upsert(ctx, v)
	case *models.Profile:
		return r.Profiles.Upsert(ctx, v)
	default:
		return fmt.Errorf("unknown row type %T", row)
	}
}

// DeleteRow removes one record from the named table.
func (r *Repos) DeleteRow(ctx context.Context, table, id string) error {
	switch table {
	case models.TableTrips:
		return r.Trips.Delete(ctx, id)
	case models.TableExpenses:
		return r.Expenses.Delete(ctx, id)
	case models.TableMemories:
		return r.Memories.Delete(ctx, id)
	case models.TableProfiles:
		return r.Profiles.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}

// SetRowImageRef rewrites only the image reference of one record, after a
// media upload. Expenses carry no media.
func (r *Repos) SetRowImageRef(ctx context.Context, table, id, ref string) error {
	switch table {
	case models.TableTrips:
		return r.Trips.SetCoverImage(ctx, id, ref)
	case models.TableMemories:
		return r.Memories.SetImageURL(ctx, id, ref)
	case models.TableProfiles:
		return r.Profiles.SetAvatarURL(ctx, id, ref)
	default:
		return fmt.Errorf("table %q has no image column", table)
	}
}

// ListRowIDs returns the full local id set of the named table, for deletion
// reconciliation.
func (r *Repos) ListRowIDs(ctx context.Context, table string) ([]string, error) {
	switch table {
	case models.TableTrips:
		return r.Trips.ListIDs(ctx)
	case models.TableExpenses:
		return r.Expenses.ListIDs(ctx)
	case models.TableMemories:
		return r.Memories.ListIDs(ctx)
	case models.TableProfiles:
		return r.Profiles.ListIDs(ctx)
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
}

// DeleteRowsByIDs removes the given ids from the named table in one statement.
func (r *Repos) DeleteRowsByIDs(ctx context.Context, table string, ids []string) error {
	switch table {
	case models.TableTrips:
		return r.Trips.DeleteByIDs(ctx, ids)
	case models.TableExpenses:
		return r.Expenses.DeleteByIDs(ctx, ids)
	case models.TableMemories:
		return r.Memories.DeleteByIDs(ctx, ids)
	case models.TableProfiles:
		return r.Profiles.DeleteByIDs(ctx, ids)
	default:
		return fmt.Errorf("unknown table %q", table)
	}
}
