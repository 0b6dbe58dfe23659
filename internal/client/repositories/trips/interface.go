package trips

import (
	"context"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Repository describes local CRUD and sync-support operations for trips.
// Implementations are backed by the local SQLite database.
type Repository interface {
	// Insert adds a new trip row.
	Insert(ctx context.Context, t *models.Trip) error

	// Update rewrites the domain fields of an existing trip.
	Update(ctx context.Context, t *models.Trip) error

	// Upsert inserts a trip or overwrites every column of an existing one.
	// Used by pull, where the remote copy wins.
	Upsert(ctx context.Context, t *models.Trip) error

	// Delete removes a trip; expenses and memories referencing it cascade.
	Delete(ctx context.Context, id string) error

	// GetByID returns one trip or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Trip, error)

	// GetAll lists every cached trip ordered by start date.
	GetAll(ctx context.Context) ([]models.Trip, error)

	// ListIDs returns the full local id set, for deletion reconciliation.
	ListIDs(ctx context.Context) ([]string, error)

	// DeleteByIDs removes the given ids in one statement.
	DeleteByIDs(ctx context.Context, ids []string) error

	// SetCoverImage rewrites only the cover image reference, after a
	// successful media upload.
	SetCoverImage(ctx context.Context, id, ref string) error
}
