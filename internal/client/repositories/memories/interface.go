package memories

import (
	"context"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Repository describes local CRUD and sync-support operations for memories.
type Repository interface {
	Insert(ctx context.Context, m *models.Memory) error
	Update(ctx context.Context, m *models.Memory) error

	// Upsert inserts a memory or overwrites every column of an existing
	// one. Used by pull, where the remote copy wins.
	Upsert(ctx context.Context, m *models.Memory) error

	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Memory, error)
	GetAll(ctx context.Context) ([]models.Memory, error)

	// GetByTripID lists the memories of one trip, newest first.
	GetByTripID(ctx context.Context, tripID string) ([]models.Memory, error)

	ListIDs(ctx context.Context) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) error

	// SetImageURL rewrites only the image reference, after a successful
	// media upload.
	SetImageURL(ctx context.Context, id, ref string) error
}
