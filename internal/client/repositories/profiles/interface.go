package profiles

import (
	"context"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Repository describes local CRUD and sync-support operations for profiles.
type Repository interface {
	Insert(ctx context.Context, p *models.Profile) error
	Update(ctx context.Context, p *models.Profile) error

	// Upsert inserts a profile or overwrites every column of an existing
	// one. Used by pull, where the remote copy wins.
	Upsert(ctx context.Context, p *models.Profile) error

	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)

	// GetByUserID returns the profile owned by a user, or common.ErrNotFound.
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	GetAll(ctx context.Context) ([]models.Profile, error)
	ListIDs(ctx context.Context) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) error

	// SetAvatarURL rewrites only the avatar reference, after a successful
	// media upload.
	SetAvatarURL(ctx context.Context, id, ref string) error
}
