package expenses

import (
	"context"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Repository describes local CRUD and sync-support operations for expenses.
type Repository interface {
	Insert(ctx context.Context, e *models.Expense) error
	Update(ctx context.Context, e *models.Expense) error

	// Upsert inserts an expense or overwrites every column of an existing
	// one. Used by pull, where the remote copy wins.
	Upsert(ctx context.Context, e *models.Expense) error

	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.Expense, error)

	// GetAll lists every cached expense, newest date first.
	GetAll(ctx context.Context) ([]models.Expense, error)

	// GetByTripID lists the expenses of one trip, newest date first.
	GetByTripID(ctx context.Context, tripID string) ([]models.Expense, error)

	ListIDs(ctx context.Context) ([]string, error)
	DeleteByIDs(ctx context.Context, ids []string) error
}
