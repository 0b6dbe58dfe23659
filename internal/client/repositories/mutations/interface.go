package mutations

import (
	"context"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Repository is the durable mutation queue: an append-only log of local
// writes that have not yet been confirmed by the remote.
type Repository interface {
	// Enqueue appends one entry. A failure here must fail the whole
	// optimistic write, so callers run it in the same transaction as the
	// local change.
	Enqueue(ctx context.Context, m *models.Mutation) error

	// Dequeue removes an entry after its replay was confirmed by the remote.
	Dequeue(ctx context.Context, id int64) error

	// ListPending returns all entries in creation order (ties broken by id).
	ListPending(ctx context.Context) ([]models.Mutation, error)

	// ListPendingFor narrows ListPending to one table and/or action; empty
	// arguments mean "any".
	ListPendingFor(ctx context.Context, table string, action models.Action) ([]models.Mutation, error)

	// PendingInsertIDs returns the record ids of queued INSERT entries for a
	// table. Deletion reconciliation must never remove these rows: they do
	// not exist remotely yet.
	PendingInsertIDs(ctx context.Context, table string) ([]string, error)

	// UpdateData replaces an entry's payload, used after a media upload
	// rewrites an image reference.
	UpdateData(ctx context.Context, id int64, data []byte) error

	// CountPending reports the queue depth.
	CountPending(ctx context.Context) (int, error)
}
