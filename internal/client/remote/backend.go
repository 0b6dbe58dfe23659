// Package remote talks to the hosted side of the sync protocol: the
// relational store holding the canonical tables and the object storage
// holding uploaded media. The sync engine never touches either directly, it
// goes through the Backend and Uploader interfaces so tests can substitute
// in-memory fakes.
package remote

import (
	"context"
	"time"

	"github.com/pvilks/wayfarer/internal/client/models"
)

// Backend is the canonical remote store. Every method classifies its
// failures: connectivity problems come back matching common.ErrNetwork,
// everything else matching common.ErrRemoteRejected.
type Backend interface {
	// Ping is the connectivity probe used by the monitor.
	Ping(ctx context.Context) error

	// Insert replays a queued INSERT.
	Insert(ctx context.Context, row models.Row) error

	// Update replays a queued UPDATE. Updating a record that no longer
	// exists remotely is a rejection, not a silent success.
	Update(ctx context.Context, row models.Row) error

	// Delete replays a queued DELETE. Deleting an already absent record
	// succeeds.
	Delete(ctx context.Context, table, id string) error

	// FetchSince returns the rows of a table changed strictly after the
	// watermark, oldest first.
	FetchSince(ctx context.Context, table string, since time.Time) ([]models.Row, error)

	// FetchIDs returns the full remote id set of a table, for deletion
	// reconciliation.
	FetchIDs(ctx context.Context, table string) ([]string, error)

	Close()
}

// Uploader stores media bytes and returns the public URL to reference them by.
type Uploader interface {
	UploadFile(ctx context.Context, bucket, key string, data []byte) (string, error)
}

// Media buckets, one per table that carries an image column.
const (
	BucketTripImages   = "trip-images"
	BucketMemoryImages = "memory-images"
	BucketAvatars      = "avatars"
)

// BucketFor maps a mirrored table to its media bucket. Tables without media
// map to the empty string.
func BucketFor(table string) string {
	switch table {
	case models.TableTrips:
		return BucketTripImages
	case models.TableMemories:
		return BucketMemoryImages
	case models.TableProfiles:
		return BucketAvatars
	}
	return ""
}
