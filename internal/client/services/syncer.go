package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/client/remote"
	"github.com/pvilks/wayfarer/internal/client/session"
	"github.com/pvilks/wayfarer/internal/client/store"
	"github.com/pvilks/wayfarer/internal/common"
	"github.com/pvilks/wayfarer/internal/logging"
)

// Syncer runs the push/pull cycle. A mutex makes cycles single-flight: a
// trigger arriving while a cycle is in flight is dropped, never queued up
// behind it, so bursts of triggers collapse into one run. Overlapping pushes
// would double-replay queue entries.
type Syncer struct {
	store    *store.Store
	backend  remote.Backend
	uploader remote.Uploader
	sess     *session.Session
	log      logging.Logger

	now      func() time.Time
	readFile func(name string) ([]byte, error)
	online   func() bool

	mu   sync.Mutex
	kick chan struct{}
}

func NewSyncer(st *store.Store, backend remote.Backend, uploader remote.Uploader, sess *session.Session, log logging.Logger) *Syncer {
	return &Syncer{
		store:    st,
		backend:  backend,
		uploader: uploader,
		sess:     sess,
		log:      log.With("component", "syncer"),
		now:      time.Now,
		readFile: os.ReadFile,
		kick:     make(chan struct{}, 1),
	}
}

// SetOnline wires the connectivity check consulted at the top of push.
func (s *Syncer) SetOnline(fn func() bool) {
	s.online = fn
}

// TriggerSync requests a cycle without blocking. The one-slot buffer means a
// trigger during a running cycle schedules at most one follow-up.
func (s *Syncer) TriggerSync() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Run consumes triggers until ctx is cancelled. Cycle failures are absorbed
// here; the next trigger starts fresh.
func (s *Syncer) Run(ctx context.Context) {
	for {
		select {
		case <-s.kick:
			if err := s.Sync(ctx); err != nil {
				s.log.Error(ctx, "sync cycle failed", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Sync runs one push-then-pull cycle. Returns nil immediately when a cycle
// is already in flight.
func (s *Syncer) Sync(ctx context.Context) error {
	if !s.mu.TryLock() {
		s.log.Debug(ctx, "sync already in flight, trigger dropped")
		return nil
	}
	defer s.mu.Unlock()

	if err := s.push(ctx); err != nil {
		return err
	}
	s.pull(ctx)
	return nil
}

// Push drains the mutation queue without pulling.
func (s *Syncer) Push(ctx context.Context) error {
	if !s.mu.TryLock() {
		return nil
	}
	defer s.mu.Unlock()
	return s.push(ctx)
}

// Pull refreshes the local cache without pushing. Per-table failures are
// logged, never raised; a partial pull converges on the next cycle.
func (s *Syncer) Pull(ctx context.Context) {
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()
	s.pull(ctx)
}

// ForceFullResync drops every watermark back to the epoch and pulls
// everything again. Recovery hatch for a suspected local/remote divergence;
// safe because pull upserts are idempotent.
func (s *Syncer) ForceFullResync(ctx context.Context) error {
	if !s.mu.TryLock() {
		return nil
	}
	defer s.mu.Unlock()

	if err := s.store.SyncState.ResetAll(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	s.log.Info(ctx, "watermarks reset, running full pull")
	s.pull(ctx)
	return nil
}

// push replays pending mutations in creation order. A network failure stops
// the batch at the failing entry, preserving order for the next attempt. Any
// other failure leaves the entry queued and moves on.
func (s *Syncer) push(ctx context.Context) error {
	if s.online != nil && !s.online() {
		s.log.Debug(ctx, "push skipped, offline")
		return nil
	}

	pending, err := s.store.Mutations.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreRead, err)
	}
	if len(pending) == 0 {
		return nil
	}

	replayed := 0
	for i := range pending {
		m := &pending[i]

		if err := s.stageMedia(ctx, m); err != nil {
			s.log.Warn(ctx, "media upload failed, entry skipped this pass",
				"id", m.ID, "table", m.TableName, "error", err)
			continue
		}

		if err := s.replay(ctx, m); err != nil {
			if remote.IsNetwork(err) {
				s.log.Warn(ctx, "network failure, push stopped",
					"replayed", replayed, "remaining", len(pending)-i, "error", err)
				return err
			}
			s.log.Error(ctx, "mutation rejected by remote, left queued",
				"id", m.ID, "table", m.TableName, "action", m.Action, "error", err)
			continue
		}

		if err := s.store.Mutations.Dequeue(ctx, m.ID); err != nil {
			return fmt.Errorf("%w: %w", common.ErrQueueWrite, err)
		}
		replayed++
	}

	s.log.Info(ctx, "push finished", "replayed", replayed, "pending", len(pending)-replayed)
	return nil
}

// stageMedia uploads a local image referenced by the entry's payload and
// rewrites the reference to the returned public URL, in the cached row and
// in the queue payload both, so neither a retry nor a later pull ever sees
// the local path again. Entries without media, or whose media is already a
// public URL, pass through untouched.
func (s *Syncer) stageMedia(ctx context.Context, m *models.Mutation) error {
	if m.Action == models.ActionDelete {
		return nil
	}
	bucket := remote.BucketFor(m.TableName)
	if bucket == "" {
		return nil
	}

	row, err := models.DecodeRow(m.TableName, m.Data)
	if err != nil {
		return err
	}
	media, ok := row.(models.MediaRow)
	if !ok || !models.IsLocalRef(media.ImageRef()) {
		return nil
	}

	path := strings.TrimPrefix(media.ImageRef(), "file://")
	data, err := s.readFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrUploadFailed, err)
	}

	key := fmt.Sprintf("%s/%d-%s%s", s.sess.UserID(), s.now().UnixNano(), uuid.NewString(), filepath.Ext(path))
	url, err := s.uploader.UploadFile(ctx, bucket, key, data)
	if err != nil {
		return err
	}

	media.SetImageRef(url)
	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if err := r.SetRowImageRef(ctx, m.TableName, m.RecordID, url); err != nil {
			return err
		}
		return r.Mutations.UpdateData(ctx, m.ID, payload)
	})
	if err != nil {
		return err
	}

	m.Data = payload
	return nil
}

func (s *Syncer) replay(ctx context.Context, m *models.Mutation) error {
	switch m.Action {
	case models.ActionInsert:
		row, err := models.DecodeRow(m.TableName, m.Data)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrRemoteRejected, err)
		}
		return s.backend.Insert(ctx, row)
	case models.ActionUpdate:
		row, err := models.DecodeRow(m.TableName, m.Data)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrRemoteRejected, err)
		}
		return s.backend.Update(ctx, row)
	case models.ActionDelete:
		return s.backend.Delete(ctx, m.TableName, m.RecordID)
	}
	return fmt.Errorf("%w: unknown action %q", common.ErrRemoteRejected, m.Action)
}

// pull runs incremental fetches for every table in parent-first order, then
// a deletion reconciliation pass. Each table is independent: one table
// failing leaves the others applied and its own watermark untouched.
func (s *Syncer) pull(ctx context.Context) {
	for _, table := range models.SyncOrder {
		if err := s.pullTable(ctx, table); err != nil {
			s.log.Warn(ctx, "pull aborted for table", "table", table, "error", err)
		}
	}
	for _, table := range models.SyncOrder {
		if err := s.pullDeletions(ctx, table); err != nil {
			s.log.Warn(ctx, "deletion reconciliation aborted", "table", table, "error", err)
		}
	}
}

func (s *Syncer) pullTable(ctx context.Context, table string) error {
	since, err := s.store.SyncState.Get(ctx, table)
	if err != nil {
		return err
	}

	rows, err := s.backend.FetchSince(ctx, table, since)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	// The watermark advances to the wall clock of this pull, not the max row
	// timestamp. A remote write committed during the fetch may be re-fetched
	// once more; the upsert makes that harmless.
	now := s.now()

	err = s.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		for _, row := range rows {
			row.MarkSynced(true)
			if err := r.UpsertRow(ctx, row); err != nil {
				return err
			}
		}
		return r.SyncState.Set(ctx, table, now)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}

	s.log.Info(ctx, "pulled table", "table", table, "rows", len(rows))
	return nil
}

// pullDeletions removes cached rows deleted remotely: local ids minus remote
// ids, protecting records whose INSERT is still queued locally.
func (s *Syncer) pullDeletions(ctx context.Context, table string) error {
	remoteIDs, err := s.backend.FetchIDs(ctx, table)
	if err != nil {
		return err
	}
	localIDs, err := s.store.ListRowIDs(ctx, table)
	if err != nil {
		return err
	}
	pendingIDs, err := s.store.Mutations.PendingInsertIDs(ctx, table)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(remoteIDs)+len(pendingIDs))
	for _, id := range remoteIDs {
		keep[id] = struct{}{}
	}
	for _, id := range pendingIDs {
		keep[id] = struct{}{}
	}

	var stale []string
	for _, id := range localIDs {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	if len(stale) == 0 {
		return nil
	}

	if err := s.store.DeleteRowsByIDs(ctx, table, stale); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
	}
	s.log.Info(ctx, "reconciled remote deletions", "table", table, "removed", len(stale))
	return nil
}
