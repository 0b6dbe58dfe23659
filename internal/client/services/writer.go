// Package services implements the offline-first engine: the optimistic write
// path, the push/pull sync cycle and the connectivity monitor that drives it.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/client/session"
	"github.com/pvilks/wayfarer/internal/client/store"
	"github.com/pvilks/wayfarer/internal/common"
	"github.com/pvilks/wayfarer/internal/logging"
)

// Writer is the optimistic write path. Every change lands in the local store
// and the mutation queue inside one transaction, so either both happen or
// neither does. When the device is online a push is triggered after commit,
// fire-and-forget; the caller never waits on the remote.
type Writer struct {
	store *store.Store
	sess  *session.Session
	log   logging.Logger

	now     func() time.Time
	online  func() bool
	trigger func()
}

func NewWriter(st *store.Store, sess *session.Session, log logging.Logger) *Writer {
	return &Writer{
		store: st,
		sess:  sess,
		log:   log.With("component", "writer"),
		now:   time.Now,
	}
}

// SetSyncHook wires the post-commit trigger: online reports current
// connectivity and trigger kicks the syncer. Both are optional; without them
// writes stay purely local until the next sync cycle.
func (w *Writer) SetSyncHook(online func() bool, trigger func()) {
	w.online = online
	w.trigger = trigger
}

// Create stores a new record and queues its INSERT. A missing id is assigned
// here, so the caller gets the final identity back immediately.
func (w *Writer) Create(ctx context.Context, row models.Row) error {
	if row.RowID() == "" {
		row.SetRowID(uuid.NewString())
	}
	row.SetOwner(w.sess.UserID())
	row.Touch(w.now())
	row.MarkSynced(false)

	err := w.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if err := r.InsertRow(ctx, row); err != nil {
			return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
		}
		return w.enqueue(ctx, r, row, models.ActionInsert)
	})
	if err != nil {
		return err
	}

	w.afterCommit()
	return nil
}

// Update rewrites an existing record and queues its UPDATE.
func (w *Writer) Update(ctx context.Context, row models.Row) error {
	row.Touch(w.now())
	row.MarkSynced(false)

	err := w.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if err := r.UpdateRow(ctx, row); err != nil {
			return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
		}
		return w.enqueue(ctx, r, row, models.ActionUpdate)
	})
	if err != nil {
		return err
	}

	w.afterCommit()
	return nil
}

// Delete removes a record and queues its DELETE. The queue payload carries
// only the id; nothing else survives the row.
func (w *Writer) Delete(ctx context.Context, table, id string) error {
	payload, err := json.Marshal(map[string]string{"id": id})
	if err != nil {
		return err
	}

	err = w.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if err := r.DeleteRow(ctx, table, id); err != nil {
			return fmt.Errorf("%w: %w", common.ErrStoreWrite, err)
		}
		m := &models.Mutation{
			TableName: table,
			Action:    models.ActionDelete,
			RecordID:  id,
			Data:      payload,
			CreatedAt: w.now(),
		}
		if err := r.Mutations.Enqueue(ctx, m); err != nil {
			return fmt.Errorf("%w: %w", common.ErrQueueWrite, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	w.afterCommit()
	return nil
}

func (w *Writer) enqueue(ctx context.Context, r *store.Repos, row models.Row, action models.Action) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrQueueWrite, err)
	}
	m := &models.Mutation{
		TableName: row.Table(),
		Action:    action,
		RecordID:  row.RowID(),
		Data:      data,
		CreatedAt: w.now(),
	}
	if err := r.Mutations.Enqueue(ctx, m); err != nil {
		return fmt.Errorf("%w: %w", common.ErrQueueWrite, err)
	}
	return nil
}

func (w *Writer) afterCommit() {
	if w.online != nil && w.online() && w.trigger != nil {
		w.trigger()
	}
}
