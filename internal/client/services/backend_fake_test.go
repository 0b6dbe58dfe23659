package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"time"

	"github.com/pvilks/wayfarer/internal/client/models"
	"github.com/pvilks/wayfarer/internal/common"
)

// errNet is what a dropped connection looks like to the classifier.
var errNet = &net.OpError{Op: "dial", Err: errors.New("connection refused")}

type remoteRow struct {
	row       models.Row
	updatedAt time.Time
}

// fakeBackend is an in-memory remote. Tests script failures through pingErr,
// failAfterWrites (network error once N replays succeeded) and rejectIDs
// (non-network rejection for specific records).
type fakeBackend struct {
	mu     sync.Mutex
	tables map[string]map[string]remoteRow

	pingErr         error
	failAfterWrites int // -1 disables
	writes          int
	rejectIDs       map[string]bool

	calls []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tables:          make(map[string]map[string]remoteRow),
		failAfterWrites: -1,
		rejectIDs:       make(map[string]bool),
	}
}

// put seeds a remote row directly, bypassing the failure scripting.
func (b *fakeBackend) put(row models.Row, updatedAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.tables[row.Table()]
	if t == nil {
		t = make(map[string]remoteRow)
		b.tables[row.Table()] = t
	}
	t[row.RowID()] = remoteRow{row: row, updatedAt: updatedAt}
}

func (b *fakeBackend) remove(table, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tables[table], id)
}

func (b *fakeBackend) has(table, id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.tables[table][id]
	return ok
}

func (b *fakeBackend) get(table, id string) (models.Row, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.tables[table][id]
	if !ok {
		return nil, false
	}
	return r.row, true
}

func (b *fakeBackend) writeAllowed(id string) error {
	if b.failAfterWrites >= 0 && b.writes >= b.failAfterWrites {
		return fmt.Errorf("%w: %w", common.ErrNetwork, errNet)
	}
	if b.rejectIDs[id] {
		return fmt.Errorf("%w: constraint violated", common.ErrRemoteRejected)
	}
	b.writes++
	return nil
}

func (b *fakeBackend) Ping(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pingErr
}

func (b *fakeBackend) Insert(ctx context.Context, row models.Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, fmt.Sprintf("INSERT %s %s", row.Table(), row.RowID()))
	if err := b.writeAllowed(row.RowID()); err != nil {
		return err
	}
	t := b.tables[row.Table()]
	if t == nil {
		t = make(map[string]remoteRow)
		b.tables[row.Table()] = t
	}
	t[row.RowID()] = remoteRow{row: row, updatedAt: time.Now()}
	return nil
}

func (b *fakeBackend) Update(ctx context.Context, row models.Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, fmt.Sprintf("UPDATE %s %s", row.Table(), row.RowID()))
	if err := b.writeAllowed(row.RowID()); err != nil {
		return err
	}
	t := b.tables[row.Table()]
	if _, ok := t[row.RowID()]; !ok {
		return fmt.Errorf("%w: %s %s does not exist", common.ErrRemoteRejected, row.Table(), row.RowID())
	}
	t[row.RowID()] = remoteRow{row: row, updatedAt: time.Now()}
	return nil
}

func (b *fakeBackend) Delete(ctx context.Context, table, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, fmt.Sprintf("DELETE %s %s", table, id))
	if err := b.writeAllowed(id); err != nil {
		return err
	}
	delete(b.tables[table], id)
	return nil
}

func (b *fakeBackend) FetchSince(ctx context.Context, table string, since time.Time) ([]models.Row, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pingErr != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrNetwork, errNet)
	}
	var out []remoteRow
	for _, r := range b.tables[table] {
		if r.updatedAt.After(since) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].updatedAt.Before(out[j].updatedAt) })
	rows := make([]models.Row, 0, len(out))
	for _, r := range out {
		rows = append(rows, r.row)
	}
	return rows, nil
}

func (b *fakeBackend) FetchIDs(ctx context.Context, table string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pingErr != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrNetwork, errNet)
	}
	var ids []string
	for id := range b.tables[table] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (b *fakeBackend) Close() {}

// fakeUploader records uploads and returns deterministic public URLs.
type fakeUploader struct {
	mu      sync.Mutex
	uploads map[string][]byte // "bucket/key"
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (u *fakeUploader) UploadFile(ctx context.Context, bucket, key string, data []byte) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	u.uploads[bucket+"/"+key] = data
	return fmt.Sprintf("https://cdn.test/%s/%s", bucket, key), nil
}
