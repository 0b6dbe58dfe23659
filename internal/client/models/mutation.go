package models

import (
	"encoding/json"
	"time"
)

// Action is the kind of local write recorded in the mutation queue.
type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Mutation is one pending local write awaiting replay against the remote.
// Entries for the same record replay in creation order; the queue entry is
// removed only after the remote confirms the replay.
type Mutation struct {
	ID        int64
	TableName string
	Action    Action
	RecordID  string
	// Data is the serialized row snapshot at write time. For DELETE entries
	// it holds only the record id.
	Data      json.RawMessage
	CreatedAt time.Time
}

// SyncState records the pull watermark for one mirrored table. It only moves
// forward, and only after a fully applied pull batch.
type SyncState struct {
	TableName    string
	LastSyncedAt time.Time
}
