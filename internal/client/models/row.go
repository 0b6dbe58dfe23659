// Package models defines the mirrored-table records cached locally, the
// mutation-queue entry describing a pending local write, and the per-table
// sync watermark.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Mirrored table names. SyncOrder fixes the sequence tables are pulled in;
// parents come before children so freshly pulled foreign keys resolve.
const (
	TableTrips    = "trips"
	TableExpenses = "expenses"
	TableMemories = "memories"
	TableProfiles = "profiles"
)

var SyncOrder = []string{TableTrips, TableExpenses, TableMemories, TableProfiles}

// TimeFormat is the canonical timestamp layout for locally stored rows.
// Nanoseconds are zero-padded so the strings compare correctly as text.
const TimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// FormatTime renders t for storage in a local column.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime reads a timestamp written by FormatTime (or any RFC 3339 value
// delivered by the remote). An empty string parses as the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// Epoch is the low-water default for a table that has never been pulled.
var Epoch = time.Unix(0, 0).UTC()

// Row is implemented by every mirrored-table record. The concrete type is
// determined by the table name, which lets queue payloads be decoded into
// the right shape and mismatches rejected (see DecodeRow).
type Row interface {
	Table() string
	RowID() string

	// SetRowID assigns a client-generated identifier to a new record.
	SetRowID(id string)
	// SetOwner stamps the record with the signed-in user's id.
	SetOwner(userID string)
	// Touch updates UpdatedAt (and CreatedAt when still zero).
	Touch(now time.Time)
	// MarkSynced flips the advisory is_synced flag. The mutation queue, not
	// this flag, is authoritative for "needs to be pushed".
	MarkSynced(ok bool)
}

// MediaRow is a Row carrying a single image reference that may still point
// at a not-yet-uploaded local file.
type MediaRow interface {
	Row
	ImageRef() string
	SetImageRef(ref string)
}

// IsLocalRef reports whether an image reference still names a local file:
// anything non-empty that is not an http(s) URL.
func IsLocalRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "http")
}

// DecodeRow unmarshals a queue payload into the concrete row type for its
// table. Unknown tables are rejected rather than passed through untyped.
func DecodeRow(table string, data []byte) (Row, error) {
	var row Row
	switch table {
	case TableTrips:
		row = &Trip{}
	case TableExpenses:
		row = &Expense{}
	case TableMemories:
		row = &Memory{}
	case TableProfiles:
		row = &Profile{}
	default:
		return nil, fmt.Errorf("unknown table %q", table)
	}
	if err := json.Unmarshal(data, row); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", table, err)
	}
	return row, nil
}

// KnownTable reports whether name is one of the mirrored tables.
func KnownTable(name string) bool {
	switch name {
	case TableTrips, TableExpenses, TableMemories, TableProfiles:
		return true
	}
	return false
}
