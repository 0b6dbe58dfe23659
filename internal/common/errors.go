// Package common defines shared constants and sentinel errors used across
// the Wayfarer client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrStoreRead  = errors.New("local store read failed")
	ErrStoreWrite = errors.New("local store write failed")

	// ErrQueueWrite means a local change was applied but could not be
	// recorded in the mutation queue. The whole optimistic write must be
	// rolled back when this happens, otherwise the change would never
	// reach the remote and would be clobbered by the next pull.
	ErrQueueWrite = errors.New("mutation queue write failed")

	// Sync-level errors.
	ErrNetwork        = errors.New("network unavailable")
	ErrRemoteRejected = errors.New("remote rejected mutation")
	ErrUploadFailed   = errors.New("media upload failed")
)
