package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pvilks/wayfarer/internal/common"
)

// IsNetwork reports whether err is a connectivity failure rather than a
// rejection by the remote. Classification is structural: error types and
// sentinel values, never message substrings.
func IsNetwork(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, common.ErrNetwork) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err)
}

// classify wraps err with the sentinel matching its kind, so callers decide
// with errors.Is instead of re-running the structural checks.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if IsNetwork(err) {
		return fmt.Errorf("%w: %w", common.ErrNetwork, err)
	}
	return fmt.Errorf("%w: %w", common.ErrRemoteRejected, err)
}
