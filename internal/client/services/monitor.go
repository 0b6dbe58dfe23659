package services

import (
	"context"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pvilks/wayfarer/internal/logging"
)

// Mode is the monitor's view of remote reachability.
type Mode string

const (
	ModeUnknown Mode = "unknown"
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const probeTimeout = 3 * time.Second

// Pinger is the probe target, satisfied by remote.Backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor watches remote reachability and drives the sync cycle: one cycle
// at startup when already online, and one on every offline-to-online
// transition. It never syncs on a timer; the ticker only probes.
type Monitor struct {
	pinger   Pinger
	log      logging.Logger
	interval time.Duration
	onOnline func()

	mu   sync.RWMutex
	mode Mode
}

func NewMonitor(p Pinger, interval time.Duration, log logging.Logger) *Monitor {
	return &Monitor{
		pinger:   p,
		log:      log.With("component", "monitor"),
		interval: interval,
		mode:     ModeUnknown,
	}
}

// OnOnline registers the callback fired on each transition to online.
func (m *Monitor) OnOnline(fn func()) {
	m.onOnline = fn
}

// Mode returns the last observed state.
func (m *Monitor) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// Online reports whether the remote was reachable at the last probe.
func (m *Monitor) Online() bool {
	return m.Mode() == ModeOnline
}

// Check probes once and records the transition. The very first probe starts
// from unknown, so coming up already online counts as a transition and kicks
// the startup sync.
func (m *Monitor) Check(ctx context.Context) Mode {
	next := ModeOnline
	if err := m.probe(ctx); err != nil {
		next = ModeOffline
	}

	m.mu.Lock()
	prev := m.mode
	m.mode = next
	m.mu.Unlock()

	if prev != next {
		m.log.Info(ctx, "connectivity changed", "from", prev, "to", next)
	}
	if next == ModeOnline && prev != ModeOnline && m.onOnline != nil {
		m.onOnline()
	}
	return next
}

// probe pings the remote, retrying brief flaps so a single lost packet does
// not flip the mode.
func (m *Monitor) probe(ctx context.Context) error {
	backoff := retry.WithMaxRetries(2, retry.NewConstant(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := m.pinger.Ping(pctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// Run probes immediately, then on every tick until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
