package sync

import (
	"context"
	"log/slog"
	"time"
)

// Poller re-runs a refresh function on a fixed interval to approximate
// real-time updates. It blocks in Run until the context is cancelled,
// so a view teardown that cancels its context also stops the timer --
// no timer leaks across view transitions.
type Poller struct {
	name     string
	interval time.Duration
	refresh  func(ctx context.Context) error
}

// NewPoller creates a poller for the named resource.
func NewPoller(name string, interval time.Duration, refresh func(ctx context.Context) error) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		refresh:  refresh,
	}
}

// Run starts the polling loop. It blocks until ctx is cancelled.
// Refresh failures are logged and swallowed; a flaky backend must not
// produce a new alert every cycle.
func (p *Poller) Run(ctx context.Context) {
	slog.Info("poller started",
		"resource", p.name,
		"interval", p.interval.String(),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("poller stopped",
				"resource", p.name,
				"reason", "context_cancelled",
			)
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("poll refresh failed",
					"resource", p.name,
					"error", err,
				)
			}
		}
	}
}
