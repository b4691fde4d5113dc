// Package presence tracks whether the content database can be reached.
package presence

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/parroquia/contentadmin/internal/logging"
)

// DefaultProbeTimeout bounds a single ping.
const DefaultProbeTimeout = 3 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Watcher reports database reachability. A watcher without a pinger is
// never available, which is how a missing DSN shows up to the pages.
type Watcher struct {
	pinger       Pinger
	logger       logging.Logger
	probeTimeout time.Duration
	available    atomic.Bool
}

// NewWatcher returns a watcher that starts out available when p is non-nil.
// Call Check or Run to probe for real.
func NewWatcher(p Pinger, logger logging.Logger) *Watcher {
	if logger == nil {
		logger = logging.Discard()
	}
	w := &Watcher{pinger: p, logger: logger, probeTimeout: DefaultProbeTimeout}
	w.available.Store(p != nil)
	return w
}

func (w *Watcher) Available() bool {
	return w.available.Load()
}

// Check pings once and records the result.
func (w *Watcher) Check(ctx context.Context) bool {
	if w.pinger == nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, w.probeTimeout)
	err := w.pinger.PingContext(pingCtx)
	cancel()

	ok := err == nil
	if prev := w.available.Swap(ok); prev != ok {
		if ok {
			w.logger.Info(ctx, "database reachable")
		} else {
			w.logger.Warn(ctx, "database unreachable", "error", err)
		}
	}
	return ok
}

// Run calls Check every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	if w.pinger == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
