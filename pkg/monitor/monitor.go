// Package monitor runs periodic watchlist sweeps in the background.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/xinguang/stock-sentinel/pkg/alert"
	"github.com/xinguang/stock-sentinel/pkg/logger"
	"github.com/xinguang/stock-sentinel/pkg/market"
	"github.com/xinguang/stock-sentinel/pkg/watchlist"
)

const (
	// DefaultInterval is the sweep cadence
	DefaultInterval = 30 * time.Minute

	// pollTick is how often the runner checks whether the cadence elapsed
	pollTick = 60 * time.Second
)

// Monitor periodically evaluates the whole watchlist against current prices.
// It shares the store with the agent loop; all store access goes through the
// store's synchronized methods and price lookups happen outside its lock.
type Monitor struct {
	store *watchlist.Store
	src   market.Source
	log   *logger.Logger

	mu       sync.Mutex
	interval time.Duration
	lastRun  time.Time

	// Report receives each sweep report; defaults to logging
	Report func(report string)
}

// New creates a monitor over the given store and price source
func New(store *watchlist.Store, src market.Source) *Monitor {
	m := &Monitor{
		store:    store,
		src:      src,
		log:      logger.New("monitor"),
		interval: DefaultInterval,
	}
	m.Report = func(report string) {
		m.log.Info("%s", report)
	}
	return m
}

// SetInterval reconfigures the sweep cadence. The schedule_monitoring
// operation calls this from the agent loop while Run may be ticking.
func (m *Monitor) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	m.mu.Lock()
	m.interval = d
	m.mu.Unlock()
}

// Interval returns the current sweep cadence
func (m *Monitor) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.interval
}

// Run sweeps once immediately, then keeps sweeping whenever the cadence has
// elapsed, polling on a coarse tick. It blocks until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.log.Info("🔄 Starting continuous monitoring (every %s)", m.Interval())

	m.sweep(ctx)

	ticker := time.NewTicker(pollTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("🛑 Monitoring stopped")
			return
		case <-ticker.C:
			m.mu.Lock()
			due := time.Since(m.lastRun) >= m.interval
			m.mu.Unlock()
			if due {
				m.sweep(ctx)
			}
		}
	}
}

func (m *Monitor) sweep(ctx context.Context) {
	m.mu.Lock()
	m.lastRun = time.Now()
	m.mu.Unlock()

	if m.store.Len() == 0 {
		m.log.Info("📭 No stocks in watchlist to monitor")
		return
	}

	m.Report(alert.MonitorAll(ctx, m.store, m.src))
}
