package alarm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/glintapp/glint/pkg/store"
)

// DefaultPollInterval is the period between alarm evaluations.
const DefaultPollInterval = time.Second

// FireFunc receives the single alarm that went due on a tick.
type FireFunc func(store.PendingAlarm)

// Clock polls the registry at a fixed interval and fires at most one due
// alarm per tick. Remaining due alarms surface on subsequent ticks, which
// keeps a backlog (e.g. after the host was suspended) from producing a
// burst of notifications.
type Clock struct {
	registry *Registry
	fire     FireFunc
	interval time.Duration
	log      *zap.Logger
	lastLen  int
}

// NewClock creates a Clock over the registry. A zero interval selects
// DefaultPollInterval.
func NewClock(r *Registry, interval time.Duration, fire FireFunc, log *zap.Logger) *Clock {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Clock{
		registry: r,
		fire:     fire,
		interval: interval,
		log:      log,
		lastLen:  r.Len(),
	}
}

// Interval returns the polling period.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Tick evaluates the pending set against now. A parse failure on one
// record never blocks the others: the registry skips it and the next tick
// re-evaluates the rest.
func (c *Clock) Tick(now time.Time) {
	if a, ok := c.registry.TakeDue(now); ok {
		c.log.Info("alarm fired", zap.String("text", a.Text))
		c.fire(a)
	}

	// Re-save if the set changed size outside TakeDue since the last
	// tick; covers external mutation paths such as snooze.
	if n := c.registry.Len(); n != c.lastLen {
		c.registry.Persist()
		c.lastLen = n
	}
}

// Run drives Tick from a ticker until the context is cancelled. The TUI
// schedules ticks through its own event loop instead; Run exists for the
// headless watch mode.
func (c *Clock) Run(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.Tick(now)
		}
	}
}
