package activesessions

import (
	"context"
	"sync"
	"time"

	"github.com/wejdenmesaoud/cashback/pkg/logger"
)

// Tracker keeps an in-process map of username to last-seen time. It backs the
// active-users gauge only; it is not a session store and grants nothing.
type Tracker struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// New constructs a tracker. A nil clock falls back to time.Now.
func New(ttl time.Duration, clock func() time.Time) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	return &Tracker{
		lastSeen: make(map[string]time.Time),
		ttl:      ttl,
		now:      clock,
	}
}

// Record marks the subject as active now.
func (t *Tracker) Record(subject string) {
	if subject == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[subject] = t.now()
}

// Remove drops the subject immediately (best-effort signout bookkeeping).
func (t *Tracker) Remove(subject string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.lastSeen, subject)
}

// Count returns the number of subjects seen within the TTL.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := t.now().Add(-t.ttl)
	count := 0
	for _, seen := range t.lastSeen {
		if seen.After(cutoff) {
			count++
		}
	}
	return count
}

// Sweep removes subjects whose last activity predates now-ttl and reports how
// many entries were dropped.
func (t *Tracker) Sweep(now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	cutoff := now.Add(-t.ttl)
	dropped := 0
	for subject, seen := range t.lastSeen {
		if !seen.After(cutoff) {
			delete(t.lastSeen, subject)
			dropped++
		}
	}
	return dropped
}

// RunSweeper sweeps on the given interval until the context is canceled.
func (t *Tracker) RunSweeper(ctx context.Context, interval time.Duration, logg *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if dropped := t.Sweep(t.now()); dropped > 0 && logg != nil {
				logg.Info(logg.WithField(ctx, "dropped", dropped), "active sessions swept")
			}
		}
	}
}
