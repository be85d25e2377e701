package activesessions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestTracker_CountExpiresStaleEntries(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	tracker := New(30*time.Minute, clock.Now)

	tracker.Record("alice")
	clock.Advance(10 * time.Minute)
	tracker.Record("bob")

	assert.Equal(t, 2, tracker.Count())

	clock.Advance(25 * time.Minute)
	assert.Equal(t, 1, tracker.Count(), "alice is past the ttl, bob is not")

	clock.Advance(10 * time.Minute)
	assert.Equal(t, 0, tracker.Count())
}

func TestTracker_RecordRefreshesLastSeen(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	tracker := New(30*time.Minute, clock.Now)

	tracker.Record("alice")
	clock.Advance(25 * time.Minute)
	tracker.Record("alice")
	clock.Advance(25 * time.Minute)

	assert.Equal(t, 1, tracker.Count())
}

func TestTracker_RemoveDropsSubject(t *testing.T) {
	tracker := New(30*time.Minute, nil)

	tracker.Record("alice")
	tracker.Remove("alice")

	assert.Equal(t, 0, tracker.Count())
}

func TestTracker_SweepReportsDropped(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	tracker := New(30*time.Minute, clock.Now)

	tracker.Record("alice")
	tracker.Record("bob")
	clock.Advance(31 * time.Minute)
	tracker.Record("carol")

	assert.Equal(t, 2, tracker.Sweep(clock.Now()))
	assert.Equal(t, 1, tracker.Count())
}

func TestTracker_IgnoresEmptySubject(t *testing.T) {
	tracker := New(30*time.Minute, nil)
	tracker.Record("")
	assert.Equal(t, 0, tracker.Count())
}
