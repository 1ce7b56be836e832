package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintapp/glint/pkg/store"
)

func TestClockFiresAtMostOnePerTick(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	// Two alarms due at the same instant.
	r.Enqueue(alarmAt("first", now))
	r.Enqueue(alarmAt("second", now))

	var fired []string
	c := NewClock(r, time.Second, func(a store.PendingAlarm) {
		fired = append(fired, a.Text)
	}, nil)

	c.Tick(now)
	require.Equal(t, []string{"first"}, fired) // insertion-order winner

	c.Tick(now.Add(time.Second))
	assert.Equal(t, []string{"first", "second"}, fired)
	assert.Zero(t, r.Len())
}

func TestClockNoDueAlarms(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Now()
	r.Enqueue(alarmAt("later", now.Add(time.Hour)))

	fired := 0
	c := NewClock(r, time.Second, func(store.PendingAlarm) { fired++ }, nil)
	c.Tick(now)

	assert.Zero(t, fired)
	assert.Equal(t, 1, r.Len())
}

func TestClockDefensiveResaveOnExternalMutation(t *testing.T) {
	r, st := setupTestRegistry(t)
	now := time.Now()

	c := NewClock(r, time.Second, func(store.PendingAlarm) {}, nil)
	c.Tick(now) // establishes baseline count

	// Snooze path mutates the set outside TakeDue.
	r.Reinstate(alarmAt("snoozed", now.Add(5*time.Minute)))
	c.Tick(now)

	require.Len(t, st.LoadAlarms(), 1)
	assert.Equal(t, "snoozed", st.LoadAlarms()[0].Text)
}

func TestClockDefaultInterval(t *testing.T) {
	r, _ := setupTestRegistry(t)
	c := NewClock(r, 0, func(store.PendingAlarm) {}, nil)
	assert.Equal(t, DefaultPollInterval, c.Interval())
}
