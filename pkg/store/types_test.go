package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityColorMapping(t *testing.T) {
	assert.Equal(t, "green", PriorityNormal.Color())
	assert.Equal(t, "yellow", PriorityMedium.Color())
	assert.Equal(t, "red", PriorityHigh.Color())
	assert.Equal(t, "blue", PriorityInfo.Color())
}

func TestParsePriority(t *testing.T) {
	assert.Equal(t, PriorityHigh, ParsePriority("high"))
	assert.Equal(t, PriorityHigh, ParsePriority("red"))
	assert.Equal(t, PriorityMedium, ParsePriority("medium"))
	assert.Equal(t, PriorityInfo, ParsePriority("info"))
	assert.Equal(t, PriorityNormal, ParsePriority("normal"))
	assert.Equal(t, PriorityNormal, ParsePriority("whatever"))
}

func TestPriorityRoundTripThroughColor(t *testing.T) {
	for _, p := range []Priority{PriorityNormal, PriorityMedium, PriorityHigh, PriorityInfo} {
		a := NewPendingAlarm("x", p, time.Now(), time.Now())
		assert.Equal(t, p, a.Priority())
	}
}

func TestDueAtCanonicalLayout(t *testing.T) {
	a := PendingAlarm{ReminderTime: "2024-01-15T10:30:00"}
	due, err := a.DueAt()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local), due)
}

func TestDueAtRFC3339(t *testing.T) {
	a := PendingAlarm{ReminderTime: "2024-01-15T10:30:00+02:00"}
	_, err := a.DueAt()
	assert.NoError(t, err)
}

func TestDueAtGarbage(t *testing.T) {
	a := PendingAlarm{ReminderTime: "10:30 tomorrow"}
	_, err := a.DueAt()
	assert.Error(t, err)
}

func TestDueBoundary(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	a := NewPendingAlarm("x", PriorityNormal, now, now)

	assert.True(t, a.Due(now)) // due at exactly now
	assert.True(t, a.Due(now.Add(time.Second)))
	assert.False(t, a.Due(now.Add(-time.Second)))
}
