package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintapp/glint/pkg/store"
)

func setupTestRegistry(t *testing.T) (*Registry, *store.Store) {
	t.Helper()
	st, err := store.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	return NewRegistry(st, nil), st
}

func alarmAt(text string, due time.Time) store.PendingAlarm {
	return store.NewPendingAlarm(text, store.PriorityNormal, due, due.Add(-time.Hour))
}

func TestEnqueuePersists(t *testing.T) {
	r, st := setupTestRegistry(t)

	r.Enqueue(alarmAt("water plants", time.Now().Add(time.Hour)))
	assert.Equal(t, 1, r.Len())

	// A fresh registry over the same store sees the alarm.
	r2 := NewRegistry(st, nil)
	require.Equal(t, 1, r2.Len())
	assert.Equal(t, "water plants", r2.Pending()[0].Text)
}

func TestTakeDueRemovesFirstDue(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	r.Enqueue(alarmAt("later", now.Add(time.Hour)))
	r.Enqueue(alarmAt("due-one", now.Add(-time.Minute)))
	r.Enqueue(alarmAt("due-two", now.Add(-time.Second)))

	a, ok := r.TakeDue(now)
	require.True(t, ok)
	assert.Equal(t, "due-one", a.Text) // insertion-order winner
	assert.Equal(t, 2, r.Len())

	a, ok = r.TakeDue(now)
	require.True(t, ok)
	assert.Equal(t, "due-two", a.Text)

	_, ok = r.TakeDue(now)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len()) // "later" still pending
}

func TestTakeDueExactlyAtDueTime(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	r.Enqueue(alarmAt("on the dot", now))
	_, ok := r.TakeDue(now)
	assert.True(t, ok)
}

func TestTakeDueSkipsUnparseableButKeepsThem(t *testing.T) {
	r, st := setupTestRegistry(t)
	now := time.Now()

	r.Enqueue(store.PendingAlarm{Text: "broken", ReminderTime: "???", Color: "green"})
	r.Enqueue(alarmAt("fine", now.Add(-time.Minute)))

	a, ok := r.TakeDue(now)
	require.True(t, ok)
	assert.Equal(t, "fine", a.Text)

	// The broken record is retained in memory and on disk.
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "broken", r.Pending()[0].Text)
	persisted := st.LoadAlarms()
	require.Len(t, persisted, 1)
	assert.Equal(t, "broken", persisted[0].Text)
}

func TestTakeDuePersistsRemoval(t *testing.T) {
	r, st := setupTestRegistry(t)
	now := time.Now()

	r.Enqueue(alarmAt("gone", now.Add(-time.Minute)))
	_, ok := r.TakeDue(now)
	require.True(t, ok)
	assert.Empty(t, st.LoadAlarms())
}

func TestReconcileOnLoadDropsPast(t *testing.T) {
	st, err := store.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)
	st.SaveAlarms([]store.PendingAlarm{
		alarmAt("missed", now.Add(-time.Hour)),
		alarmAt("upcoming", now.Add(time.Hour)),
	})

	r := NewRegistry(st, nil)
	r.ReconcileOnLoad(now)

	require.Equal(t, 1, r.Len())
	assert.Equal(t, "upcoming", r.Pending()[0].Text)
	// Drop is persisted.
	require.Len(t, st.LoadAlarms(), 1)
}

func TestReconcileOnLoadAllPastYieldsEmpty(t *testing.T) {
	st, err := store.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	now := time.Now()
	st.SaveAlarms([]store.PendingAlarm{alarmAt("stale", now.Add(-time.Minute))})

	r := NewRegistry(st, nil)
	r.ReconcileOnLoad(now)
	assert.Zero(t, r.Len())
}

func TestReconcileOnLoadKeepsDueNowAndUnparseable(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local)

	r.Enqueue(alarmAt("due now", now)) // not strictly past
	r.Enqueue(store.PendingAlarm{Text: "inert", ReminderTime: "bad", Color: "green"})

	r.ReconcileOnLoad(now)
	assert.Equal(t, 2, r.Len())
}

func TestReconcileOnLoadIdempotent(t *testing.T) {
	r, _ := setupTestRegistry(t)
	now := time.Now()

	r.Enqueue(alarmAt("past", now.Add(-time.Minute)))
	r.Enqueue(alarmAt("future", now.Add(time.Minute)))
	r.Enqueue(store.PendingAlarm{Text: "inert", ReminderTime: "bad", Color: "green"})

	r.ReconcileOnLoad(now)
	first := r.Pending()
	r.ReconcileOnLoad(now)
	assert.Equal(t, first, r.Pending())
}

func TestRemoveByMatch(t *testing.T) {
	r, st := setupTestRegistry(t)
	a := alarmAt("cancel me", time.Now().Add(time.Hour))
	b := alarmAt("keep me", time.Now().Add(2*time.Hour))

	r.Enqueue(a)
	r.Enqueue(b)

	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a)) // already gone
	require.Equal(t, 1, r.Len())
	assert.Equal(t, "keep me", r.Pending()[0].Text)
	require.Len(t, st.LoadAlarms(), 1)
}

func TestRegistryLoadsCorruptStoreAsEmpty(t *testing.T) {
	st, err := store.NewStore(t.TempDir(), nil)
	require.NoError(t, err)
	// Store-level corruption handling is tested in pkg/store; here we only
	// care that the registry starts empty rather than failing.
	r := NewRegistry(st, nil)
	assert.Zero(t, r.Len())
}
