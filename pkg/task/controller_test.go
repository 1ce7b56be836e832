package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glintapp/glint/pkg/alarm"
	"github.com/glintapp/glint/pkg/store"
)

// recordingPresenter captures lifecycle callbacks for assertions.
type recordingPresenter struct {
	fired    []store.PendingAlarm
	snoozed  []store.PendingAlarm
	archived []store.HistoryEntry
	dateKeys []string
}

func (p *recordingPresenter) AlarmFired(a store.PendingAlarm)   { p.fired = append(p.fired, a) }
func (p *recordingPresenter) AlarmSnoozed(a store.PendingAlarm) { p.snoozed = append(p.snoozed, a) }
func (p *recordingPresenter) TaskArchived(dateKey string, e store.HistoryEntry) {
	p.dateKeys = append(p.dateKeys, dateKey)
	p.archived = append(p.archived, e)
}

type fixture struct {
	controller *Controller
	registry   *alarm.Registry
	store      *store.Store
	presenter  *recordingPresenter
	answer     bool
	now        time.Time
}

func setup(t *testing.T) *fixture {
	t.Helper()
	st, err := store.NewStore(t.TempDir(), nil)
	require.NoError(t, err)

	f := &fixture{
		store:     st,
		registry:  alarm.NewRegistry(st, nil),
		presenter: &recordingPresenter{},
		answer:    true,
		now:       time.Date(2024, 1, 15, 12, 0, 0, 0, time.Local),
	}
	f.controller = NewController(f.registry, st, f.presenter,
		ConfirmFunc(func(*Task) bool { return f.answer }), nil)
	f.controller.Now = func() time.Time { return f.now }
	return f
}

func TestCreateWithoutReminderNeverSchedules(t *testing.T) {
	f := setup(t)

	task, ok := f.controller.Create("tidy desk", store.PriorityNormal, false, time.Time{})
	require.True(t, ok)
	assert.Equal(t, StateActive, task.State)
	assert.False(t, task.IsAlert())
	assert.Zero(t, f.registry.Len())
}

func TestCreateEmptyTextRejectedSilently(t *testing.T) {
	f := setup(t)

	task, ok := f.controller.Create("   ", store.PriorityHigh, true, f.now.Add(time.Hour))
	assert.False(t, ok)
	assert.Nil(t, task)
	assert.Zero(t, f.registry.Len())
	assert.Empty(t, f.controller.Rows())
}

func TestCreateWithReminderSchedulesCanonicalAlarm(t *testing.T) {
	f := setup(t)

	due := f.now.Add(30 * time.Minute)
	task, ok := f.controller.Create("standup", store.PriorityMedium, true, due)
	require.True(t, ok)
	assert.Equal(t, StateScheduled, task.State)

	pending := f.registry.Pending()
	require.Len(t, pending, 1)
	assert.Equal(t, "standup", pending[0].Text)
	assert.Equal(t, "yellow", pending[0].Color)
	assert.Equal(t, due.Format(store.TimeLayout), pending[0].ReminderTime)
	assert.Equal(t, f.now.Format(store.TimeLayout), pending[0].Created)
}

func TestCreatePastReminderBecomesPlainRow(t *testing.T) {
	f := setup(t)

	task, ok := f.controller.Create("too late", store.PriorityNormal, true, f.now.Add(-time.Minute))
	require.True(t, ok)
	assert.Equal(t, StateActive, task.State)
	assert.False(t, task.IsAlert())
	assert.Zero(t, f.registry.Len())
}

func TestBuyMilkScenario(t *testing.T) {
	f := setup(t)
	start := f.now

	// Reminder at T+5s.
	_, ok := f.controller.Create("Buy milk", store.PriorityNormal, true, start.Add(5*time.Second))
	require.True(t, ok)

	clock := alarm.NewClock(f.registry, time.Second, f.controller.Fire, nil)

	// Not yet due at T+4s.
	clock.Tick(start.Add(4 * time.Second))
	assert.Empty(t, f.presenter.fired)

	// A tick at T+6s fires exactly one notification with the task text.
	f.now = start.Add(6 * time.Second)
	clock.Tick(f.now)
	require.Len(t, f.presenter.fired, 1)
	fired := f.presenter.fired[0]
	assert.Equal(t, "Buy milk", fired.Text)
	assert.Zero(t, f.registry.Len())

	// Snoozing produces a fresh alarm due at (T+6s)+5min.
	next := f.controller.SnoozeAlarm(fired)
	due, err := next.DueAt()
	require.NoError(t, err)
	assert.Equal(t, start.Add(6*time.Second).Add(5*time.Minute), due)
	require.Equal(t, 1, f.registry.Len())
	require.Len(t, f.presenter.snoozed, 1)

	// Fire the snoozed alarm and complete it.
	f.now = due
	snoozedAlarm, ok := f.registry.TakeDue(f.now)
	require.True(t, ok)
	require.True(t, f.controller.CompleteAlarm(snoozedAlarm))

	history := f.store.LoadHistory()
	key := f.now.Format(store.DateKeyLayout)
	require.Len(t, history[key], 1)
	assert.Equal(t, "Buy milk", history[key][0].Text)
	require.Len(t, f.presenter.archived, 1)
	assert.Equal(t, []string{key}, f.presenter.dateKeys)
}

func TestCompleteTaskDeclinedLeavesStateUnchanged(t *testing.T) {
	f := setup(t)
	f.answer = false

	task, _ := f.controller.Create("write report", store.PriorityNormal, false, time.Time{})
	assert.False(t, f.controller.CompleteTask(task))

	assert.Equal(t, StateActive, task.State)
	assert.Len(t, f.controller.Rows(), 1)
	assert.Empty(t, f.store.LoadHistory())
	assert.Empty(t, f.presenter.archived)
}

func TestCompleteTaskConfirmedArchives(t *testing.T) {
	f := setup(t)

	task, _ := f.controller.Create("write report", store.PriorityInfo, false, time.Time{})
	require.True(t, f.controller.CompleteTask(task))

	assert.Equal(t, StateArchived, task.State)
	assert.Empty(t, f.controller.Rows())

	history := f.store.LoadHistory()
	key := f.now.Format(store.DateKeyLayout)
	require.Len(t, history[key], 1)
	assert.Equal(t, "blue", history[key][0].Color)
}

func TestCompleteAlarmCancelsPendingEntry(t *testing.T) {
	f := setup(t)

	// Completion straight from the pending set (CLI path): the alarm never
	// fired, so it must be removed from the registry as part of archiving.
	f.controller.Create("pay rent", store.PriorityHigh, true, f.now.Add(time.Hour))
	a := f.registry.Pending()[0]

	require.True(t, f.controller.CompleteAlarm(a))
	assert.Zero(t, f.registry.Len())
	require.Len(t, f.presenter.archived, 1)
	assert.Equal(t, "pay rent", f.presenter.archived[0].Text)
}

func TestDismissRecordsNothing(t *testing.T) {
	f := setup(t)

	f.controller.Create("call mom", store.PriorityNormal, true, f.now.Add(time.Second))
	a, ok := f.registry.TakeDue(f.now.Add(2 * time.Second))
	require.True(t, ok)
	f.controller.Fire(a)

	f.controller.Dismiss(a)
	assert.Empty(t, f.store.LoadHistory())
	assert.Empty(t, f.presenter.archived)
}

func TestFireMarksTaskNotifying(t *testing.T) {
	f := setup(t)

	task, _ := f.controller.Create("review PR", store.PriorityMedium, true, f.now.Add(time.Second))
	a, ok := f.registry.TakeDue(f.now.Add(time.Second))
	require.True(t, ok)

	f.controller.Fire(a)
	assert.Equal(t, StateNotifying, task.State)
	require.Len(t, f.presenter.fired, 1)
}
