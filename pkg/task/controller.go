package task

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glintapp/glint/pkg/alarm"
	"github.com/glintapp/glint/pkg/store"
)

// DefaultSnooze is how far a snoozed alarm is pushed into the future.
const DefaultSnooze = 5 * time.Minute

// Presenter receives lifecycle callbacks so the UI can render and remove
// rows. Implementations run on the same event-processing thread as the
// controller.
type Presenter interface {
	AlarmFired(a store.PendingAlarm)
	AlarmSnoozed(a store.PendingAlarm)
	TaskArchived(dateKey string, e store.HistoryEntry)
}

// Confirmer answers the yes/no completion prompt. Only "yes" archives.
type Confirmer interface {
	ConfirmCompletion(t *Task) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(t *Task) bool

// ConfirmCompletion implements Confirmer.
func (f ConfirmFunc) ConfirmCompletion(t *Task) bool { return f(t) }

// NopPresenter discards all callbacks. Used by the CLI surface.
type NopPresenter struct{}

func (NopPresenter) AlarmFired(store.PendingAlarm)           {}
func (NopPresenter) AlarmSnoozed(store.PendingAlarm)         {}
func (NopPresenter) TaskArchived(string, store.HistoryEntry) {}

// Controller orchestrates task lifecycle transitions between the
// registry, the store and the presentation layer. It is single-threaded
// by contract: all calls arrive from one event loop.
type Controller struct {
	registry  *alarm.Registry
	store     *store.Store
	presenter Presenter
	confirmer Confirmer
	log       *zap.Logger

	// Now and Snooze are variable for tests.
	Now    func() time.Time
	Snooze time.Duration

	active []*Task
}

// NewController wires a controller over its collaborators.
func NewController(reg *alarm.Registry, st *store.Store, p Presenter, c Confirmer, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		registry:  reg,
		store:     st,
		presenter: p,
		confirmer: c,
		log:       log,
		Now:       time.Now,
		Snooze:    DefaultSnooze,
	}
}

// Create makes a task from user input. Empty text is rejected silently.
// A reminder is scheduled only for a valid future-or-present timestamp;
// otherwise the task becomes a plain checklist row.
func (c *Controller) Create(text string, p store.Priority, hasReminder bool, reminderAt time.Time) (*Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		c.log.Debug("rejecting empty task text")
		return nil, false
	}

	now := c.Now()
	t := &Task{
		ID:       uuid.New(),
		Text:     text,
		Priority: p,
		State:    StateActive,
	}

	if hasReminder && !reminderAt.IsZero() && !reminderAt.Before(now) {
		t.HasReminder = true
		t.ReminderAt = reminderAt
		t.State = StateScheduled
		c.registry.Enqueue(store.NewPendingAlarm(text, p, reminderAt, now))
	}

	c.active = append(c.active, t)
	return t, true
}

// Rows returns the active rows in display order (see OrderRows).
func (c *Controller) Rows() []*Task {
	return OrderRows(c.active)
}

// Fire transitions the alarm's task to NOTIFYING and asks the
// presentation layer to show the notification. Called by the clock after
// TakeDue has already removed the alarm from the registry.
func (c *Controller) Fire(a store.PendingAlarm) {
	if t := c.findAlert(a.Text); t != nil {
		t.State = StateNotifying
	}
	c.presenter.AlarmFired(a)
}

// SnoozeAlarm re-schedules a fired alarm as a fresh entity due Snooze from
// now, preserving text and priority. The original alarm's identity is
// gone; the replacement re-enters the registry like any new alarm.
func (c *Controller) SnoozeAlarm(a store.PendingAlarm) store.PendingAlarm {
	now := c.Now()
	next := store.NewPendingAlarm(a.Text, a.Priority(), now.Add(c.Snooze), now)
	c.registry.Reinstate(next)

	if t := c.findAlert(a.Text); t != nil {
		t.State = StateScheduled
		if due, err := next.DueAt(); err == nil {
			t.ReminderAt = due
		}
	}

	c.presenter.AlarmSnoozed(next)
	return next
}

// CompleteAlarm archives a notifying (or still-pending) alarm after user
// confirmation. Declining leaves everything unchanged.
func (c *Controller) CompleteAlarm(a store.PendingAlarm) bool {
	t := c.findAlert(a.Text)
	if t == nil {
		t = &Task{ID: uuid.New(), Text: a.Text, Priority: a.Priority(), HasReminder: true}
	}
	if !c.confirmer.ConfirmCompletion(t) {
		return false
	}

	// Cancel path: the alarm may still be in the registry when completion
	// comes from the CLI rather than a fired notification.
	c.registry.Remove(a)

	c.archive(t)
	return true
}

// CompleteTask archives a plain checklist row after user confirmation.
// Declining returns the row to its prior state unchanged.
func (c *Controller) CompleteTask(t *Task) bool {
	if !c.confirmer.ConfirmCompletion(t) {
		return false
	}
	c.archive(t)
	return true
}

// Dismiss closes a notification without archiving: explicit close or the
// auto-close timeout. A timed-out reminder is not recorded as completed.
func (c *Controller) Dismiss(a store.PendingAlarm) {
	if t := c.findAlert(a.Text); t != nil {
		t.State = StateDismissed
	}
	c.log.Info("alarm dismissed", zap.String("text", a.Text))
}

func (c *Controller) archive(t *Task) {
	now := c.Now()
	t.State = StateArchived

	dateKey := now.Format(store.DateKeyLayout)
	entry := store.NewHistoryEntry(t.Text, t.Priority, now)
	c.store.AppendHistory(dateKey, entry)
	c.removeTask(t.ID)

	c.log.Info("task archived",
		zap.String("text", t.Text),
		zap.String("date", dateKey))
	c.presenter.TaskArchived(dateKey, entry)
}

// findAlert returns the first live alert row matching the alarm text.
// Alarms carry no identity beyond their fields, so text match mirrors the
// registry's semantics.
func (c *Controller) findAlert(text string) *Task {
	for _, t := range c.active {
		if t.IsAlert() && t.Text == text && t.State != StateArchived {
			return t
		}
	}
	return nil
}

func (c *Controller) removeTask(id uuid.UUID) {
	for i, t := range c.active {
		if t.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}
