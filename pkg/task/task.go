// Package task implements the task lifecycle: creation, scheduling,
// notification, snooze, completion and archival to history.
package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/glintapp/glint/pkg/store"
)

// State is the lifecycle position of a task.
type State int

const (
	StateCreated State = iota
	StateActive          // plain checklist row, no reminder
	StateScheduled       // reminder pending in the registry
	StateNotifying       // notification on screen
	StateArchived        // completed, recorded in history (terminal)
	StateDismissed       // notification closed or timed out, no history (terminal)
)

// Task is a unit of user-entered work. A task with a reminder is also
// tracked as a PendingAlarm in the registry until it fires.
type Task struct {
	ID          uuid.UUID
	Text        string
	Priority    store.Priority
	HasReminder bool
	ReminderAt  time.Time // zero when HasReminder is false
	State       State
}

// IsAlert reports whether the task renders as an alert row (no checkbox;
// completion happens only through its notification).
func (t *Task) IsAlert() bool {
	return t.HasReminder
}

// ParseReminderInput normalizes user-entered date and clock strings
// ("2006-01-02", "15:04") into one local timestamp. This is the single
// place presentation input becomes a canonical time; everything past this
// boundary deals in time.Time or the wire layout.
func ParseReminderInput(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
}
