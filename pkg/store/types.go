package store

import "time"

// Priority classifies a task for display grouping. Each priority is bound
// to a color tag used on the wire and in the UI; it has no scheduling
// meaning.
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityInfo   Priority = "info"
)

// TimeLayout is the canonical on-disk timestamp format (local wall clock,
// no zone offset).
const TimeLayout = "2006-01-02T15:04:05"

// DateKeyLayout is the calendar-date key used to group history entries.
const DateKeyLayout = "2006-01-02"

// Color returns the wire color tag for the priority.
func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "red"
	case PriorityMedium:
		return "yellow"
	case PriorityInfo:
		return "blue"
	default:
		return "green"
	}
}

// Label returns the display string for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "🔴 High"
	case PriorityMedium:
		return "🟡 Medium"
	case PriorityInfo:
		return "🔵 Info"
	default:
		return "🟢 Normal"
	}
}

// ParsePriority maps a user-supplied name to a Priority. Unknown names
// fall back to PriorityNormal.
func ParsePriority(s string) Priority {
	switch s {
	case "medium", "yellow":
		return PriorityMedium
	case "high", "red":
		return PriorityHigh
	case "info", "informational", "blue":
		return PriorityInfo
	default:
		return PriorityNormal
	}
}

// priorityFromColor is the inverse mapping used when reading wire records.
func priorityFromColor(color string) Priority {
	switch color {
	case "red":
		return PriorityHigh
	case "yellow":
		return PriorityMedium
	case "blue":
		return PriorityInfo
	default:
		return PriorityNormal
	}
}

// PendingAlarm is one element of the alarms document. Timestamps are kept
// as raw strings so that a record with an unparseable reminder_time
// survives load/save round-trips unchanged: it can never fire, but it is
// never silently discarded either.
type PendingAlarm struct {
	Text         string `json:"text"`
	Color        string `json:"color"`
	ColorName    string `json:"color_name"`
	ReminderTime string `json:"reminder_time"`
	Created      string `json:"created"`
}

// NewPendingAlarm builds a wire record with canonical timestamps.
func NewPendingAlarm(text string, p Priority, dueAt, createdAt time.Time) PendingAlarm {
	return PendingAlarm{
		Text:         text,
		Color:        p.Color(),
		ColorName:    p.Label(),
		ReminderTime: dueAt.Format(TimeLayout),
		Created:      createdAt.Format(TimeLayout),
	}
}

// Priority returns the priority encoded in the record's color tag.
func (a PendingAlarm) Priority() Priority {
	return priorityFromColor(a.Color)
}

// DueAt parses the record's reminder time. An error marks the record as
// inert, not broken: callers must skip it, never drop it.
func (a PendingAlarm) DueAt() (time.Time, error) {
	return ParseTime(a.ReminderTime)
}

// Due reports whether the alarm is due at the given instant. Records with
// an unparseable reminder time are never due.
func (a PendingAlarm) Due(now time.Time) bool {
	due, err := a.DueAt()
	if err != nil {
		return false
	}
	return !due.After(now)
}

// HistoryEntry is an immutable record of a completed task, one element of
// a date-keyed history bucket.
type HistoryEntry struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	ColorName string `json:"color_name"`
	Completed string `json:"completed"`
}

// NewHistoryEntry builds a history record completed at the given instant.
func NewHistoryEntry(text string, p Priority, completedAt time.Time) HistoryEntry {
	return HistoryEntry{
		Text:      text,
		Color:     p.Color(),
		ColorName: p.Label(),
		Completed: completedAt.Format(TimeLayout),
	}
}

// Priority returns the priority encoded in the entry's color tag.
func (e HistoryEntry) Priority() Priority {
	return priorityFromColor(e.Color)
}

// ParseTime parses a wire timestamp, accepting the canonical local layout
// as well as RFC 3339 with an offset.
func ParseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(TimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
