package tui

import (
	"sort"

	"github.com/glintapp/glint/pkg/store"
	"github.com/glintapp/glint/pkg/task"
)

// Row is the flattened view of an active task for rendering.
type Row struct {
	Task      *task.Task
	IsAlert   bool
	Dismissed bool
	Due       string // "15:04" when an alert row has a parseable reminder
}

// BuildRows converts the controller's ordered tasks into renderable rows.
func BuildRows(tasks []*task.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		r := Row{
			Task:      t,
			IsAlert:   t.IsAlert(),
			Dismissed: t.State == task.StateDismissed,
		}
		if t.IsAlert() && !t.ReminderAt.IsZero() {
			r.Due = t.ReminderAt.Format("15:04")
		}
		rows = append(rows, r)
	}
	return rows
}

// HistoryDay groups one calendar date's completions for rendering.
type HistoryDay struct {
	Date    string
	Entries []store.HistoryEntry
}

// BuildHistoryDays orders the history newest date first; entries within a
// day keep append order.
func BuildHistoryDays(history map[string][]store.HistoryEntry) []HistoryDay {
	dates := make([]string, 0, len(history))
	for date := range history {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	days := make([]HistoryDay, 0, len(dates))
	for _, date := range dates {
		days = append(days, HistoryDay{Date: date, Entries: history[date]})
	}
	return days
}
