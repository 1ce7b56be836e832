package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/glintapp/glint/pkg/alarm"
	"github.com/glintapp/glint/pkg/config"
	"github.com/glintapp/glint/pkg/sound"
	"github.com/glintapp/glint/pkg/store"
	"github.com/glintapp/glint/pkg/task"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

// tickMsg is the widget heartbeat; it drives the clock display, the alarm
// poller and the notification timers.
type tickMsg time.Time

// events collects presenter callbacks raised synchronously during one
// Update pass so the model copy can apply them afterwards. Shared by
// pointer across model copies.
type events struct {
	fired   []store.PendingAlarm
	snoozed []store.PendingAlarm
}

func (e *events) AlarmFired(a store.PendingAlarm)         { e.fired = append(e.fired, a) }
func (e *events) AlarmSnoozed(a store.PendingAlarm)       { e.snoozed = append(e.snoozed, a) }
func (e *events) TaskArchived(string, store.HistoryEntry) {}

// notification is the active popup. Clearing the pointer tears down the
// repeat-sound and auto-close timers together; neither can outlive the
// window.
type notification struct {
	alarm     store.PendingAlarm
	openedAt  time.Time
	lastSound time.Time
}

// Detailed-add form fields, in tab order.
const (
	fieldText = iota
	fieldPriority
	fieldDate
	fieldTime
	fieldCount
)

// Model is the Bubble Tea model for the productivity widget.
type Model struct {
	cfg        config.Config
	store      *store.Store
	registry   *alarm.Registry
	controller *task.Controller
	clock      *alarm.Clock
	player     *sound.Player
	keys       KeyMap
	log        *zap.Logger
	events     *events
	answer     *bool

	width  int
	height int
	now    time.Time
	cursor int

	// Quick-add input
	isAdding bool
	input    textinput.Model

	// Detailed-add form
	isDetailAdding bool
	detailField    int
	detailText     textinput.Model
	detailDate     textinput.Model
	detailTime     textinput.Model
	detailPriority store.Priority

	// Completion confirmation modal
	confirmTask  *task.Task
	confirmAlarm *store.PendingAlarm

	// Notification overlay; alarms that fire while one is open wait here
	notif      *notification
	notifQueue []store.PendingAlarm

	// History pane
	showHistory bool
	history     []HistoryDay

	showHelp      bool
	statusMsg     string
	statusTimeout time.Time
}

// NewModel wires the widget's core behind a Bubble Tea model.
func NewModel(cfg config.Config, st *store.Store, reg *alarm.Registry, player *sound.Player, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}

	input := textinput.New()
	input.Placeholder = "New task..."
	input.CharLimit = 120

	detailText := textinput.New()
	detailText.Placeholder = "Task description..."
	detailText.CharLimit = 120
	detailDate := textinput.New()
	detailDate.Placeholder = "2006-01-02"
	detailDate.CharLimit = 10
	detailTime := textinput.New()
	detailTime.Placeholder = "15:04"
	detailTime.CharLimit = 5

	ev := &events{}
	answer := new(bool)
	controller := task.NewController(reg, st, ev,
		task.ConfirmFunc(func(*task.Task) bool { return *answer }), log)
	controller.Snooze = cfg.SnoozeDuration

	m := Model{
		cfg:            cfg,
		store:          st,
		registry:       reg,
		controller:     controller,
		clock:          alarm.NewClock(reg, cfg.PollInterval, controller.Fire, log),
		player:         player,
		keys:           DefaultKeyMap(),
		log:            log,
		events:         ev,
		answer:         answer,
		now:            time.Now(),
		input:          input,
		detailText:     detailText,
		detailDate:     detailDate,
		detailTime:     detailTime,
		detailPriority: store.PriorityNormal,
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.WindowSize(), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.clock.Interval(), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, tea.ClearScreen

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case FileChangedMsg:
		if m.showHistory {
			m.history = BuildHistoryDays(m.store.LoadHistory())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isAdding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.now = now
	m.clock.Tick(now)

	// Apply callbacks the poller raised during Tick.
	for _, a := range m.events.fired {
		m.notifQueue = append(m.notifQueue, a)
	}
	m.events.fired = nil
	for _, a := range m.events.snoozed {
		if due, err := a.DueAt(); err == nil {
			m.setStatus("Snoozed until " + due.Format("15:04"))
		}
	}
	m.events.snoozed = nil

	// Notification upkeep: auto-close and repeat sound.
	if m.notif != nil {
		if now.Sub(m.notif.openedAt) >= m.cfg.NotificationTimeout {
			m.controller.Dismiss(m.notif.alarm)
			m.notif = nil
		} else if now.Sub(m.notif.lastSound) >= m.cfg.SoundRepeat {
			m.playAlarmSound()
			m.notif.lastSound = now
		}
	}

	// Open the next queued notification once the previous one is gone.
	if m.notif == nil && len(m.notifQueue) > 0 {
		next := m.notifQueue[0]
		m.notifQueue = m.notifQueue[1:]
		m.notif = &notification{alarm: next, openedAt: now, lastSound: now}
		m.playAlarmSound()
	}

	return m, m.tickCmd()
}

// playAlarmSound rings the terminal bell and, when a sound file was
// found, starts the external player. Missing audio degrades to the bell.
func (m Model) playAlarmSound() {
	os.Stderr.WriteString("\a")
	m.player.Play()
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quick-add input
	if m.isAdding {
		switch msg.Type {
		case tea.KeyEsc:
			m.isAdding = false
			return m, nil
		case tea.KeyEnter:
			if _, ok := m.controller.Create(m.input.Value(), store.PriorityNormal, false, time.Time{}); ok {
				m.setStatus("Added: " + strings.TrimSpace(m.input.Value()))
			}
			m.input.SetValue("")
			m.isAdding = false
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}

	// Detailed-add form
	if m.isDetailAdding {
		return m.handleDetailForm(msg)
	}

	// Completion confirmation
	if m.confirmTask != nil || m.confirmAlarm != nil {
		switch msg.String() {
		case "y", "Y":
			*m.answer = true
			if m.confirmAlarm != nil {
				if m.controller.CompleteAlarm(*m.confirmAlarm) {
					m.setStatus("Completed: " + m.confirmAlarm.Text)
				}
				m.notif = nil // teardown: window, sound and auto-close together
			} else if m.controller.CompleteTask(m.confirmTask) {
				m.setStatus("Completed: " + m.confirmTask.Text)
			}
			*m.answer = false
			m.confirmTask = nil
			m.confirmAlarm = nil
			m.clampCursor()
		case "n", "N", "esc":
			// Declined: prior state is untouched, row stays.
			m.confirmTask = nil
			m.confirmAlarm = nil
		}
		return m, nil
	}

	// Notification overlay
	if m.notif != nil {
		switch {
		case key.Matches(msg, m.keys.Snooze):
			m.controller.SnoozeAlarm(m.notif.alarm)
			m.notif = nil
			return m, nil
		case key.Matches(msg, m.keys.Archive):
			a := m.notif.alarm
			m.confirmAlarm = &a
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			m.controller.Dismiss(m.notif.alarm)
			m.notif = nil
			return m, nil
		}
		return m, nil
	}

	// Help modal
	if m.showHelp {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// Normal mode
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.controller.Rows())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.QuickAdd):
		m.isAdding = true
		m.input.Focus()

	case key.Matches(msg, m.keys.DetailAdd):
		m.isDetailAdding = true
		m.detailField = fieldText
		m.detailPriority = store.PriorityNormal
		m.detailText.SetValue("")
		m.detailDate.SetValue("")
		m.detailTime.SetValue("")
		m.detailText.Focus()

	case key.Matches(msg, m.keys.Complete):
		rows := m.controller.Rows()
		if m.cursor < len(rows) {
			t := rows[m.cursor]
			// Alert rows have no checkbox; completion happens through
			// their notification.
			if !t.IsAlert() {
				m.confirmTask = t
			}
		}

	case key.Matches(msg, m.keys.History):
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.history = BuildHistoryDays(m.store.LoadHistory())
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}

	return m, nil
}

func (m Model) handleDetailForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isDetailAdding = false
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		delta := 1
		if msg.Type == tea.KeyShiftTab {
			delta = fieldCount - 1
		}
		m.detailField = (m.detailField + delta) % fieldCount
		m.detailText.Blur()
		m.detailDate.Blur()
		m.detailTime.Blur()
		switch m.detailField {
		case fieldText:
			m.detailText.Focus()
		case fieldDate:
			m.detailDate.Focus()
		case fieldTime:
			m.detailTime.Focus()
		}
		return m, nil

	case tea.KeyEnter:
		m.submitDetailForm()
		return m, nil
	}

	if m.detailField == fieldPriority {
		switch msg.String() {
		case "left", "h":
			m.detailPriority = cyclePriority(m.detailPriority, -1)
		case "right", "l", " ":
			m.detailPriority = cyclePriority(m.detailPriority, 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.detailField {
	case fieldText:
		m.detailText, cmd = m.detailText.Update(msg)
	case fieldDate:
		m.detailDate, cmd = m.detailDate.Update(msg)
	case fieldTime:
		m.detailTime, cmd = m.detailTime.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitDetailForm() {
	text := strings.TrimSpace(m.detailText.Value())
	date := strings.TrimSpace(m.detailDate.Value())
	clock := strings.TrimSpace(m.detailTime.Value())

	hasReminder := false
	var reminderAt time.Time
	if date != "" || clock != "" {
		at, err := task.ParseReminderInput(date, clock)
		if err != nil {
			m.setStatus("Invalid reminder: use 2006-01-02 and 15:04")
			return
		}
		hasReminder = true
		reminderAt = at
	}

	t, ok := m.controller.Create(text, m.detailPriority, hasReminder, reminderAt)
	if !ok {
		m.isDetailAdding = false
		return
	}
	if t.IsAlert() {
		m.setStatus("Reminder set for " + t.ReminderAt.Format("Jan 2 15:04"))
	} else {
		m.setStatus("Added: " + t.Text)
	}
	m.isDetailAdding = false
}

func cyclePriority(p store.Priority, delta int) store.Priority {
	order := []store.Priority{
		store.PriorityNormal, store.PriorityMedium, store.PriorityHigh, store.PriorityInfo,
	}
	for i, cur := range order {
		if cur == p {
			return order[(i+delta+len(order))%len(order)]
		}
	}
	return store.PriorityNormal
}

func (m *Model) clampCursor() {
	if n := len(m.controller.Rows()); m.cursor >= n && m.cursor > 0 {
		m.cursor = n - 1
	}
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
