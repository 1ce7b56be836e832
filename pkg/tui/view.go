package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const minWidth = 36
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.notif != nil && m.confirmAlarm == nil {
		return placeOverlay(m.renderNotification(), w, h)
	}

	if m.confirmTask != nil || m.confirmAlarm != nil {
		return placeOverlay(m.renderConfirmModal(), w, h)
	}

	if m.showHelp {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.isDetailAdding {
		return placeOverlay(m.renderDetailForm(), w, h)
	}

	var b strings.Builder

	// Header: date and clock
	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2
	contentHeight := h - headerLines - footerLines

	if m.showHistory {
		b.WriteString(m.renderHistory(w, contentHeight))
	} else {
		b.WriteString(m.renderTasks(w, contentHeight))
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	date := DateStyle.Render(m.now.Format("Monday, January 2"))
	clock := ClockStyle.Render(m.now.Format("15:04:05"))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = StatusStyle.Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(date) - lipgloss.Width(status) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}

	return date + strings.Repeat(" ", gap) + status + clock
}

func (m Model) renderTasks(width, height int) string {
	rows := BuildRows(m.controller.Rows())

	var lines []string
	if len(rows) == 0 && !m.isAdding {
		lines = append(lines, FooterStyle.Render("No tasks. Press 'a' to add one."))
	}

	for i, row := range rows {
		lines = append(lines, m.renderTaskRow(row, i == m.cursor, width))
	}

	if m.isAdding {
		prompt := InputPromptStyle.Render("> ")
		lines = append(lines, prompt+m.input.View())
	}

	if len(lines) > height {
		// Keep the cursor row on screen
		start := m.cursor - height/2
		if start < 0 {
			start = 0
		}
		if start+height > len(lines) {
			start = len(lines) - height
		}
		lines = lines[start : start+height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderTaskRow(row Row, selected bool, width int) string {
	icon := IconPending
	if row.IsAlert {
		icon = IconAlert
	}

	prio := PriorityStyle(row.Task.Priority)
	line := prio.Render(icon) + " " + row.Task.Text
	if row.Due != "" {
		line += DueTimeStyle.Render("  @ " + row.Due)
	}

	if lw := lipgloss.Width(line); lw < width {
		line += strings.Repeat(" ", width-lw)
	}

	switch {
	case row.Dismissed:
		return DismissedStyle.Render(row.Task.Text)
	case selected:
		return SelectedStyle.Render(line)
	case !row.IsAlert:
		return PlainRowStyle.Render(line)
	}
	return line
}

func (m Model) renderHistory(width, height int) string {
	var lines []string
	if len(m.history) == 0 {
		lines = append(lines, FooterStyle.Render("No completed tasks yet."))
	}

	for _, day := range m.history {
		lines = append(lines, HistoryDateStyle.Render(IconDate+" "+day.Date))
		for _, e := range day.Entries {
			lines = append(lines, "  "+HistoryEntryStyle.Render(e.Text)+
				DueTimeStyle.Render("  "+e.Priority().Label()))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isAdding {
		help = "enter confirm  esc cancel"
	} else if m.showHistory {
		help = "h back to tasks  q quit"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderNotification() string {
	var b strings.Builder

	a := m.notif.alarm
	b.WriteString(NotificationTitleStyle.Render(IconAlert + " Reminder"))
	b.WriteString("\n\n")
	b.WriteString(PriorityStyle(a.Priority()).Render(a.Priority().Label()))
	b.WriteString("  ")
	b.WriteString(a.Text)
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[c]") + " Complete  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorYellow).Render("[s]") + " Snooze 5 min  ")
	b.WriteString(FooterStyle.Render("[esc] Dismiss"))

	return NotificationStyle.Render(b.String())
}

func (m Model) renderConfirmModal() string {
	text := ""
	if m.confirmAlarm != nil {
		text = m.confirmAlarm.Text
	} else if m.confirmTask != nil {
		text = m.confirmTask.Text
	}

	var b strings.Builder
	b.WriteString(ModalTitleStyle.Render("Complete Task"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Mark '%s' as completed?\n\n", text))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

func (m Model) renderDetailForm() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("New Task"))
	b.WriteString("\n\n")

	label := func(field int, name string) string {
		if m.detailField == field {
			return FormFocusStyle.Render("▸ ") + FormLabelStyle.Render(name)
		}
		return "  " + FormLabelStyle.Render(name)
	}

	b.WriteString(label(fieldText, "Task") + m.detailText.View())
	b.WriteString("\n")
	b.WriteString(label(fieldPriority, "Priority") +
		PriorityStyle(m.detailPriority).Render(m.detailPriority.Label()))
	if m.detailField == fieldPriority {
		b.WriteString(FooterStyle.Render("  ←/→ change"))
	}
	b.WriteString("\n")
	b.WriteString(label(fieldDate, "Date") + m.detailDate.View())
	b.WriteString("\n")
	b.WriteString(label(fieldTime, "Time") + m.detailTime.View())
	b.WriteString("\n\n")
	b.WriteString(FooterStyle.Render("tab next field  enter save  esc cancel"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(10)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
