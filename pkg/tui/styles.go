package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/glintapp/glint/pkg/store"
)

// Color palette
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
)

// Header styles
var (
	DateStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)
)

// Row styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorSelectionBg)

	PlainRowStyle = lipgloss.NewStyle().
			Foreground(ColorOffWhite)

	DismissedStyle = lipgloss.NewStyle().
			Foreground(ColorGrayDim)

	DueTimeStyle = lipgloss.NewStyle().
			Foreground(ColorGray)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)

	NotificationStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorYellow).
				Padding(1, 2)

	NotificationTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorYellow)
)

// History styles
var (
	HistoryDateStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorBlue)

	HistoryEntryStyle = lipgloss.NewStyle().
				Foreground(ColorGray).
				Strikethrough(true)
)

// Input styles
var (
	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorPurple).
				Bold(true)

	FormLabelStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Width(10)

	FormFocusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPurple)
)

// Icons
const (
	IconPending = "○"
	IconAlert   = "⏰"
	IconDate    = "📅"
)

// PriorityStyle returns the row style for a priority color tag.
func PriorityStyle(p store.Priority) lipgloss.Style {
	switch p {
	case store.PriorityHigh:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case store.PriorityMedium:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case store.PriorityInfo:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	default:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	}
}
