package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/taskdeck/internal/model"
)

// Color palette based on TUI design
var (
	// Priority colors
	PriorityHighColor   = lipgloss.Color("#FF6B6B") // Red
	PriorityMediumColor = lipgloss.Color("#FFE66D") // Yellow
	PriorityLowColor    = lipgloss.Color("#4ECDC4") // Blue

	// Status colors
	Completed  = lipgloss.Color("#95E1A3") // Green
	InProgress = lipgloss.Color("#FFB347") // Orange
	ErrorColor = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// categoryColors maps the palette to terminal colors
var categoryColors = map[model.Color]lipgloss.Color{
	model.ColorRed:    lipgloss.Color("#EF4444"),
	model.ColorYellow: lipgloss.Color("#EAB308"),
	model.ColorGreen:  lipgloss.Color("#22C55E"),
	model.ColorBlue:   lipgloss.Color("#3B82F6"),
	model.ColorIndigo: lipgloss.Color("#6366F1"),
	model.ColorPurple: lipgloss.Color("#A855F7"),
	model.ColorPink:   lipgloss.Color("#EC4899"),
}

// Styles
var (
	// Header
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 2)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Underline(true).
			Padding(0, 2)

	// Sidebar
	SidebarStyle = lipgloss.NewStyle().
			Width(20).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 1)

	// Content area
	ContentStyle = lipgloss.NewStyle().
			Padding(1, 2)

	// List rows
	ItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	ItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	// Priority badges
	PriorityHighStyle   = lipgloss.NewStyle().Foreground(PriorityHighColor).Bold(true)
	PriorityMediumStyle = lipgloss.NewStyle().Foreground(PriorityMediumColor)
	PriorityLowStyle    = lipgloss.NewStyle().Foreground(PriorityLowColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ToastSuccessStyle = lipgloss.NewStyle().Foreground(Completed).Bold(true)
	ToastErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	ErrorStyle        = lipgloss.NewStyle().Foreground(ErrorColor)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// FormatPriority returns a colored priority label
func FormatPriority(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return PriorityHighStyle.Render("▲ " + p.Label())
	case model.PriorityMedium:
		return PriorityMediumStyle.Render("  " + p.Label())
	default:
		return PriorityLowStyle.Render("  " + p.Label())
	}
}

// FormatStatus returns the checkbox icon for a status
func FormatStatus(s model.Status) string {
	switch s {
	case model.StatusInProgress:
		return lipgloss.NewStyle().Foreground(InProgress).Render("[~]")
	case model.StatusDone:
		return lipgloss.NewStyle().Foreground(Completed).Render("[x]")
	default:
		return "[ ]"
	}
}

// CategoryBadge renders a category name in its color
func CategoryBadge(c model.Category) string {
	return lipgloss.NewStyle().Foreground(categoryColors[c.Color]).Render("● " + c.Name)
}

// ColorSwatch renders a palette entry
func ColorSwatch(c model.Color) string {
	return lipgloss.NewStyle().Foreground(categoryColors[c]).Render("● " + c.Name())
}
