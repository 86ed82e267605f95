// Package styles holds the lipgloss styles used by human-readable CLI output
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 64

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Planned:"
	ValueStyle    lipgloss.Style // For field values

	// Outcome styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	statusStyles map[models.Status]lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.SuccessFg)).
		Background(lipgloss.Color(colors.SuccessBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusToStart:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.ToStart)),
		models.StatusInProgress: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.InProgress)),
		models.StatusLate:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Late)),
		models.StatusDone:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors.Done)),
	}
}

// Status renders a status title in its column color
func Status(s models.Status) string {
	if style, ok := statusStyles[s]; ok {
		return style.Render(s.Title())
	}
	return s.Title()
}
