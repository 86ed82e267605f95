package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/models"
)

// Styles are built once from the configured color scheme.
type Styles struct {
	Title         lipgloss.Style
	Subtle        lipgloss.Style
	Normal        lipgloss.Style
	Column        lipgloss.Style
	ColumnHeaders map[models.Status]lipgloss.Style
	Card          lipgloss.Style
	SelectedCard  lipgloss.Style
	DragCard      lipgloss.Style
	CardName      lipgloss.Style
	Pending       lipgloss.Style
	Late          lipgloss.Style
	BarFilled     lipgloss.Style
	BarEmpty      lipgloss.Style
	Menu          lipgloss.Style
	MenuItem      lipgloss.Style
	MenuCursor    lipgloss.Style
}

// NewStyles derives every board style from scheme.
func NewStyles(scheme config.ColorScheme) Styles {
	accent := lipgloss.Color(scheme.Accent)

	s := Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Title)),
		Subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),
		Normal: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Normal)),

		Column: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.ColumnBorder)).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(scheme.CardBorder)).
			Padding(0, 1),

		CardName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Normal)),
		Pending:  lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(scheme.Pending)),
		Late:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(scheme.Late)),

		BarFilled: lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.InProgress)),
		BarEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Subtle)),

		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2),
		MenuItem:   lipgloss.NewStyle().Foreground(lipgloss.Color(scheme.Normal)),
		MenuCursor: lipgloss.NewStyle().Bold(true).Foreground(accent),
	}
	s.SelectedCard = s.Card.BorderForeground(lipgloss.Color(scheme.SelectedBorder))
	s.DragCard = s.Card.BorderStyle(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(scheme.DragBorder))

	headerColors := map[models.Status]string{
		models.StatusToStart:    scheme.ToStart,
		models.StatusInProgress: scheme.InProgress,
		models.StatusLate:       scheme.Late,
		models.StatusDone:       scheme.Done,
	}
	s.ColumnHeaders = make(map[models.Status]lipgloss.Style, len(headerColors))
	for status, c := range headerColors {
		s.ColumnHeaders[status] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c))
	}
	return s
}
