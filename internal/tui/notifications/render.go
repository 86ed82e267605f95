// Package notifications draws notify.Center entries as toast banners
package notifications

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/quadro/internal/config"
	"github.com/thenoetrevino/quadro/internal/notify"
)

// MaxWidth caps the toast width; longer messages wrap
const MaxWidth = 48

// Render renders a single notification banner
func Render(n notify.Notification, scheme config.ColorScheme) string {
	style := styleFor(n.Kind, scheme)

	headerText := style.icon + " " + style.title
	width := min(max(lipgloss.Width(headerText), lipgloss.Width(n.Message)), MaxWidth)

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(true).
		Width(width).
		Render(headerText)

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Width(width).
		Render(n.Message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.background)).
		Background(lipgloss.Color(style.background)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, message))
}

// RenderStack renders notifications newest first, one under the other.
// Returns "" when there is nothing to show.
func RenderStack(items []notify.Notification, scheme config.ColorScheme) string {
	if len(items) == 0 {
		return ""
	}
	banners := make([]string, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		banners = append(banners, Render(items[i], scheme))
	}
	return lipgloss.JoinVertical(lipgloss.Right, banners...)
}
