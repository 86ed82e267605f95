// Package layers positions overlay content on top of the board
package layers

import "charm.land/lipgloss/v2"

// Margin keeps corner overlays off the terminal edge
const Margin = 1

// CreateCenteredLayer creates a layer positioned at the center of the screen.
// Returns nil if content is empty.
func CreateCenteredLayer(content string, screenWidth int, screenHeight int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x, y := CenteredPosition(content, screenWidth, screenHeight)
	return lipgloss.NewLayer(content).X(x).Y(y)
}

// CenteredPosition returns the top-left corner that centers content on the screen.
func CenteredPosition(content string, screenWidth int, screenHeight int) (int, int) {
	x := (screenWidth - lipgloss.Width(content)) / 2
	y := (screenHeight - lipgloss.Height(content)) / 2
	return max(x, 0), max(y, 0)
}

// CreateTopRightLayer anchors content to the top-right corner, offset by Margin.
// Used for notification toasts. Returns nil if content is empty.
func CreateTopRightLayer(content string, screenWidth int) *lipgloss.Layer {
	if content == "" {
		return nil
	}

	x := max(screenWidth-lipgloss.Width(content)-Margin, 0)
	return lipgloss.NewLayer(content).X(x).Y(Margin).Z(1)
}
