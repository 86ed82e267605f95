package state

import (
	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// Mode represents the current interaction mode of the TUI.
// Dragging is not a mode here: the reconciler owns the gesture state.
type Mode int

const (
	NormalMode     Mode = iota // Default navigation mode
	StatusMenuMode             // Status picker popup for the selected card
	HelpMode                   // Full key binding reference
)

// StatusMenu is the popup listing the legal targets for one project.
type StatusMenu struct {
	ProjectID types.ProjectID
	Current   models.Status
	Targets   []models.Status
	Cursor    int
}

// Selected returns the highlighted target.
func (m StatusMenu) Selected() (models.Status, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Targets) {
		return "", false
	}
	return m.Targets[m.Cursor], true
}

// UIState manages the user interface state: selection, terminal
// dimensions, vertical scroll per column and the current mode.
type UIState struct {
	// selectedColumn is the index into models.AllStatuses
	selectedColumn int

	// selectedCard is the index of the selected card within the selected column
	selectedCard int

	width  int
	height int

	mode Mode
	menu StatusMenu

	// cardScrollOffsets is the index of the first visible card per column
	cardScrollOffsets map[models.Status]int
}

// NewUIState creates a new UIState with default values.
func NewUIState() *UIState {
	return &UIState{
		mode:              NormalMode,
		cardScrollOffsets: make(map[models.Status]int),
	}
}

// SelectedColumn returns the index of the currently selected column.
func (s *UIState) SelectedColumn() int {
	return s.selectedColumn
}

// SelectedStatus returns the status of the currently selected column.
func (s *UIState) SelectedStatus() models.Status {
	return models.AllStatuses[s.selectedColumn]
}

// SetSelectedColumn updates the selected column index, clamped to the board.
func (s *UIState) SetSelectedColumn(index int) {
	s.selectedColumn = clamp(index, 0, len(models.AllStatuses)-1)
}

// SelectStatus moves the column selection to status.
func (s *UIState) SelectStatus(status models.Status) {
	if i := status.Index(); i >= 0 {
		s.selectedColumn = i
	}
}

// SelectedCard returns the index of the currently selected card.
func (s *UIState) SelectedCard() int {
	return s.selectedCard
}

// SetSelectedCard updates the selected card index.
func (s *UIState) SetSelectedCard(index int) {
	s.selectedCard = max(0, index)
}

// ClampSelection keeps the card selection inside a column of n cards.
func (s *UIState) ClampSelection(n int) {
	s.selectedCard = clamp(s.selectedCard, 0, max(0, n-1))
}

// Width returns the current terminal width.
func (s *UIState) Width() int {
	return s.width
}

// SetWidth updates the terminal width.
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the current terminal height.
func (s *UIState) Height() int {
	return s.height
}

// SetHeight updates the terminal height.
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// ContentHeight returns the height available to the columns.
// This is terminal height minus title bar and help footer, ensuring a minimum of 5.
func (s *UIState) ContentHeight() int {
	const titleBarHeight = 2 // title + gap line
	const footerHeight = 2   // gap line + help
	return max(s.height-titleBarHeight-footerHeight, 5)
}

// Mode returns the current interaction mode.
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode updates the current interaction mode.
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}

// OpenStatusMenu switches to StatusMenuMode for a project.
func (s *UIState) OpenStatusMenu(id types.ProjectID, current models.Status) {
	s.menu = StatusMenu{
		ProjectID: id,
		Current:   current,
		Targets:   models.LegalTargets(current),
	}
	s.mode = StatusMenuMode
}

// CloseStatusMenu returns to NormalMode.
func (s *UIState) CloseStatusMenu() {
	s.menu = StatusMenu{}
	s.mode = NormalMode
}

// Menu returns the open status menu.
func (s *UIState) Menu() StatusMenu {
	return s.menu
}

// MoveMenuCursor moves the menu highlight by delta, stopping at either end.
func (s *UIState) MoveMenuCursor(delta int) {
	s.menu.Cursor = clamp(s.menu.Cursor+delta, 0, max(0, len(s.menu.Targets)-1))
}

// CardScrollOffset returns the vertical scroll offset for a column.
func (s *UIState) CardScrollOffset(status models.Status) int {
	return s.cardScrollOffsets[status]
}

// EnsureCardVisible adjusts the scroll offset so the card at index is on screen.
//
// Parameters:
//   - status: the column containing the card
//   - index: position of the card within the column
//   - visibleCount: number of cards that can be displayed at once
func (s *UIState) EnsureCardVisible(status models.Status, index int, visibleCount int) {
	visibleCount = max(1, visibleCount)
	offset := s.cardScrollOffsets[status]

	if index < offset {
		offset = index
	}
	if index >= offset+visibleCount {
		offset = index - visibleCount + 1
	}
	s.cardScrollOffsets[status] = max(0, offset)
}

// ResetSelection resets column, card and scroll state.
func (s *UIState) ResetSelection() {
	s.selectedColumn = 0
	s.selectedCard = 0
	clear(s.cardScrollOffsets)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
