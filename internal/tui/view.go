package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/tui/layers"
	"github.com/thenoetrevino/quadro/internal/tui/notifications"
	"github.com/thenoetrevino/quadro/internal/tui/state"
)

const (
	columnGap      = 1
	minColumnWidth = 22
	barWidth       = 10
	maxShownPeople = 2
)

// View renders the board with the status menu, help and notifications as overlays.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	// Wait for terminal size to be initialized
	if m.ui.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	layerStack := []*lipgloss.Layer{lipgloss.NewLayer(m.viewBoard())}

	switch m.ui.Mode() {
	case state.StatusMenuMode:
		if l := layers.CreateCenteredLayer(m.viewStatusMenu(), m.ui.Width(), m.ui.Height()); l != nil {
			layerStack = append(layerStack, l)
		}
	case state.HelpMode:
		if l := layers.CreateCenteredLayer(m.viewHelp(), m.ui.Width(), m.ui.Height()); l != nil {
			layerStack = append(layerStack, l)
		}
	}

	toasts := notifications.RenderStack(m.notes.Active(), m.cfg.ColorScheme)
	if l := layers.CreateTopRightLayer(toasts, m.ui.Width()); l != nil {
		layerStack = append(layerStack, l)
	}

	view.Content = lipgloss.NewCanvas(layerStack...).Render()
	return view
}

func (m Model) viewBoard() string {
	columns := m.displayColumns()
	width := m.columnWidth()

	rendered := make([]string, 0, len(models.AllStatuses))
	for i, status := range models.AllStatuses {
		if i > 0 {
			rendered = append(rendered, strings.Repeat(" ", columnGap))
		}
		rendered = append(rendered, m.viewColumn(status, columns[status], width))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTitle(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		"",
		m.viewFooter(),
	)
}

func (m Model) viewTitle() string {
	parts := []string{m.styles.Title.Render(m.title)}
	if !m.loaded {
		parts = append(parts, m.styles.Subtle.Render("loading..."))
	} else {
		parts = append(parts, m.styles.Subtle.Render(fmt.Sprintf("%d projects", m.store.Len())))
	}
	if n := m.coord.PendingCount(); n > 0 {
		parts = append(parts, m.styles.Pending.Render(fmt.Sprintf("%d saving", n)))
	}
	if _, dragging := m.recon.Active(); dragging {
		parts = append(parts, m.styles.Pending.Render("moving card"))
	}
	return strings.Join(parts, m.styles.Subtle.Render(" · "))
}

func (m Model) viewFooter() string {
	switch {
	case m.recon.Dragging():
		return m.help.ShortHelpView(m.keys.dragHelp())
	case m.ui.Mode() == state.StatusMenuMode:
		return m.help.ShortHelpView(m.keys.menuHelp())
	default:
		return m.help.View(m.keys)
	}
}

// boardCard is a card as it should be drawn right now.
type boardCard struct {
	project  models.Project
	dragged  bool
	selected bool
}

// displayColumns lays out the store, moving the dragged card to its hover
// position so the board previews the drop.
func (m Model) displayColumns() map[models.Status][]boardCard {
	drag, dragging := m.recon.Active()

	out := make(map[models.Status][]boardCard, len(models.AllStatuses))
	var dragged *boardCard
	for _, status := range models.AllStatuses {
		for _, p := range m.store.SnapshotForStatus(status) {
			card := boardCard{project: p}
			if dragging && p.ID == drag.ProjectID {
				card.dragged = true
				dragged = &card
				continue
			}
			out[status] = append(out[status], card)
		}
	}

	if dragged != nil {
		col := out[drag.Hover.Status]
		out[drag.Hover.Status] = slices.Insert(col, clamp(drag.Hover.Index, 0, len(col)), *dragged)
	} else if cards := out[m.ui.SelectedStatus()]; m.ui.SelectedCard() < len(cards) {
		cards[m.ui.SelectedCard()].selected = true
	}
	return out
}

func (m Model) columnWidth() int {
	n := len(models.AllStatuses)
	return max(minColumnWidth, (m.ui.Width()-columnGap*(n-1))/n)
}

func (m Model) viewColumn(status models.Status, cards []boardCard, width int) string {
	header := m.styles.ColumnHeaders[status].Render(status.Title()) +
		m.styles.Subtle.Render(fmt.Sprintf(" (%d)", len(cards)))

	// column border and padding
	cardWidth := width - 4
	visible := m.visibleCards()
	offset := m.ui.CardScrollOffset(status)
	offset = clamp(offset, 0, max(0, len(cards)-visible))

	lines := []string{header, ""}
	if len(cards) == 0 {
		lines = append(lines, m.styles.Subtle.Render("No projects"))
	}
	end := min(len(cards), offset+visible)
	if offset > 0 {
		lines[1] = m.styles.Subtle.Render(fmt.Sprintf("↑ %d more", offset))
	}
	for _, card := range cards[offset:end] {
		lines = append(lines, m.viewCard(card, cardWidth))
	}
	if end < len(cards) {
		lines = append(lines, m.styles.Subtle.Render(fmt.Sprintf("↓ %d more", len(cards)-end)))
	}

	return m.styles.Column.
		Width(width).
		Height(m.ui.ContentHeight()).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewCard(card boardCard, width int) string {
	p := card.project
	inner := max(1, width-4)

	name := truncate(p.Name, inner)
	if _, pending := m.coord.Pending(p.ID); pending {
		name = truncate(p.Name, max(1, inner-2)) + " " + m.styles.Pending.Render("⟳")
	}

	lines := []string{
		m.styles.CardName.Render(name),
		m.styles.Normal.Render(truncate(responsiblesLine(p.Responsibles), inner)),
		m.styles.Subtle.Render(truncate(datesLine(p), inner)),
		m.metricLine(p, inner),
	}

	style := m.styles.Card
	switch {
	case card.dragged:
		style = m.styles.DragCard
	case card.selected:
		style = m.styles.SelectedCard
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// metricLine shows how late a project is or how much planned time remains.
func (m Model) metricLine(p models.Project, width int) string {
	switch p.Status {
	case models.StatusLate:
		if p.DaysLate == 1 {
			return m.styles.Late.Render("1 day late")
		}
		return m.styles.Late.Render(fmt.Sprintf("%d days late", p.DaysLate))
	case models.StatusInProgress:
		return m.progressBar(p.RemainingPercent, width)
	case models.StatusDone:
		return m.styles.Subtle.Render(truncate("finished "+orDash(models.FormatDate(p.ActualEnd)), width))
	default:
		return m.styles.Subtle.Render(truncate("starts "+orDash(models.FormatDate(p.PlannedStart)), width))
	}
}

func (m Model) progressBar(remaining float64, width int) string {
	size := min(barWidth, max(1, width-5))
	filled := clamp(int(remaining*float64(size)/100+0.5), 0, size)
	return m.styles.BarFilled.Render(strings.Repeat("█", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("░", size-filled)) +
		m.styles.Subtle.Render(fmt.Sprintf(" %3.0f%%", remaining))
}

func (m Model) viewStatusMenu() string {
	menu := m.ui.Menu()
	lines := []string{
		m.styles.Title.Render("Move " + m.projectName(menu.ProjectID)),
		m.styles.Subtle.Render("currently " + menu.Current.Title()),
		"",
	}
	for i, target := range menu.Targets {
		if i == menu.Cursor {
			lines = append(lines, m.styles.MenuCursor.Render("> "+target.Title()))
			continue
		}
		lines = append(lines, m.styles.MenuItem.Render("  "+target.Title()))
	}
	return m.styles.Menu.Render(strings.Join(lines, "\n"))
}

func (m Model) viewHelp() string {
	return m.styles.Menu.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Keys"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
	))
}

// responsiblesLine lists the first people and a count of the rest.
func responsiblesLine(refs []models.ResponsibleRef) string {
	if len(refs) == 0 {
		return "unassigned"
	}
	names := make([]string, 0, maxShownPeople)
	for _, r := range refs[:min(len(refs), maxShownPeople)] {
		names = append(names, r.Name)
	}
	line := strings.Join(names, ", ")
	if extra := len(refs) - maxShownPeople; extra > 0 {
		line += fmt.Sprintf(" +%d", extra)
	}
	return line
}

func datesLine(p models.Project) string {
	return orDash(models.FormatDate(p.PlannedStart)) + " → " + orDash(models.FormatDate(p.PlannedEnd))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to width cells, ending with an ellipsis when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
