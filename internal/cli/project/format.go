package project

import (
	"fmt"
	"strings"

	"github.com/thenoetrevino/quadro/internal/api"
	"github.com/thenoetrevino/quadro/internal/cli/styles"
	"github.com/thenoetrevino/quadro/internal/models"
)

func toJSON(projects []*models.Project) []api.ProjectResponse {
	out := make([]api.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, api.NewProjectResponse(p))
	}
	return out
}

func responsibleNames(p *models.Project) string {
	if len(p.Responsibles) == 0 {
		return "unassigned"
	}
	names := make([]string, 0, len(p.Responsibles))
	for _, r := range p.Responsibles {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

func dateOrDash(d string) string {
	if d == "" {
		return "-"
	}
	return d
}

// summary is the one-line form used by list
func summary(p *models.Project) string {
	line := fmt.Sprintf("  [%d] %s - %s", p.ID, p.Name, styles.Status(p.Status))
	switch p.Status {
	case models.StatusLate:
		line += fmt.Sprintf(" (%d days late)", p.DaysLate)
	case models.StatusInProgress:
		line += fmt.Sprintf(" (%.0f%% remaining)", p.RemainingPercent)
	}
	return line
}

// card is the detailed form used by show
func card(p *models.Project) string {
	field := func(label, value string) string {
		return styles.LabelStyle.Render(label+":") + " " + styles.ValueStyle.Render(value)
	}
	lines := []string{
		styles.TitleStyle.Render(p.Name) + " " + styles.SubtitleStyle.Render(fmt.Sprintf("#%d", p.ID)),
		"",
		field("Status", "") + styles.Status(p.Status),
		field("Responsibles", responsibleNames(p)),
		field("Planned", dateOrDash(models.FormatDate(p.PlannedStart))+" → "+dateOrDash(models.FormatDate(p.PlannedEnd))),
		field("Actual", dateOrDash(models.FormatDate(p.ActualStart))+" → "+dateOrDash(models.FormatDate(p.ActualEnd))),
		field("Days late", fmt.Sprintf("%d", p.DaysLate)),
		field("Remaining", fmt.Sprintf("%.0f%%", p.RemainingPercent)),
	}
	return styles.CardStyle.Render(strings.Join(lines, "\n"))
}
