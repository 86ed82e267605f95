package project

import (
	"math"
	"time"

	"github.com/thenoetrevino/quadro/internal/models"
)

// Clock returns the current time. The service only looks at its calendar day.
type Clock func() time.Time

func before(d *time.Time, today time.Time) bool {
	return d != nil && models.Day(*d).Before(today)
}

func after(d *time.Time, today time.Time) bool {
	return d != nil && models.Day(*d).After(today)
}

// DeriveStatus computes the status implied by a project's dates on the given day.
//
//   - DONE when the actual end is set
//   - IN_PROGRESS when started and the planned end is still ahead
//   - LATE when the planned start passed without a start, or the planned end passed
//   - TO_START otherwise
func DeriveStatus(p *models.Project, today time.Time) models.Status {
	today = models.Day(today)

	if p.ActualEnd != nil {
		return models.StatusDone
	}
	if p.ActualStart != nil && after(p.PlannedEnd, today) {
		return models.StatusInProgress
	}

	lateStart := before(p.PlannedStart, today) && p.ActualStart == nil
	lateEnd := before(p.PlannedEnd, today)
	if lateStart || lateEnd {
		return models.StatusLate
	}
	return models.StatusToStart
}

// DaysLate counts the days since the planned end for unfinished projects that
// have started. It depends on p.Status, so derive the status first.
func DaysLate(p *models.Project, today time.Time) int {
	today = models.Day(today)
	if p.ActualEnd != nil || p.PlannedEnd == nil {
		return 0
	}
	if before(p.PlannedEnd, today) && p.Status != models.StatusToStart {
		return models.DaysBetween(*p.PlannedEnd, today)
	}
	return 0
}

// RemainingPercent is the share of the planned window still ahead, clamped to 0-100.
// Projects without both planned dates, not started, or done report 0.
func RemainingPercent(p *models.Project, today time.Time) float64 {
	today = models.Day(today)
	if p.PlannedStart == nil || p.PlannedEnd == nil ||
		p.Status == models.StatusToStart || p.Status == models.StatusDone {
		return 0
	}

	total := models.DaysBetween(*p.PlannedStart, *p.PlannedEnd)
	if total <= 0 {
		return 0
	}
	remaining := total - models.DaysBetween(*p.PlannedStart, today)
	if remaining < 0 {
		return 0
	}
	return math.Min(100, math.Max(0, float64(remaining)*100/float64(total)))
}

// ApplyMetrics recomputes the status and the derived fields in place.
func ApplyMetrics(p *models.Project, today time.Time) {
	p.Status = DeriveStatus(p, today)
	p.DaysLate = DaysLate(p, today)
	p.RemainingPercent = RemainingPercent(p, today)
}
