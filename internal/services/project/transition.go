package project

import (
	"fmt"
	"time"

	"github.com/thenoetrevino/quadro/internal/models"
)

func ruleError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransitionRule, fmt.Sprintf(format, args...))
}

// applyTransition performs the date side effects of moving p to target and
// checks the rules attached to that particular source and target pair.
// p is modified in place; callers work on a copy and persist only on success.
func applyTransition(p *models.Project, target models.Status, today time.Time) error {
	today = models.Day(today)

	switch p.Status {
	case models.StatusToStart:
		switch target {
		case models.StatusInProgress:
			p.ActualStart = models.DayPtr(today)
		case models.StatusLate:
			if after(p.PlannedStart, today) {
				return ruleError("cannot mark as late before the planned start date")
			}
		case models.StatusDone:
			p.ActualEnd = models.DayPtr(today)
		}

	case models.StatusInProgress:
		switch target {
		case models.StatusToStart:
			p.ActualStart = nil
		case models.StatusLate:
			plannedPassed := before(p.PlannedStart, today) || before(p.PlannedEnd, today)
			if p.ActualStart == nil && !plannedPassed {
				return ruleError("to mark as late, clear the actual start or move a planned date into the past")
			}
		case models.StatusDone:
			p.ActualEnd = models.DayPtr(today)
		}

	case models.StatusLate:
		switch target {
		case models.StatusToStart:
			if p.ActualStart != nil {
				return ruleError("clear the actual start to move back to To Start")
			}
			if err := requireFuturePlan(p, today); err != nil {
				return err
			}
			p.ActualStart = nil
		case models.StatusInProgress:
			if p.PlannedStart == nil || p.PlannedEnd == nil {
				return ruleError("planned start and planned end must be set")
			}
			if before(p.PlannedStart, today) || before(p.PlannedEnd, today) {
				return ruleError("move the planned start and end to today or later to mark as in progress")
			}
		case models.StatusDone:
			p.ActualEnd = models.DayPtr(today)
		}

	case models.StatusDone:
		switch target {
		case models.StatusToStart:
			if p.ActualEnd == nil {
				return ruleError("actual end is already empty")
			}
			p.ActualEnd = nil
			p.ActualStart = nil
			if err := requireFuturePlan(p, today); err != nil {
				return err
			}
			if err := requireNotLate(p, today); err != nil {
				return err
			}
		case models.StatusInProgress:
			p.ActualEnd = nil
			if err := requireNotLate(p, today); err != nil {
				return err
			}
		case models.StatusLate:
			p.ActualEnd = nil
			if DeriveStatus(p, today) != models.StatusLate {
				return ruleError("reopening this project would not make it late; adjust the dates first")
			}
		}
	}
	return nil
}

func requireFuturePlan(p *models.Project, today time.Time) error {
	if before(p.PlannedStart, today) {
		return ruleError("move the planned start to today or later")
	}
	if before(p.PlannedEnd, today) {
		return ruleError("move the planned end to today or later")
	}
	return nil
}

func requireNotLate(p *models.Project, today time.Time) error {
	if DeriveStatus(p, today) == models.StatusLate {
		return ruleError("reopening this project would make it late; adjust the dates first")
	}
	return nil
}
