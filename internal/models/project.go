package models

import (
	"slices"
	"time"

	"github.com/thenoetrevino/quadro/internal/types"
)

// Project is a single card on the board.
// Dates are calendar days; the time-of-day part is always midnight UTC.
type Project struct {
	ID               types.ProjectID
	Name             string
	Status           Status
	Responsibles     []ResponsibleRef
	PlannedStart     *time.Time
	PlannedEnd       *time.Time
	ActualStart      *time.Time
	ActualEnd        *time.Time
	DaysLate         int     // Derived by the server
	RemainingPercent float64 // Derived by the server, 0-100
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ResponsibleRef is a weak reference to a responsible person.
// The project never owns the person; Name is a display convenience.
type ResponsibleRef struct {
	ID   types.ResponsibleID
	Name string
}

// GetID returns the numeric project id (used by the CLI quiet output)
func (p *Project) GetID() int {
	return p.ID.ToInt()
}

// Clone returns a deep copy so callers can never alias board state.
func (p Project) Clone() Project {
	c := p
	c.Responsibles = slices.Clone(p.Responsibles)
	c.PlannedStart = cloneDate(p.PlannedStart)
	c.PlannedEnd = cloneDate(p.PlannedEnd)
	c.ActualStart = cloneDate(p.ActualStart)
	c.ActualEnd = cloneDate(p.ActualEnd)
	return c
}

func cloneDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := *t
	return &d
}
