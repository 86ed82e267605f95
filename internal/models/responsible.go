package models

import (
	"time"

	"github.com/thenoetrevino/quadro/internal/types"
)

// Responsible is a person who can be assigned to projects
type Responsible struct {
	ID        types.ResponsibleID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the weak reference stored on projects
func (r *Responsible) Ref() ResponsibleRef {
	return ResponsibleRef{ID: r.ID, Name: r.Name}
}

// GetID returns the numeric id (used by the CLI quiet output)
func (r *Responsible) GetID() int {
	return r.ID.ToInt()
}
