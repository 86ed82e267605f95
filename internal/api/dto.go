package api

import (
	"fmt"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// ResponsibleRef is a project's weak reference to a person on the wire
type ResponsibleRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ProjectResponse is the JSON form of a project. Dates are YYYY-MM-DD.
type ProjectResponse struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	Status           models.Status    `json:"status"`
	Responsibles     []ResponsibleRef `json:"responsibles"`
	PlannedStart     string           `json:"planned_start,omitempty"`
	PlannedEnd       string           `json:"planned_end,omitempty"`
	ActualStart      string           `json:"actual_start,omitempty"`
	ActualEnd        string           `json:"actual_end,omitempty"`
	DaysLate         int              `json:"days_late"`
	RemainingPercent float64          `json:"remaining_percent"`
}

// ProjectRequest is the body of project create and update
type ProjectRequest struct {
	Name           string `json:"name"`
	ResponsibleIDs []int  `json:"responsible_ids"`
	PlannedStart   string `json:"planned_start,omitempty"`
	PlannedEnd     string `json:"planned_end,omitempty"`
	ActualStart    string `json:"actual_start,omitempty"`
	ActualEnd      string `json:"actual_end,omitempty"`
}

// ResponsibleResponse is the JSON form of a responsible
type ResponsibleResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ResponsibleRequest is the body of responsible create
type ResponsibleRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewProjectResponse converts a project for the wire
func NewProjectResponse(p *models.Project) ProjectResponse {
	refs := make([]ResponsibleRef, 0, len(p.Responsibles))
	for _, r := range p.Responsibles {
		refs = append(refs, ResponsibleRef{ID: r.ID.ToInt(), Name: r.Name})
	}
	return ProjectResponse{
		ID:               p.ID.ToInt(),
		Name:             p.Name,
		Status:           p.Status,
		Responsibles:     refs,
		PlannedStart:     models.FormatDate(p.PlannedStart),
		PlannedEnd:       models.FormatDate(p.PlannedEnd),
		ActualStart:      models.FormatDate(p.ActualStart),
		ActualEnd:        models.FormatDate(p.ActualEnd),
		DaysLate:         p.DaysLate,
		RemainingPercent: p.RemainingPercent,
	}
}

// Model converts the wire form back into a project
func (r ProjectResponse) Model() (*models.Project, error) {
	p := &models.Project{
		ID:               types.ProjectID(r.ID),
		Name:             r.Name,
		Status:           r.Status,
		DaysLate:         r.DaysLate,
		RemainingPercent: r.RemainingPercent,
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("project %d: %w: %q", r.ID, models.ErrUnknownStatus, r.Status)
	}
	for _, ref := range r.Responsibles {
		p.Responsibles = append(p.Responsibles, models.ResponsibleRef{ID: types.ResponsibleID(ref.ID), Name: ref.Name})
	}

	var err error
	if p.PlannedStart, err = models.ParseDate(r.PlannedStart); err != nil {
		return nil, err
	}
	if p.PlannedEnd, err = models.ParseDate(r.PlannedEnd); err != nil {
		return nil, err
	}
	if p.ActualStart, err = models.ParseDate(r.ActualStart); err != nil {
		return nil, err
	}
	if p.ActualEnd, err = models.ParseDate(r.ActualEnd); err != nil {
		return nil, err
	}
	return p, nil
}

// NewResponsibleResponse converts a responsible for the wire
func NewResponsibleResponse(r *models.Responsible) ResponsibleResponse {
	return ResponsibleResponse{ID: r.ID.ToInt(), Name: r.Name, Email: r.Email, Role: r.Role}
}
