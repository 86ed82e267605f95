package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/quadro/internal/models"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
	"github.com/thenoetrevino/quadro/internal/types"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.metrics.GetSnapshot())
}

// Projects

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.projects.GetAllProjects(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectList(projects))
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := s.projects.GetProjectByID(c.Request.Context(), types.ProjectID(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProjectResponse(p))
}

func (s *Server) handleCreateProject(c *gin.Context) {
	req, ok := bindProject(c)
	if !ok {
		return
	}
	p, err := s.projects.CreateProject(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewProjectResponse(p))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindProject(c)
	if !ok {
		return
	}
	p, err := s.projects.UpdateProject(c.Request.Context(), projectservice.UpdateProjectRequest{
		ID:                   types.ProjectID(id),
		CreateProjectRequest: req,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewProjectResponse(p))
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.projects.DeleteProject(c.Request.Context(), types.ProjectID(id)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleProjectsByStatus(c *gin.Context) {
	status, ok := pathStatus(c)
	if !ok {
		return
	}
	projects, err := s.projects.GetProjectsByStatus(c.Request.Context(), status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, projectList(projects))
}

func (s *Server) handleChangeStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	status, ok := pathStatus(c)
	if !ok {
		return
	}
	p, err := s.projects.ChangeStatus(c.Request.Context(), types.ProjectID(id), status)
	if err != nil {
		s.metrics.IncStatusRejections()
		writeError(c, err)
		return
	}
	s.metrics.IncStatusChanges()
	c.JSON(http.StatusOK, NewProjectResponse(p))
}

// Responsibles

func (s *Server) handleListResponsibles(c *gin.Context) {
	all, err := s.responsibles.GetAllResponsibles(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]ResponsibleResponse, 0, len(all))
	for _, r := range all {
		out = append(out, NewResponsibleResponse(r))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetResponsible(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	r, err := s.responsibles.GetResponsibleByID(c.Request.Context(), types.ResponsibleID(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponsibleResponse(r))
}

func (s *Server) handleCreateResponsible(c *gin.Context) {
	var body ResponsibleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	r, err := s.responsibles.CreateResponsible(c.Request.Context(), responsibleservice.CreateResponsibleRequest{
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewResponsibleResponse(r))
}

func (s *Server) handleUpdateResponsible(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Role  *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}
	r, err := s.responsibles.UpdateResponsible(c.Request.Context(), responsibleservice.UpdateResponsibleRequest{
		ID:    types.ResponsibleID(id),
		Name:  body.Name,
		Email: body.Email,
		Role:  body.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewResponsibleResponse(r))
}

func (s *Server) handleDeleteResponsible(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := s.responsibles.DeleteResponsible(c.Request.Context(), types.ResponsibleID(id)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Helpers

func pathID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid URL parameter: "+raw)
		return 0, false
	}
	return id, true
}

func pathStatus(c *gin.Context) (models.Status, bool) {
	raw := c.Param("status")
	status, err := models.ParseStatus(raw)
	if err != nil {
		badRequest(c, fmt.Sprintf("%s: %q", projectservice.ErrInvalidStatus, raw))
		return "", false
	}
	return status, true
}

func bindProject(c *gin.Context) (projectservice.CreateProjectRequest, bool) {
	var body ProjectRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return projectservice.CreateProjectRequest{}, false
	}

	req := projectservice.CreateProjectRequest{Name: body.Name}
	for _, id := range body.ResponsibleIDs {
		req.ResponsibleIDs = append(req.ResponsibleIDs, types.ResponsibleID(id))
	}

	dates := []struct {
		raw string
		dst **time.Time
	}{
		{body.PlannedStart, &req.PlannedStart},
		{body.PlannedEnd, &req.PlannedEnd},
		{body.ActualStart, &req.ActualStart},
		{body.ActualEnd, &req.ActualEnd},
	}
	for _, d := range dates {
		t, err := models.ParseDate(d.raw)
		if err != nil {
			badRequest(c, err.Error())
			return projectservice.CreateProjectRequest{}, false
		}
		*d.dst = t
	}
	return req, true
}

func projectList(projects []*models.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, NewProjectResponse(p))
	}
	return out
}
