// Package seed imports responsibles and projects from a JSON file.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thenoetrevino/quadro/internal/models"
	projectservice "github.com/thenoetrevino/quadro/internal/services/project"
	responsibleservice "github.com/thenoetrevino/quadro/internal/services/responsible"
	"github.com/thenoetrevino/quadro/internal/types"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "https://quadro.local/seed.schema.json"

// File is the decoded seed document
type File struct {
	Responsibles []Responsible `json:"responsibles"`
	Projects     []Project     `json:"projects"`
}

// Responsible is a person to create, matched to existing ones by email
type Responsible struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Project references its responsibles by email
type Project struct {
	Name         string   `json:"name"`
	Responsibles []string `json:"responsibles"`
	PlannedStart string   `json:"planned_start"`
	PlannedEnd   string   `json:"planned_end"`
	ActualStart  string   `json:"actual_start"`
	ActualEnd    string   `json:"actual_end"`
}

// ValidationError points at the first part of the document that breaks the schema
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "invalid seed file: " + e.Message
	}
	return fmt.Sprintf("invalid seed file at %s: %s", e.Path, e.Message)
}

// Result counts what an import did
type Result struct {
	ResponsiblesCreated int `json:"responsibles_created"`
	ResponsiblesReused  int `json:"responsibles_reused"`
	ProjectsCreated     int `json:"projects_created"`
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
}

// Parse validates data against the seed schema and decodes it
func Parse(data []byte) (*File, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	if err := schema.Validate(doc); err != nil {
		return nil, toValidationError(err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	return &f, nil
}

// toValidationError reduces a schema error tree to its first leaf
func toValidationError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Message: err.Error()}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	path := ve.InstanceLocation
	if path == "" {
		path = "/"
	}
	return &ValidationError{Path: path, Message: ve.Message}
}

// Importer creates the contents of a seed file through the services
type Importer struct {
	projects     projectservice.Service
	responsibles responsibleservice.Service
}

// NewImporter creates an importer
func NewImporter(projects projectservice.Service, responsibles responsibleservice.Service) *Importer {
	return &Importer{projects: projects, responsibles: responsibles}
}

// Import validates data and creates everything in it. Responsibles whose email
// already exists are reused. Import stops at the first failure; what was
// created before it stays.
func (im *Importer) Import(ctx context.Context, data []byte) (Result, error) {
	var res Result

	f, err := Parse(data)
	if err != nil {
		return res, err
	}

	byEmail, err := im.existingResponsibles(ctx)
	if err != nil {
		return res, err
	}

	for _, r := range f.Responsibles {
		key := strings.ToLower(strings.TrimSpace(r.Email))
		if _, ok := byEmail[key]; ok {
			res.ResponsiblesReused++
			continue
		}
		created, err := im.responsibles.CreateResponsible(ctx, responsibleservice.CreateResponsibleRequest{
			Name:  r.Name,
			Email: r.Email,
			Role:  r.Role,
		})
		if err != nil {
			return res, fmt.Errorf("responsible %q: %w", r.Email, err)
		}
		byEmail[created.Email] = created.ID
		res.ResponsiblesCreated++
	}

	for i, p := range f.Projects {
		req, err := projectRequest(p, byEmail)
		if err != nil {
			return res, fmt.Errorf("project %d (%q): %w", i, p.Name, err)
		}
		if _, err := im.projects.CreateProject(ctx, req); err != nil {
			return res, fmt.Errorf("project %d (%q): %w", i, p.Name, err)
		}
		res.ProjectsCreated++
	}

	slog.Info("seed imported",
		"responsibles_created", res.ResponsiblesCreated,
		"responsibles_reused", res.ResponsiblesReused,
		"projects_created", res.ProjectsCreated,
	)
	return res, nil
}

func (im *Importer) existingResponsibles(ctx context.Context) (map[string]types.ResponsibleID, error) {
	all, err := im.responsibles.GetAllResponsibles(ctx)
	if err != nil {
		return nil, err
	}
	byEmail := make(map[string]types.ResponsibleID, len(all))
	for _, r := range all {
		byEmail[strings.ToLower(r.Email)] = r.ID
	}
	return byEmail, nil
}

func projectRequest(p Project, byEmail map[string]types.ResponsibleID) (projectservice.CreateProjectRequest, error) {
	req := projectservice.CreateProjectRequest{Name: p.Name}
	for _, email := range p.Responsibles {
		id, ok := byEmail[strings.ToLower(strings.TrimSpace(email))]
		if !ok {
			return req, fmt.Errorf("%w: %s", projectservice.ErrResponsibleNotFound, email)
		}
		req.ResponsibleIDs = append(req.ResponsibleIDs, id)
	}

	var err error
	if req.PlannedStart, err = models.ParseDate(p.PlannedStart); err != nil {
		return req, err
	}
	if req.PlannedEnd, err = models.ParseDate(p.PlannedEnd); err != nil {
		return req, err
	}
	if req.ActualStart, err = models.ParseDate(p.ActualStart); err != nil {
		return req, err
	}
	if req.ActualEnd, err = models.ParseDate(p.ActualEnd); err != nil {
		return req, err
	}
	return req, nil
}
