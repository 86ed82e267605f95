package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

const projectColumns = `id, name, status, planned_start, planned_end, actual_start, actual_end,
	days_late, remaining_percent, created_at, updated_at`

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	var status string
	var plannedStart, plannedEnd, actualStart, actualEnd sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &status, &plannedStart, &plannedEnd, &actualStart, &actualEnd,
		&p.DaysLate, &p.RemainingPercent, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = models.Status(status)

	var err error
	if p.PlannedStart, err = nullToDate(plannedStart); err != nil {
		return nil, err
	}
	if p.PlannedEnd, err = nullToDate(plannedEnd); err != nil {
		return nil, err
	}
	if p.ActualStart, err = nullToDate(actualStart); err != nil {
		return nil, err
	}
	if p.ActualEnd, err = nullToDate(actualEnd); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a project together with its responsible links
func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	var id int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO projects (name, status, planned_start, planned_end, actual_start, actual_end,
				days_late, remaining_percent)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, string(p.Status),
			dateToNull(p.PlannedStart), dateToNull(p.PlannedEnd),
			dateToNull(p.ActualStart), dateToNull(p.ActualEnd),
			p.DaysLate, p.RemainingPercent,
		)
		if err != nil {
			return fmt.Errorf("failed to insert project '%s': %w", p.Name, err)
		}

		id, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get project ID after insert: %w", err)
		}
		return replaceLinks(ctx, tx, types.ProjectID(id), p.Responsibles)
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, types.ProjectID(id))
}

// Update writes every field of the project and replaces its responsible links
func (r *ProjectRepo) Update(ctx context.Context, p *models.Project) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE projects SET name = ?, status = ?, planned_start = ?, planned_end = ?,
				actual_start = ?, actual_end = ?, days_late = ?, remaining_percent = ?,
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			p.Name, string(p.Status),
			dateToNull(p.PlannedStart), dateToNull(p.PlannedEnd),
			dateToNull(p.ActualStart), dateToNull(p.ActualEnd),
			p.DaysLate, p.RemainingPercent, p.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update project %d: %w", p.ID, err)
		}
		if err := checkAffected(result); err != nil {
			return fmt.Errorf("failed to update project %d: %w", p.ID, err)
		}
		return replaceLinks(ctx, tx, p.ID, p.Responsibles)
	})
}

// GetByID retrieves a project by its ID
func (r *ProjectRepo) GetByID(ctx context.Context, id types.ProjectID) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}

	refs, err := r.loadRefs(ctx, `WHERE pr.project_id = ?`, id)
	if err != nil {
		return nil, err
	}
	p.Responsibles = refs[id]
	return p, nil
}

// GetAll retrieves all projects ordered by ID
func (r *ProjectRepo) GetAll(ctx context.Context) ([]*models.Project, error) {
	return r.list(ctx, ``)
}

// GetByStatus retrieves the projects in one status ordered by ID
func (r *ProjectRepo) GetByStatus(ctx context.Context, status models.Status) ([]*models.Project, error) {
	return r.list(ctx, `WHERE status = ?`, string(status))
}

func (r *ProjectRepo) list(ctx context.Context, where string, args ...any) ([]*models.Project, error) {
	projects, err := r.queryProjects(ctx, where, args...)
	if err != nil {
		return nil, err
	}

	// the result set is closed by now; the pool holds a single connection
	refs, err := r.loadRefs(ctx, ``)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Responsibles = refs[p.ID]
	}
	return projects, nil
}

func (r *ProjectRepo) queryProjects(ctx context.Context, where string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer closeRows(rows)

	projects := make([]*models.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

// Delete removes a project; its responsible links cascade
func (r *ProjectRepo) Delete(ctx context.Context, id types.ProjectID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	if err := checkAffected(result); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	return nil
}

// loadRefs returns the responsible references of projects keyed by project id,
// in assignment order.
func (r *ProjectRepo) loadRefs(ctx context.Context, where string, args ...any) (map[types.ProjectID][]models.ResponsibleRef, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT pr.project_id, res.id, res.name
		FROM project_responsibles pr
		JOIN responsibles res ON res.id = pr.responsible_id
		`+where+`
		ORDER BY pr.project_id, pr.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query project responsibles: %w", err)
	}
	defer closeRows(rows)

	refs := make(map[types.ProjectID][]models.ResponsibleRef)
	for rows.Next() {
		var (
			projectID types.ProjectID
			ref       models.ResponsibleRef
		)
		if err := rows.Scan(&projectID, &ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan project responsible row: %w", err)
		}
		refs[projectID] = append(refs[projectID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project responsible rows: %w", err)
	}
	return refs, nil
}

func replaceLinks(ctx context.Context, tx *sql.Tx, id types.ProjectID, refs []models.ResponsibleRef) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM project_responsibles WHERE project_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear responsibles for project %d: %w", id, err)
	}
	for i, ref := range refs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_responsibles (project_id, responsible_id, position) VALUES (?, ?, ?)`,
			id, ref.ID, i,
		); err != nil {
			return fmt.Errorf("failed to link responsible %d to project %d: %w", ref.ID, id, err)
		}
	}
	return nil
}
