package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/types"
)

// ResponsibleRepo handles all responsible-related database operations.
type ResponsibleRepo struct {
	db *sql.DB
}

const responsibleColumns = `id, name, email, role, created_at, updated_at`

func scanResponsible(row rowScanner) (*models.Responsible, error) {
	r := &models.Responsible{}
	if err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Role, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts a responsible
func (r *ResponsibleRepo) Create(ctx context.Context, name, email, role string) (*models.Responsible, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO responsibles (name, email, role) VALUES (?, ?, ?)`,
		name, email, role,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert responsible '%s': %w", name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get responsible ID after insert: %w", err)
	}
	return r.GetByID(ctx, types.ResponsibleID(id))
}

// GetByID retrieves a responsible by its ID
func (r *ResponsibleRepo) GetByID(ctx context.Context, id types.ResponsibleID) (*models.Responsible, error) {
	res, err := scanResponsible(r.db.QueryRowContext(ctx,
		`SELECT `+responsibleColumns+` FROM responsibles WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get responsible %d: %w", id, err)
	}
	return res, nil
}

// GetByEmail retrieves a responsible by email, case-insensitively
func (r *ResponsibleRepo) GetByEmail(ctx context.Context, email string) (*models.Responsible, error) {
	res, err := scanResponsible(r.db.QueryRowContext(ctx,
		`SELECT `+responsibleColumns+` FROM responsibles WHERE lower(email) = lower(?)`, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get responsible by email: %w", err)
	}
	return res, nil
}

// GetAll retrieves all responsibles ordered by name
func (r *ResponsibleRepo) GetAll(ctx context.Context) ([]*models.Responsible, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+responsibleColumns+` FROM responsibles ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query responsibles: %w", err)
	}
	defer closeRows(rows)

	var out []*models.Responsible
	for rows.Next() {
		res, err := scanResponsible(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan responsible row: %w", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating responsible rows: %w", err)
	}
	return out, nil
}

// Update writes name, email and role
func (r *ResponsibleRepo) Update(ctx context.Context, res *models.Responsible) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE responsibles SET name = ?, email = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		res.Name, res.Email, res.Role, res.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update responsible %d: %w", res.ID, err)
	}
	if err := checkAffected(result); err != nil {
		return fmt.Errorf("failed to update responsible %d: %w", res.ID, err)
	}
	return nil
}

// Delete removes a responsible; project links cascade
func (r *ResponsibleRepo) Delete(ctx context.Context, id types.ResponsibleID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM responsibles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete responsible %d: %w", id, err)
	}
	if err := checkAffected(result); err != nil {
		return fmt.Errorf("failed to delete responsible %d: %w", id, err)
	}
	return nil
}
