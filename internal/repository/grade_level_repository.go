package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// GradeLevelRepository manages persistence for grade levels.
type GradeLevelRepository struct {
	db *sqlx.DB
}

// NewGradeLevelRepository constructs a GradeLevelRepository.
func NewGradeLevelRepository(db *sqlx.DB) *GradeLevelRepository {
	return &GradeLevelRepository{db: db}
}

// List returns every grade level.
func (r *GradeLevelRepository) List(ctx context.Context) ([]models.GradeLevel, error) {
	const query = `SELECT id, name, description FROM grade_levels ORDER BY id`
	var levels []models.GradeLevel
	if err := r.db.SelectContext(ctx, &levels, query); err != nil {
		return nil, fmt.Errorf("list grade levels: %w", err)
	}
	return levels, nil
}

// FindByID fetches a grade level by id.
func (r *GradeLevelRepository) FindByID(ctx context.Context, id int64) (*models.GradeLevel, error) {
	const query = `SELECT id, name, description FROM grade_levels WHERE id = $1 LIMIT 1`
	var level models.GradeLevel
	if err := r.db.GetContext(ctx, &level, query, id); err != nil {
		return nil, err
	}
	return &level, nil
}

// Create inserts a new grade level and fills in the generated id.
func (r *GradeLevelRepository) Create(ctx context.Context, level *models.GradeLevel) error {
	const query = `INSERT INTO grade_levels (name, description) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &level.ID, query, level.Name, level.Description); err != nil {
		return fmt.Errorf("create grade level: %w", err)
	}
	return nil
}

// Update replaces a grade level in full.
func (r *GradeLevelRepository) Update(ctx context.Context, level *models.GradeLevel) error {
	const query = `UPDATE grade_levels SET name = $1, description = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, level.Name, level.Description, level.ID); err != nil {
		return fmt.Errorf("update grade level: %w", err)
	}
	return nil
}

// Delete removes a grade level by id.
func (r *GradeLevelRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM grade_levels WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete grade level: %w", err)
	}
	return nil
}
