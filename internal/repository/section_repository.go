package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// SectionRepository manages persistence for sections.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository constructs a SectionRepository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// List returns all sections joined with their grade level name.
func (r *SectionRepository) List(ctx context.Context) ([]models.SectionWithGradeLevel, error) {
	const query = `
SELECT sec.id, sec.name, sec.grade_level_id, gl.name AS grade_level_name
FROM sections sec
JOIN grade_levels gl ON sec.grade_level_id = gl.id
ORDER BY sec.id`
	var sections []models.SectionWithGradeLevel
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// FindByID fetches one section joined with its grade level name.
func (r *SectionRepository) FindByID(ctx context.Context, id int64) (*models.SectionWithGradeLevel, error) {
	const query = `
SELECT sec.id, sec.name, sec.grade_level_id, gl.name AS grade_level_name
FROM sections sec
JOIN grade_levels gl ON sec.grade_level_id = gl.id
WHERE sec.id = $1 LIMIT 1`
	var section models.SectionWithGradeLevel
	if err := r.db.GetContext(ctx, &section, query, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByGradeLevel returns the sections belonging to a grade level.
func (r *SectionRepository) ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]models.Section, error) {
	const query = `SELECT id, name, grade_level_id FROM sections WHERE grade_level_id = $1 ORDER BY name`
	var sections []models.Section
	if err := r.db.SelectContext(ctx, &sections, query, gradeLevelID); err != nil {
		return nil, fmt.Errorf("list sections by grade level: %w", err)
	}
	return sections, nil
}

// Create inserts a new section and fills in the generated id.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	const query = `INSERT INTO sections (name, grade_level_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &section.ID, query, section.Name, section.GradeLevelID); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Update replaces a section in full.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	const query = `UPDATE sections SET name = $1, grade_level_id = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, section.Name, section.GradeLevelID, section.ID); err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Delete removes a section by id.
func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM sections WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return nil
}
