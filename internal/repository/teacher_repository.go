package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// TeacherRepository manages persistence for teacher profiles.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// List returns all teachers joined with their user identity.
func (r *TeacherRepository) List(ctx context.Context) ([]models.TeacherWithUser, error) {
	const query = `
SELECT t.id, t.teacher_id, t.user_id, u.name, u.email, u.role
FROM teachers t
JOIN users u ON t.user_id = u.id
ORDER BY t.id`
	var teachers []models.TeacherWithUser
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// FindByID fetches one teacher joined with its user identity.
func (r *TeacherRepository) FindByID(ctx context.Context, id int64) (*models.TeacherWithUser, error) {
	const query = `
SELECT t.id, t.teacher_id, t.user_id, u.name, u.email, u.role
FROM teachers t
JOIN users u ON t.user_id = u.id
WHERE t.id = $1 LIMIT 1`
	var teacher models.TeacherWithUser
	if err := r.db.GetContext(ctx, &teacher, query, id); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// FindByUserID fetches the bare teacher profile owned by a user account.
func (r *TeacherRepository) FindByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	const query = `SELECT id, teacher_id, user_id FROM teachers WHERE user_id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, userID); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// Create inserts a new teacher profile and fills in the generated id.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	const query = `INSERT INTO teachers (teacher_id, user_id) VALUES ($1, $2) RETURNING id`
	if err := r.db.GetContext(ctx, &teacher.ID, query, teacher.TeacherID, teacher.UserID); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// Update replaces a teacher profile in full.
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	const query = `UPDATE teachers SET teacher_id = $1, user_id = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, teacher.TeacherID, teacher.UserID, teacher.ID); err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	return nil
}

// Delete removes a teacher profile by id.
func (r *TeacherRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM teachers WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	return nil
}
