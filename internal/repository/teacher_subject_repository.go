package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// TeacherSubjectRepository persists teacher-subject-section assignments.
type TeacherSubjectRepository struct {
	db *sqlx.DB
}

// NewTeacherSubjectRepository constructs the repository.
func NewTeacherSubjectRepository(db *sqlx.DB) *TeacherSubjectRepository {
	return &TeacherSubjectRepository{db: db}
}

// ListByTeacher returns the subjects assigned to the teacher together with
// the section each assignment targets.
func (r *TeacherSubjectRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubjectDetail, error) {
	const query = `
SELECT s.id, s.name, s.code, s.description, ts.section_id, sec.name AS section_name
FROM teacher_subjects ts
JOIN subjects s ON ts.subject_id = s.id
JOIN sections sec ON ts.section_id = sec.id
WHERE ts.teacher_id = $1
ORDER BY s.name`
	var details []models.TeacherSubjectDetail
	if err := r.db.SelectContext(ctx, &details, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return details, nil
}

// Exists checks whether the (teacher, subject) pair is already assigned,
// irrespective of section.
func (r *TeacherSubjectRepository) Exists(ctx context.Context, teacherID, subjectID int64) (bool, error) {
	const query = `SELECT 1 FROM teacher_subjects WHERE teacher_id = $1 AND subject_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherID, subjectID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teacher subject: %w", err)
	}
	return true, nil
}

// Create inserts a new assignment and fills in the generated id.
func (r *TeacherSubjectRepository) Create(ctx context.Context, assignment *models.TeacherSubject) error {
	const query = `INSERT INTO teacher_subjects (teacher_id, subject_id, section_id) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &assignment.ID, query, assignment.TeacherID, assignment.SubjectID, assignment.SectionID); err != nil {
		return fmt.Errorf("create teacher subject: %w", err)
	}
	return nil
}

// Delete removes the assignment for a (teacher, subject) pair. Returns
// sql.ErrNoRows when no assignment existed.
func (r *TeacherSubjectRepository) Delete(ctx context.Context, teacherID, subjectID int64) error {
	const query = `DELETE FROM teacher_subjects WHERE teacher_id = $1 AND subject_id = $2`
	result, err := r.db.ExecContext(ctx, query, teacherID, subjectID)
	if err != nil {
		return fmt.Errorf("delete teacher subject: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted teacher subject rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
