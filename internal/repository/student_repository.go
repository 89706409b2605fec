package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// StudentRepository manages persistence for students.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns every student.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, name, student_id, user_id, grade_level_id, section_id FROM students ORDER BY id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by surrogate id.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	const query = `SELECT id, name, student_id, user_id, grade_level_id, section_id FROM students WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// ListBySection returns the students enrolled in a section, with their
// account names.
func (r *StudentRepository) ListBySection(ctx context.Context, sectionID int64) ([]models.StudentWithUser, error) {
	const query = `
SELECT s.id, s.name, s.student_id, s.user_id, s.grade_level_id, s.section_id, u.name AS user_name
FROM students s
JOIN users u ON s.user_id = u.id
WHERE s.section_id = $1
ORDER BY u.name`
	var students []models.StudentWithUser
	if err := r.db.SelectContext(ctx, &students, query, sectionID); err != nil {
		return nil, fmt.Errorf("list students by section: %w", err)
	}
	return students, nil
}

// ListByTeacher resolves the roster a teacher sees: every student in every
// section the teacher is assigned to, across all subjects, one row per
// student. The lookup is keyed by the teacher business key, not the
// surrogate id.
func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherCode string) ([]models.TeacherRosterEntry, error) {
	const query = `
SELECT
  s.id AS student_id,
  s.student_id AS student_code,
  u.name AS student_name,
  gl.name AS grade_level,
  sec.name AS section
FROM teachers t
JOIN teacher_subjects ts ON t.id = ts.teacher_id
JOIN sections sec ON ts.section_id = sec.id
JOIN students s ON s.section_id = sec.id
JOIN users u ON s.user_id = u.id
JOIN grade_levels gl ON s.grade_level_id = gl.id
WHERE t.teacher_id = $1
GROUP BY s.id, s.student_id, u.name, gl.name, sec.name`
	var roster []models.TeacherRosterEntry
	if err := r.db.SelectContext(ctx, &roster, query, teacherCode); err != nil {
		return nil, fmt.Errorf("list students by teacher: %w", err)
	}
	return roster, nil
}

// Create inserts a new student and fills in the generated id.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	const query = `
INSERT INTO students (name, student_id, user_id, grade_level_id, section_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &student.ID, query,
		student.Name, student.StudentID, student.UserID, student.GradeLevelID, student.SectionID); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update replaces a student record in full.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	const query = `
UPDATE students
SET name = $1, student_id = $2, user_id = $3, grade_level_id = $4, section_id = $5
WHERE id = $6`
	if _, err := r.db.ExecContext(ctx, query,
		student.Name, student.StudentID, student.UserID, student.GradeLevelID, student.SectionID, student.ID); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// Delete removes a student by id.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM students WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return nil
}
