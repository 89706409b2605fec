package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-api/internal/models"
)

// gradeDetailColumns is shared by every detailed grade query: the grade row
// plus the student, subject and teacher display names resolved through the
// users table.
const gradeDetailColumns = `
SELECT g.id, g.student_id, g.subject_id, g.teacher_id,
       g.quarter1, g.quarter2, g.quarter3, g.quarter4,
       g.final_grade, g.remarks, g.created_at, g.updated_at,
       su.name AS student_name, sub.name AS subject_name, tu.name AS teacher_name
FROM grades g
JOIN students st ON g.student_id = st.id
JOIN users su ON st.user_id = su.id
JOIN subjects sub ON g.subject_id = sub.id
JOIN teachers tch ON g.teacher_id = tch.id
JOIN users tu ON tch.user_id = tu.id`

// GradeRepository manages persistence for grade records.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// List returns every grade with display names resolved.
func (r *GradeRepository) List(ctx context.Context) ([]models.GradeDetail, error) {
	query := gradeDetailColumns + "\nORDER BY g.id"
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}

// FindByID fetches one grade with display names resolved.
func (r *GradeRepository) FindByID(ctx context.Context, id int64) (*models.GradeDetail, error) {
	query := gradeDetailColumns + "\nWHERE g.id = $1"
	var grade models.GradeDetail
	if err := r.db.GetContext(ctx, &grade, query, id); err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListByStudent returns the grades recorded for one student.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error) {
	query := gradeDetailColumns + "\nWHERE st.id = $1\nORDER BY g.id"
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, studentID); err != nil {
		return nil, fmt.Errorf("list grades by student: %w", err)
	}
	return grades, nil
}

// ListByTeacher returns the grades recorded by one teacher.
func (r *GradeRepository) ListByTeacher(ctx context.Context, teacherID int64) ([]models.GradeDetail, error) {
	query := gradeDetailColumns + "\nWHERE tch.id = $1\nORDER BY g.id"
	var grades []models.GradeDetail
	if err := r.db.SelectContext(ctx, &grades, query, teacherID); err != nil {
		return nil, fmt.Errorf("list grades by teacher: %w", err)
	}
	return grades, nil
}

// Create inserts a new grade and fills in the generated id.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	const query = `
INSERT INTO grades (student_id, subject_id, teacher_id, quarter1, quarter2, quarter3, quarter4, final_grade, remarks)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := r.db.GetContext(ctx, &grade.ID, query,
		grade.StudentID, grade.SubjectID, grade.TeacherID,
		grade.Quarter1, grade.Quarter2, grade.Quarter3, grade.Quarter4,
		grade.FinalGrade, grade.Remarks); err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}

// Update replaces a grade in full.
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	const query = `
UPDATE grades
SET student_id = $1, subject_id = $2, teacher_id = $3,
    quarter1 = $4, quarter2 = $5, quarter3 = $6, quarter4 = $7,
    final_grade = $8, remarks = $9, updated_at = NOW()
WHERE id = $10`
	if _, err := r.db.ExecContext(ctx, query,
		grade.StudentID, grade.SubjectID, grade.TeacherID,
		grade.Quarter1, grade.Quarter2, grade.Quarter3, grade.Quarter4,
		grade.FinalGrade, grade.Remarks, grade.ID); err != nil {
		return fmt.Errorf("update grade: %w", err)
	}
	return nil
}

// Delete removes a grade by id.
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM grades WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete grade: %w", err)
	}
	return nil
}
