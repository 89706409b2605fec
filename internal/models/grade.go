package models

import "time"

// Grade holds the per-quarter scores a teacher recorded for a student in a
// subject.
type Grade struct {
	ID         int64     `db:"id" json:"id"`
	StudentID  int64     `db:"student_id" json:"student_id"`
	SubjectID  int64     `db:"subject_id" json:"subject_id"`
	TeacherID  int64     `db:"teacher_id" json:"teacher_id"`
	Quarter1   float64   `db:"quarter1" json:"quarter1"`
	Quarter2   float64   `db:"quarter2" json:"quarter2"`
	Quarter3   float64   `db:"quarter3" json:"quarter3"`
	Quarter4   float64   `db:"quarter4" json:"quarter4"`
	FinalGrade float64   `db:"final_grade" json:"final_grade"`
	Remarks    string    `db:"remarks" json:"remarks"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// GradeDetail joins a grade with the student, subject and teacher names.
type GradeDetail struct {
	Grade
	StudentName string `db:"student_name" json:"student_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
}
