package models

// GradeLevel is a year level (e.g. Grade 7).
type GradeLevel struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
}
