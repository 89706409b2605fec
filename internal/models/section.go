package models

// Section is a named class group belonging to exactly one grade level.
type Section struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	GradeLevelID int64  `db:"grade_level_id" json:"grade_level_id"`
}

// SectionWithGradeLevel joins the section with its grade level name.
type SectionWithGradeLevel struct {
	Section
	GradeLevelName string `db:"grade_level_name" json:"grade_level_name"`
}
