package models

// Student is an enrolled pupil tied to a user account, grade level and
// section. StudentID is the business key printed on school records.
type Student struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	StudentID    string `db:"student_id" json:"student_id"`
	UserID       int64  `db:"user_id" json:"user_id"`
	GradeLevelID int64  `db:"grade_level_id" json:"grade_level_id"`
	SectionID    int64  `db:"section_id" json:"section_id"`
}

// StudentWithUser adds the owning account name to a student row.
type StudentWithUser struct {
	Student
	UserName string `db:"user_name" json:"user_name"`
}

// TeacherRosterEntry is one student as seen from a teacher's roster: every
// student in every section the teacher is assigned to.
type TeacherRosterEntry struct {
	StudentID   int64  `db:"student_id" json:"student_id"`
	StudentCode string `db:"student_code" json:"student_code"`
	StudentName string `db:"student_name" json:"student_name"`
	GradeLevel  string `db:"grade_level" json:"grade_level"`
	Section     string `db:"section" json:"section"`
}
