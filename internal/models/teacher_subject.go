package models

// TeacherSubject assigns a subject to a teacher within a section. A given
// (teacher, subject) pair may exist at most once regardless of section.
type TeacherSubject struct {
	ID        int64 `db:"id" json:"id"`
	TeacherID int64 `db:"teacher_id" json:"teacher_id"`
	SubjectID int64 `db:"subject_id" json:"subject_id"`
	SectionID int64 `db:"section_id" json:"section_id"`
}

// TeacherSubjectDetail enriches an assignment with subject and section names.
type TeacherSubjectDetail struct {
	Subject
	SectionID   int64  `db:"section_id" json:"section_id"`
	SectionName string `db:"section_name" json:"section_name"`
}
