package models

// Teacher links a user account to an externally assigned teacher number.
// TeacherID is the business key used by roster lookups; ID is surrogate.
type Teacher struct {
	ID        int64  `db:"id" json:"id"`
	TeacherID string `db:"teacher_id" json:"teacher_id"`
	UserID    int64  `db:"user_id" json:"user_id"`
}

// TeacherWithUser joins the teacher profile with its user identity.
type TeacherWithUser struct {
	Teacher
	Name  string   `db:"name" json:"name"`
	Email string   `db:"email" json:"email"`
	Role  UserRole `db:"role" json:"role"`
}
