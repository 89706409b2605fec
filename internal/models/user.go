package models

// UserRole enumerates the roles a user account can hold.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User is the root identity record. A user owns at most one teacher or
// student profile depending on its role.
type User struct {
	ID       int64    `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Email    string   `db:"email" json:"email"`
	Password string   `db:"password" json:"-"`
	Role     UserRole `db:"role" json:"role"`
}
