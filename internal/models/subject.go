package models

// Subject is an academic subject. Code is the business key (e.g. ALG1).
type Subject struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}
