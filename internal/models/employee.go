package models

// EmployeeContact is the directory record the auth service maintains.
// The scheduler reads it to resolve notification recipients; it never
// writes employee data.
type EmployeeContact struct {
	ID       string `db:"id" json:"id"`
	FullName string `db:"full_name" json:"fullName"`
	Email    string `db:"email" json:"email"`
	Role     string `db:"role" json:"role"`
}
