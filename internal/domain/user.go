package domain

import "time"

// Role governs what a login account may do in the dashboard.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is the domain model for a login account. Email is the login key and is
// matched case-sensitively. PasswordHash is never exposed through listings.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
