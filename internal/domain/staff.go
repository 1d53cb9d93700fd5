package domain

import "time"

// StaffProfile holds the human-facing record for a staff or admin member.
// Each profile belongs to exactly one user; deleting the user removes the
// profile, deleting the profile leaves the user untouched.
type StaffProfile struct {
	ID          int64
	UserID      int64
	Name        string
	Email       string
	PhoneNumber *string
	Position    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
