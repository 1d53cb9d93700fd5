package dto

import (
	"encoding/json"
	"time"

	"github.com/spec-kit/orphanage-admin/internal/domain"
)

// OptionalString distinguishes an omitted JSON field from an explicit null:
// Set is false when the key was absent, true with a nil Value for null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON is only invoked when the key is present, which is what flips
// Set.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// CreateStaffRequest payload for a new staff profile.
type CreateStaffRequest struct {
	UserID      int64   `json:"user_id" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber *string `json:"phone_number"`
	Position    string  `json:"position" validate:"required"`
}

// UpdateStaffRequest carries optional replacements. PhoneNumber is tri-state:
// omitted leaves the value, null clears it.
type UpdateStaffRequest struct {
	Name        *string        `json:"name"`
	Email       *string        `json:"email" validate:"omitempty,email"`
	PhoneNumber OptionalString `json:"phone_number"`
	Position    *string        `json:"position"`
}

// StaffResponse is the public shape of a staff profile.
type StaffResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number"`
	Position    string    `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewStaffResponse maps a domain profile to its public shape.
func NewStaffResponse(profile *domain.StaffProfile) StaffResponse {
	return StaffResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		Name:        profile.Name,
		Email:       profile.Email,
		PhoneNumber: profile.PhoneNumber,
		Position:    profile.Position,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}
}
