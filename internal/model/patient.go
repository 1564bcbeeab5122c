package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	Phone        string     `db:"phone" json:"phone"`
	Address      string     `db:"address" json:"address"`
	Gender       string     `db:"gender" json:"gender,omitempty"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	ProfilePhoto string     `db:"profile_photo" json:"profile_photo,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// UpdatePatientProfileRequest applies only the fields present in the
// request body. A present empty string clears the field; an absent field
// leaves it untouched.
type UpdatePatientProfileRequest struct {
	Name         *string    `json:"name"`
	Phone        *string    `json:"phone"`
	Address      *string    `json:"address"`
	Gender       *string    `json:"gender"`
	DateOfBirth  *time.Time `json:"date_of_birth"`
	ProfilePhoto *string    `json:"profile_photo"`
}
