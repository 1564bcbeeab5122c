package model

import (
	"time"

	"github.com/google/uuid"
)

type AdminStatus string

const (
	AdminStatusActive    AdminStatus = "active"
	AdminStatusInactive  AdminStatus = "inactive"
	AdminStatusSuspended AdminStatus = "suspended"
)

type Admin struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Status       AdminStatus `db:"status" json:"status"`
	LastLoginAt  *time.Time  `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// Analytics is the aggregate view served to admins.
type Analytics struct {
	PatientCount     int64                   `json:"patient_count"`
	DoctorCount      int64                   `json:"doctor_count"`
	BookingsByStatus map[BookingStatus]int64 `json:"bookings_by_status"`
}
