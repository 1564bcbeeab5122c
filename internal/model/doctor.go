package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DefaultTimeSlots is the slot set offered by a doctor until they publish
// their own.
var DefaultTimeSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM",
	"04:30 PM",
}

const defaultDoctorAbout = "Experienced medical professional providing quality healthcare."

type Doctor struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Name            string         `db:"name" json:"name"`
	Email           string         `db:"email" json:"email"`
	PasswordHash    string         `db:"password_hash" json:"-"`
	Phone           string         `db:"phone" json:"phone"`
	Gender          string         `db:"gender" json:"gender"`
	Specialization  string         `db:"specialization" json:"specialization"`
	Education       string         `db:"education" json:"education"`
	Experience      int            `db:"experience" json:"experience"`
	HospitalName    string         `db:"hospital_name" json:"hospital_name,omitempty"`
	HospitalAddress string         `db:"hospital_address" json:"hospital_address,omitempty"`
	About           string         `db:"about" json:"about"`
	TimeSlots       pq.StringArray `db:"time_slots" json:"time_slots"`
	ConsultingFee   int            `db:"consulting_fee" json:"consulting_fee"`
	ProfilePhoto    string         `db:"profile_photo" json:"profile_photo,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// ApplyDefaults fills profile fields the registration flow leaves empty.
func (d *Doctor) ApplyDefaults() {
	if d.About == "" {
		d.About = defaultDoctorAbout
	}
	if len(d.TimeSlots) == 0 {
		d.TimeSlots = append(pq.StringArray{}, DefaultTimeSlots...)
	}
	if d.ConsultingFee == 0 {
		d.ConsultingFee = 300
	}
}

// UpdateDoctorProfileRequest applies only the fields present in the request
// body; absent fields are left untouched.
type UpdateDoctorProfileRequest struct {
	Name            *string  `json:"name"`
	Phone           *string  `json:"phone"`
	Gender          *string  `json:"gender"`
	Specialization  *string  `json:"specialization"`
	Education       *string  `json:"education"`
	Experience      *int     `json:"experience"`
	HospitalName    *string  `json:"hospital_name"`
	HospitalAddress *string  `json:"hospital_address"`
	About           *string  `json:"about"`
	TimeSlots       []string `json:"time_slots"`
	ConsultingFee   *int     `json:"consulting_fee"`
	ProfilePhoto    *string  `json:"profile_photo"`
}
