package model

import (
	"github.com/google/uuid"
)

// Role is the actor class of an authenticated caller.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// Identity is the authenticated caller, produced once by the auth
// middleware from the bearer token and passed explicitly through every
// service call. Ownership checks compare SubjectID against the booking's
// patient or doctor reference.
type Identity struct {
	Role      Role      `json:"role"`
	SubjectID uuid.UUID `json:"subject_id"`
}

func PatientIdentity(id uuid.UUID) Identity {
	return Identity{Role: RolePatient, SubjectID: id}
}

func DoctorIdentity(id uuid.UUID) Identity {
	return Identity{Role: RoleDoctor, SubjectID: id}
}

func AdminIdentity(id uuid.UUID) Identity {
	return Identity{Role: RoleAdmin, SubjectID: id}
}
