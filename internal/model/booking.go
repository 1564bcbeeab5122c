package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusAccepted  BookingStatus = "accepted"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusRejected  BookingStatus = "rejected"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusAccepted, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status change is permitted.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusCompleted, BookingStatusCancelled, BookingStatusRejected:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// DefaultCancellationReason is stored when a cancellation carries no reason.
const DefaultCancellationReason = "No reason provided"

// Booking is the aggregate record of a patient-doctor consultation request.
// PatientID, DoctorID and CreatedAt are immutable after creation; Status is
// mutated only through the lifecycle engine. Version is the optimistic
// concurrency token, bumped on every status change.
type Booking struct {
	ID                 uuid.UUID     `db:"id" json:"id"`
	PatientID          uuid.UUID     `db:"patient_id" json:"patient_id"`
	DoctorID           uuid.UUID     `db:"doctor_id" json:"doctor_id"`
	Date               time.Time     `db:"date" json:"date"`
	TimeSlot           string        `db:"time_slot" json:"time_slot"`
	Urgency            string        `db:"urgency" json:"urgency"`
	Reason             string        `db:"reason" json:"reason"`
	Status             BookingStatus `db:"status" json:"status"`
	PaymentStatus      PaymentStatus `db:"payment_status" json:"payment_status"`
	CancellationReason string        `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledBy        *string       `db:"cancelled_by" json:"cancelled_by,omitempty"`
	Version            int64         `db:"version" json:"version"`
	CreatedAt          time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updated_at"`
}

type CreateBookingRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" binding:"required" validate:"required"`
	Date     time.Time `json:"date" binding:"required" validate:"required"`
	TimeSlot string    `json:"time_slot" binding:"required" validate:"required"`
	Urgency  string    `json:"urgency" binding:"required" validate:"required"`
	Reason   string    `json:"reason" binding:"required" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	BookingID uuid.UUID     `json:"booking_id" binding:"required"`
	Status    BookingStatus `json:"status" binding:"required,oneof=accepted rejected completed"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

type BookingFilters struct {
	PatientID uuid.UUID
	DoctorID  uuid.UUID
	Status    BookingStatus
}
