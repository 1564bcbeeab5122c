package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
)

// Channel is the broker channel carrying all booking lifecycle events.
const Channel = "booking.events"

const (
	EventBookingCreated   = "booking.created"
	EventBookingAccepted  = "booking.accepted"
	EventBookingRejected  = "booking.rejected"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
)

// BookingEvent is the payload delivered to the notification worker. It
// carries the participant references so the worker can resolve recipient
// addresses without reloading the booking.
type BookingEvent struct {
	Type               string              `json:"type"`
	BookingID          uuid.UUID           `json:"booking_id"`
	PatientID          uuid.UUID           `json:"patient_id"`
	DoctorID           uuid.UUID           `json:"doctor_id"`
	Status             model.BookingStatus `json:"status"`
	Date               time.Time           `json:"date"`
	TimeSlot           string              `json:"time_slot"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	CancelledBy        string              `json:"cancelled_by,omitempty"`
	OccurredAt         time.Time           `json:"occurred_at"`
}

// EventTypeFor maps a booking status to its lifecycle event name.
func EventTypeFor(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusAccepted:
		return EventBookingAccepted
	case model.BookingStatusRejected:
		return EventBookingRejected
	case model.BookingStatusCancelled:
		return EventBookingCancelled
	case model.BookingStatusCompleted:
		return EventBookingCompleted
	default:
		return EventBookingCreated
	}
}

// NewBookingEvent builds the event for a booking's current state.
func NewBookingEvent(eventType string, b *model.Booking) *BookingEvent {
	evt := &BookingEvent{
		Type:               eventType,
		BookingID:          b.ID,
		PatientID:          b.PatientID,
		DoctorID:           b.DoctorID,
		Status:             b.Status,
		Date:               b.Date,
		TimeSlot:           b.TimeSlot,
		CancellationReason: b.CancellationReason,
		OccurredAt:         time.Now(),
	}
	if b.CancelledBy != nil {
		evt.CancelledBy = *b.CancelledBy
	}
	return evt
}
