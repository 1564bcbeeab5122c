package booking

import (
	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/errors"
)

// Action is a booking operation subject to authorization.
type Action string

const (
	ActionCreate       Action = "create"
	ActionCancel       Action = "cancel"
	ActionUpdateStatus Action = "update_status"
	ActionRead         Action = "read"
)

// Authorize maps (actor, booking, action) to a permit decision. A denial is
// always an explicit Forbidden error, never a silent no-op. Admins may read
// and transition any booking; patients and doctors only their own, and
// patients may never drive accept/reject/complete.
func Authorize(actor model.Identity, b *model.Booking, action Action) error {
	switch action {
	case ActionCreate:
		if actor.Role != model.RolePatient {
			return errors.NewForbidden("only patients can create bookings")
		}
		return nil

	case ActionCancel:
		switch actor.Role {
		case model.RoleAdmin:
			return nil
		case model.RolePatient:
			if actor.SubjectID == b.PatientID {
				return nil
			}
			return errors.NewForbidden("you can only cancel your own appointment")
		case model.RoleDoctor:
			if actor.SubjectID == b.DoctorID {
				return nil
			}
			return errors.NewForbidden("you can only cancel your own appointments")
		}
		return errors.NewForbidden("")

	case ActionUpdateStatus:
		switch actor.Role {
		case model.RoleAdmin:
			return nil
		case model.RoleDoctor:
			if actor.SubjectID == b.DoctorID {
				return nil
			}
			return errors.NewForbidden("you can only update your own appointments")
		}
		return errors.NewForbidden("patients cannot update booking status")

	case ActionRead:
		switch actor.Role {
		case model.RoleAdmin:
			return nil
		case model.RolePatient:
			if actor.SubjectID == b.PatientID {
				return nil
			}
		case model.RoleDoctor:
			if actor.SubjectID == b.DoctorID {
				return nil
			}
		}
		return errors.NewForbidden("")
	}

	return errors.NewForbidden("unknown action")
}

// actionFor maps a requested target status to the authorization action it
// implies.
func actionFor(target model.BookingStatus) Action {
	if target == model.BookingStatusCancelled {
		return ActionCancel
	}
	return ActionUpdateStatus
}
