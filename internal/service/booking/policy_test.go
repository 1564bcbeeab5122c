package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/pkg/errors"
)

func testBooking() *model.Booking {
	return &model.Booking{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Status:    model.BookingStatusPending,
	}
}

func TestAuthorizeCreate(t *testing.T) {
	assert.NoError(t, Authorize(model.PatientIdentity(uuid.New()), nil, ActionCreate))

	err := Authorize(model.DoctorIdentity(uuid.New()), nil, ActionCreate)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	err = Authorize(model.AdminIdentity(uuid.New()), nil, ActionCreate)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestAuthorizeCancelOwnership(t *testing.T) {
	b := testBooking()

	assert.NoError(t, Authorize(model.PatientIdentity(b.PatientID), b, ActionCancel))
	assert.NoError(t, Authorize(model.DoctorIdentity(b.DoctorID), b, ActionCancel))
	assert.NoError(t, Authorize(model.AdminIdentity(uuid.New()), b, ActionCancel))

	// A different patient, even a real one, may not touch this booking.
	err := Authorize(model.PatientIdentity(uuid.New()), b, ActionCancel)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	err = Authorize(model.DoctorIdentity(uuid.New()), b, ActionCancel)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestAuthorizeUpdateStatus(t *testing.T) {
	b := testBooking()

	assert.NoError(t, Authorize(model.DoctorIdentity(b.DoctorID), b, ActionUpdateStatus))
	assert.NoError(t, Authorize(model.AdminIdentity(uuid.New()), b, ActionUpdateStatus))

	err := Authorize(model.DoctorIdentity(uuid.New()), b, ActionUpdateStatus)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	// The booking's own patient still cannot drive accept/reject/complete.
	err = Authorize(model.PatientIdentity(b.PatientID), b, ActionUpdateStatus)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestAuthorizeRead(t *testing.T) {
	b := testBooking()

	assert.NoError(t, Authorize(model.PatientIdentity(b.PatientID), b, ActionRead))
	assert.NoError(t, Authorize(model.DoctorIdentity(b.DoctorID), b, ActionRead))
	assert.NoError(t, Authorize(model.AdminIdentity(uuid.New()), b, ActionRead))

	err := Authorize(model.PatientIdentity(uuid.New()), b, ActionRead)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	err = Authorize(model.DoctorIdentity(uuid.New()), b, ActionRead)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestActionForTarget(t *testing.T) {
	assert.Equal(t, ActionCancel, actionFor(model.BookingStatusCancelled))
	assert.Equal(t, ActionUpdateStatus, actionFor(model.BookingStatusAccepted))
	assert.Equal(t, ActionUpdateStatus, actionFor(model.BookingStatusRejected))
	assert.Equal(t, ActionUpdateStatus, actionFor(model.BookingStatusCompleted))
}
