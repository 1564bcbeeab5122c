package booking

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/service/notification"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/logger"
)

type fakeBookingRepo struct {
	bookings map[uuid.UUID]*model.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *model.Booking) error {
	booking.ID = uuid.New()
	booking.Version = 1
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, errors.NewNotFound("booking", nil)
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, booking *model.Booking, expectedVersion int64) error {
	stored, ok := r.bookings[booking.ID]
	if !ok || stored.Version != expectedVersion {
		return errors.NewConflict("booking was modified concurrently", nil)
	}
	booking.Version = expectedVersion + 1
	booking.UpdatedAt = time.Now()
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) List(_ context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range r.bookings {
		if filters != nil {
			if filters.PatientID != uuid.Nil && b.PatientID != filters.PatientID {
				continue
			}
			if filters.DoctorID != uuid.Nil && b.DoctorID != filters.DoctorID {
				continue
			}
			if filters.Status != "" && b.Status != filters.Status {
				continue
			}
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[model.BookingStatus]int64, error) {
	counts := make(map[model.BookingStatus]int64)
	for _, b := range r.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

type fakeDispatcher struct {
	events []*notification.BookingEvent
	err    error
}

func (d *fakeDispatcher) Dispatch(_ context.Context, event *notification.BookingEvent) error {
	if d.err != nil {
		return d.err
	}
	d.events = append(d.events, event)
	return nil
}

func newTestService(repo *fakeBookingRepo, dispatcher *fakeDispatcher) *Service {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: os.Stderr})
	return NewService(repo, dispatcher, log, nil)
}

func seedBooking(repo *fakeBookingRepo, status model.BookingStatus) *model.Booking {
	b := &model.Booking{
		ID:            uuid.New(),
		PatientID:     uuid.New(),
		DoctorID:      uuid.New(),
		Date:          time.Now().Add(48 * time.Hour),
		TimeSlot:      "09:00 AM",
		Urgency:       "normal",
		Reason:        "persistent headache",
		Status:        status,
		PaymentStatus: model.PaymentStatusPending,
		Version:       1,
	}
	repo.bookings[b.ID] = b
	return b
}

func TestCreateBookingForcesCallingPatient(t *testing.T) {
	repo := newFakeBookingRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)

	patientID := uuid.New()
	req := &model.CreateBookingRequest{
		DoctorID: uuid.New(),
		Date:     time.Now().Add(24 * time.Hour),
		TimeSlot: "10:00 AM",
		Urgency:  "high",
		Reason:   "back pain",
	}

	booking, err := svc.CreateBooking(context.Background(), model.PatientIdentity(patientID), req)
	require.NoError(t, err)
	assert.Equal(t, patientID, booking.PatientID)
	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
	assert.Equal(t, int64(1), booking.Version)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, notification.EventBookingCreated, dispatcher.events[0].Type)
}

func TestCreateBookingRejectsNonPatients(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeDispatcher{})

	req := &model.CreateBookingRequest{
		DoctorID: uuid.New(),
		Date:     time.Now().Add(24 * time.Hour),
		TimeSlot: "10:00 AM",
		Urgency:  "high",
		Reason:   "back pain",
	}

	_, err := svc.CreateBooking(context.Background(), model.DoctorIdentity(uuid.New()), req)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	_, err = svc.CreateBooking(context.Background(), model.AdminIdentity(uuid.New()), req)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestCreateBookingValidatesRequest(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeDispatcher{})

	_, err := svc.CreateBooking(context.Background(), model.PatientIdentity(uuid.New()), &model.CreateBookingRequest{})
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}

func TestAcceptThenCompleteFlow(t *testing.T) {
	repo := newFakeBookingRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)

	b := seedBooking(repo, model.BookingStatusPending)
	doctor := model.DoctorIdentity(b.DoctorID)

	accepted, err := svc.RequestTransition(context.Background(), doctor, b.ID, model.BookingStatusAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusAccepted, accepted.Status)
	assert.Equal(t, int64(2), accepted.Version)

	completed, err := svc.RequestTransition(context.Background(), doctor, b.ID, model.BookingStatusCompleted, "")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCompleted, completed.Status)
	assert.Equal(t, int64(3), completed.Version)

	require.Len(t, dispatcher.events, 2)
	assert.Equal(t, notification.EventBookingAccepted, dispatcher.events[0].Type)
	assert.Equal(t, notification.EventBookingCompleted, dispatcher.events[1].Type)
}

func TestPatientCancelRecordsReasonAndActor(t *testing.T) {
	repo := newFakeBookingRepo()
	dispatcher := &fakeDispatcher{}
	svc := newTestService(repo, dispatcher)

	b := seedBooking(repo, model.BookingStatusPending)
	patient := model.PatientIdentity(b.PatientID)

	cancelled, err := svc.RequestTransition(context.Background(), patient, b.ID, model.BookingStatusCancelled, "  schedule conflict  ")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, "schedule conflict", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, "patient", *cancelled.CancelledBy)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, notification.EventBookingCancelled, dispatcher.events[0].Type)
	assert.Equal(t, "schedule conflict", dispatcher.events[0].CancellationReason)
}

func TestCancelWithoutReasonUsesDefault(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusAccepted)

	cancelled, err := svc.RequestTransition(context.Background(), model.PatientIdentity(b.PatientID), b.ID, model.BookingStatusCancelled, "   ")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCancellationReason, cancelled.CancellationReason)
}

func TestAdminCancelAttribution(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusAccepted)

	cancelled, err := svc.RequestTransition(context.Background(), model.AdminIdentity(uuid.New()), b.ID, model.BookingStatusCancelled, "clinic closure")
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, "admin", *cancelled.CancelledBy)
}

func TestDoctorCancelAttribution(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	cancelled, err := svc.RequestTransition(context.Background(), model.DoctorIdentity(b.DoctorID), b.ID, model.BookingStatusCancelled, "")
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledBy)
	assert.Equal(t, "doctor", *cancelled.CancelledBy)
}

func TestCancelIsNotIdempotent(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)
	patient := model.PatientIdentity(b.PatientID)

	_, err := svc.RequestTransition(context.Background(), patient, b.ID, model.BookingStatusCancelled, "first")
	require.NoError(t, err)

	_, err = svc.RequestTransition(context.Background(), patient, b.ID, model.BookingStatusCancelled, "second")
	assert.True(t, errors.IsCode(err, errors.ErrInvalidTransition), "second cancel must fail, got %v", err)

	// The stored reason is the first one.
	stored, getErr := repo.Get(context.Background(), b.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "first", stored.CancellationReason)
}

func TestForeignPatientCannotCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	_, err := svc.RequestTransition(context.Background(), model.PatientIdentity(uuid.New()), b.ID, model.BookingStatusCancelled, "")
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))

	stored, getErr := repo.Get(context.Background(), b.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.BookingStatusPending, stored.Status)
}

func TestPatientCannotAccept(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	_, err := svc.RequestTransition(context.Background(), model.PatientIdentity(b.PatientID), b.ID, model.BookingStatusAccepted, "")
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestForeignDoctorCannotUpdateStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	_, err := svc.RequestTransition(context.Background(), model.DoctorIdentity(uuid.New()), b.ID, model.BookingStatusAccepted, "")
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestTransitionUnknownBooking(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeDispatcher{})

	_, err := svc.RequestTransition(context.Background(), model.AdminIdentity(uuid.New()), uuid.New(), model.BookingStatusAccepted, "")
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestTransitionConcurrentModification(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	// Another writer bumps the version between our read and write.
	svc.repo = &racingRepo{fakeBookingRepo: repo, raceOn: b.ID}

	_, err := svc.RequestTransition(context.Background(), model.AdminIdentity(uuid.New()), b.ID, model.BookingStatusAccepted, "")
	assert.True(t, errors.IsCode(err, errors.ErrConflict), "got %v", err)
}

// racingRepo simulates a concurrent writer that lands between Get and
// UpdateStatus.
type racingRepo struct {
	*fakeBookingRepo
	raceOn uuid.UUID
}

func (r *racingRepo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	b, err := r.fakeBookingRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if id == r.raceOn {
		stored := r.bookings[id]
		stored.Version++
	}
	return b, nil
}

func TestDispatcherFailureDoesNotRollBack(t *testing.T) {
	repo := newFakeBookingRepo()
	dispatcher := &fakeDispatcher{err: fmt.Errorf("broker unavailable")}
	svc := newTestService(repo, dispatcher)

	b := seedBooking(repo, model.BookingStatusPending)

	accepted, err := svc.RequestTransition(context.Background(), model.DoctorIdentity(b.DoctorID), b.ID, model.BookingStatusAccepted, "")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusAccepted, accepted.Status)

	stored, getErr := repo.Get(context.Background(), b.ID)
	require.NoError(t, getErr)
	assert.Equal(t, model.BookingStatusAccepted, stored.Status)
}

func TestGetBookingVisibility(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	_, err := svc.GetBooking(context.Background(), model.PatientIdentity(b.PatientID), b.ID)
	assert.NoError(t, err)

	_, err = svc.GetBooking(context.Background(), model.PatientIdentity(uuid.New()), b.ID)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}

func TestListBookingsScopedByRole(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b1 := seedBooking(repo, model.BookingStatusPending)
	seedBooking(repo, model.BookingStatusPending)

	mine, err := svc.ListBookings(context.Background(), model.PatientIdentity(b1.PatientID), nil)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, b1.ID, mine[0].ID)

	doctorView, err := svc.ListBookings(context.Background(), model.DoctorIdentity(b1.DoctorID), nil)
	require.NoError(t, err)
	require.Len(t, doctorView, 1)

	all, err := svc.ListBookings(context.Background(), model.AdminIdentity(uuid.New()), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListBookingsForDoctorAdminOnly(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeDispatcher{})

	b := seedBooking(repo, model.BookingStatusPending)

	list, err := svc.ListBookingsForDoctor(context.Background(), model.AdminIdentity(uuid.New()), b.DoctorID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListBookingsForDoctor(context.Background(), model.DoctorIdentity(b.DoctorID), b.DoctorID)
	assert.True(t, errors.IsCode(err, errors.ErrForbidden))
}
