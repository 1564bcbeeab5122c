package booking

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/internal/service/notification"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/metrics"
)

// Service owns the booking lifecycle: creation, status transitions and
// role-scoped reads. All status mutations flow through RequestTransition;
// nothing else writes the status column.
type Service struct {
	repo       repository.BookingRepository
	dispatcher notification.Dispatcher
	logger     *logger.Logger
	metrics    *metrics.Metrics
	validate   *validator.Validate
}

func NewService(repo repository.BookingRepository, dispatcher notification.Dispatcher, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:       repo,
		dispatcher: dispatcher,
		logger:     log,
		metrics:    m,
		validate:   validator.New(),
	}
}

// CreateBooking opens a new booking for the calling patient. The patient
// reference is always the caller; a patient cannot book on behalf of
// another. Doctor existence and slot availability are not checked here.
func (s *Service) CreateBooking(ctx context.Context, actor model.Identity, req *model.CreateBookingRequest) (*model.Booking, error) {
	if err := Authorize(actor, nil, ActionCreate); err != nil {
		return nil, err
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, errors.NewValidation("all fields are required", err)
	}

	booking := &model.Booking{
		PatientID:     actor.SubjectID,
		DoctorID:      req.DoctorID,
		Date:          req.Date,
		TimeSlot:      req.TimeSlot,
		Urgency:       req.Urgency,
		Reason:        req.Reason,
		Status:        model.BookingStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.dispatch(ctx, notification.NewBookingEvent(notification.EventBookingCreated, booking))

	return booking, nil
}

// RequestTransition drives the booking state machine. The sequence is
// fixed: load, authorize, validate against the transition table, apply
// cancellation bookkeeping, persist with a version check, then emit the
// lifecycle event. Retrying an already-applied transition fails with
// InvalidTransition rather than succeeding silently.
func (s *Service) RequestTransition(ctx context.Context, actor model.Identity, bookingID uuid.UUID, target model.BookingStatus, reason string) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := Authorize(actor, booking, actionFor(target)); err != nil {
		s.observeTransition(booking.Status, target, "denied")
		return nil, err
	}

	if err := ValidateTransition(booking.Status, target, actor.Role); err != nil {
		s.observeTransition(booking.Status, target, "invalid")
		return nil, err
	}

	from := booking.Status
	booking.Status = target

	if target == model.BookingStatusCancelled {
		trimmed := strings.TrimSpace(reason)
		if trimmed == "" {
			trimmed = model.DefaultCancellationReason
		}
		booking.CancellationReason = trimmed
		cancelledBy := string(actor.Role)
		booking.CancelledBy = &cancelledBy
	}

	if err := s.repo.UpdateStatus(ctx, booking, booking.Version); err != nil {
		s.observeTransition(from, target, "conflict")
		return nil, err
	}

	s.observeTransition(from, target, "ok")
	s.dispatch(ctx, notification.NewBookingEvent(notification.EventTypeFor(target), booking))

	return booking, nil
}

// GetBooking returns a single booking, visible only to its participants
// and admins.
func (s *Service) GetBooking(ctx context.Context, actor model.Identity, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, booking, ActionRead); err != nil {
		return nil, err
	}
	return booking, nil
}

// ListBookings returns the bookings the actor is allowed to see: their own
// for patients and doctors, everything for admins.
func (s *Service) ListBookings(ctx context.Context, actor model.Identity, filters *model.BookingFilters) ([]*model.Booking, error) {
	if filters == nil {
		filters = &model.BookingFilters{}
	}

	switch actor.Role {
	case model.RolePatient:
		filters.PatientID = actor.SubjectID
	case model.RoleDoctor:
		filters.DoctorID = actor.SubjectID
	case model.RoleAdmin:
		// unrestricted
	default:
		return nil, errors.NewForbidden("")
	}

	return s.repo.List(ctx, filters)
}

// ListBookingsForDoctor is the admin view of one doctor's schedule.
func (s *Service) ListBookingsForDoctor(ctx context.Context, actor model.Identity, doctorID uuid.UUID) ([]*model.Booking, error) {
	if actor.Role != model.RoleAdmin {
		return nil, errors.NewForbidden("")
	}
	return s.repo.List(ctx, &model.BookingFilters{DoctorID: doctorID})
}

// dispatch hands the event to the notification pipeline. Failures are
// logged and swallowed; a transition never rolls back over a notification.
func (s *Service) dispatch(ctx context.Context, event *notification.BookingEvent) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, event); err != nil {
		s.logger.Error(err, "failed to dispatch booking event",
			"event_type", event.Type,
			"booking_id", event.BookingID.String())
	}
}

func (s *Service) observeTransition(from, to model.BookingStatus, outcome string) {
	if s.metrics == nil {
		return
	}
	s.metrics.BookingTransitions.WithLabelValues(string(from), string(to), outcome).Inc()
}
