package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/carelink/booking-api/internal/email"
	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/internal/service/notification"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/messaging"
	"github.com/carelink/booking-api/pkg/metrics"
)

// Notifier consumes booking lifecycle events from the broker and emails
// the participants. Delivery is best effort: a failed email is counted and
// logged, never retried into the lifecycle itself.
type Notifier struct {
	broker   messaging.Broker
	emailSvc email.Service
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewNotifier(
	broker messaging.Broker,
	emailSvc email.Service,
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	log *logger.Logger,
	m *metrics.Metrics,
) *Notifier {
	return &Notifier{
		broker:   broker,
		emailSvc: emailSvc,
		patients: patients,
		doctors:  doctors,
		logger:   log,
		metrics:  m,
	}
}

func (n *Notifier) Run(ctx context.Context) error {
	msgs, err := n.broker.Subscribe(ctx, notification.Channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", notification.Channel, err)
	}

	n.logger.Info("notifier listening", "channel", notification.Channel)

	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			n.handle(ctx, payload)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, payload []byte) {
	var event notification.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		n.logger.Error(err, "failed to decode booking event")
		return
	}

	subject, body := n.compose(&event)

	if addr := n.patientEmail(ctx, &event); addr != "" {
		n.send(ctx, addr, subject, body)
	}
	if addr := n.doctorEmail(ctx, &event); addr != "" {
		n.send(ctx, addr, subject, body)
	}
}

func (n *Notifier) send(ctx context.Context, to, subject, body string) {
	if err := n.emailSvc.Send(ctx, to, subject, body); err != nil {
		n.metrics.NotificationsFailed.WithLabelValues("email").Inc()
		n.logger.Error(err, "failed to send notification email")
		return
	}
	n.metrics.NotificationsSent.WithLabelValues("email").Inc()
}

func (n *Notifier) patientEmail(ctx context.Context, event *notification.BookingEvent) string {
	patient, err := n.patients.Get(ctx, event.PatientID)
	if err != nil {
		n.logger.Error(err, "failed to resolve patient for notification",
			"booking_id", event.BookingID.String())
		return ""
	}
	return patient.Email
}

func (n *Notifier) doctorEmail(ctx context.Context, event *notification.BookingEvent) string {
	doctor, err := n.doctors.Get(ctx, event.DoctorID)
	if err != nil {
		n.logger.Error(err, "failed to resolve doctor for notification",
			"booking_id", event.BookingID.String())
		return ""
	}
	return doctor.Email
}

func (n *Notifier) compose(event *notification.BookingEvent) (string, string) {
	date := event.Date.Format("Mon, 02 Jan 2006")

	switch event.Type {
	case notification.EventBookingCreated:
		return "Appointment requested",
			fmt.Sprintf("A new appointment was requested for %s at %s.", date, event.TimeSlot)
	case notification.EventBookingAccepted:
		return "Appointment confirmed",
			fmt.Sprintf("Your appointment on %s at %s has been confirmed.", date, event.TimeSlot)
	case notification.EventBookingRejected:
		return "Appointment declined",
			fmt.Sprintf("The appointment requested for %s at %s was declined.", date, event.TimeSlot)
	case notification.EventBookingCompleted:
		return "Appointment completed",
			fmt.Sprintf("Your appointment on %s at %s is complete.", date, event.TimeSlot)
	case notification.EventBookingCancelled:
		reason := event.CancellationReason
		if reason == "" {
			reason = model.DefaultCancellationReason
		}
		return "Appointment cancelled",
			fmt.Sprintf("The appointment on %s at %s was cancelled. Reason: %s", date, event.TimeSlot, reason)
	default:
		return "Appointment update",
			fmt.Sprintf("Your appointment on %s at %s was updated to %s.", date, event.TimeSlot, event.Status)
	}
}
