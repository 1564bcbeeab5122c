package worker

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/service/notification"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/metrics"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeEmailService struct {
	sent []sentMail
}

func (s *fakeEmailService) Send(_ context.Context, to, subject, body string) error {
	s.sent = append(s.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type stubPatientRepo struct {
	patient *model.Patient
}

func (r *stubPatientRepo) Create(_ context.Context, _ *model.Patient) error { return nil }

func (r *stubPatientRepo) Get(_ context.Context, id uuid.UUID) (*model.Patient, error) {
	if r.patient != nil && r.patient.ID == id {
		return r.patient, nil
	}
	return nil, errors.NewNotFound("patient", nil)
}

func (r *stubPatientRepo) GetByEmail(_ context.Context, _ string) (*model.Patient, error) {
	return nil, errors.NewNotFound("patient", nil)
}
func (r *stubPatientRepo) Update(_ context.Context, _ *model.Patient) error { return nil }
func (r *stubPatientRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubPatientRepo) List(_ context.Context) ([]*model.Patient, error) { return nil, nil }
func (r *stubPatientRepo) Count(_ context.Context) (int64, error) { return 0, nil }

type stubDoctorRepo struct {
	doctor *model.Doctor
}

func (r *stubDoctorRepo) Create(_ context.Context, _ *model.Doctor) error { return nil }

func (r *stubDoctorRepo) Get(_ context.Context, id uuid.UUID) (*model.Doctor, error) {
	if r.doctor != nil && r.doctor.ID == id {
		return r.doctor, nil
	}
	return nil, errors.NewNotFound("doctor", nil)
}

func (r *stubDoctorRepo) GetByEmail(_ context.Context, _ string) (*model.Doctor, error) {
	return nil, errors.NewNotFound("doctor", nil)
}
func (r *stubDoctorRepo) Update(_ context.Context, _ *model.Doctor) error { return nil }
func (r *stubDoctorRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }
func (r *stubDoctorRepo) List(_ context.Context) ([]*model.Doctor, error) { return nil, nil }
func (r *stubDoctorRepo) Count(_ context.Context) (int64, error) { return 0, nil }

var testMetrics = metrics.NewMetrics("notifier_test")

func newTestNotifier(emailSvc *fakeEmailService, patients *stubPatientRepo, doctors *stubDoctorRepo) *Notifier {
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: os.Stderr})
	return NewNotifier(nil, emailSvc, patients, doctors, log, testMetrics)
}

func TestHandleEmailsBothParticipants(t *testing.T) {
	patient := &model.Patient{ID: uuid.New(), Email: "patient@example.com"}
	doctor := &model.Doctor{ID: uuid.New(), Email: "doctor@example.com"}
	emailSvc := &fakeEmailService{}

	n := newTestNotifier(emailSvc, &stubPatientRepo{patient: patient}, &stubDoctorRepo{doctor: doctor})

	event := &notification.BookingEvent{
		Type:      notification.EventBookingAccepted,
		BookingID: uuid.New(),
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		Date:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "10:00 AM",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	n.handle(context.Background(), payload)

	require.Len(t, emailSvc.sent, 2)
	assert.Equal(t, "patient@example.com", emailSvc.sent[0].to)
	assert.Equal(t, "doctor@example.com", emailSvc.sent[1].to)
	assert.Equal(t, "Appointment confirmed", emailSvc.sent[0].subject)
	assert.Contains(t, emailSvc.sent[0].body, "10:00 AM")
}

func TestHandleCancellationIncludesReason(t *testing.T) {
	patient := &model.Patient{ID: uuid.New(), Email: "patient@example.com"}
	emailSvc := &fakeEmailService{}

	n := newTestNotifier(emailSvc, &stubPatientRepo{patient: patient}, &stubDoctorRepo{})

	event := &notification.BookingEvent{
		Type:               notification.EventBookingCancelled,
		BookingID:          uuid.New(),
		PatientID:          patient.ID,
		DoctorID:           uuid.New(),
		Date:               time.Now(),
		TimeSlot:           "09:00 AM",
		CancellationReason: "schedule conflict",
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	n.handle(context.Background(), payload)

	// The doctor lookup fails, so only the patient is mailed.
	require.Len(t, emailSvc.sent, 1)
	assert.Equal(t, "Appointment cancelled", emailSvc.sent[0].subject)
	assert.Contains(t, emailSvc.sent[0].body, "schedule conflict")
}

func TestHandleIgnoresMalformedPayload(t *testing.T) {
	emailSvc := &fakeEmailService{}
	n := newTestNotifier(emailSvc, &stubPatientRepo{}, &stubDoctorRepo{})

	n.handle(context.Background(), []byte("{not json"))

	assert.Empty(t, emailSvc.sent)
}

func TestComposeDefaultCancellationReason(t *testing.T) {
	n := newTestNotifier(&fakeEmailService{}, &stubPatientRepo{}, &stubDoctorRepo{})

	_, body := n.compose(&notification.BookingEvent{
		Type:     notification.EventBookingCancelled,
		Date:     time.Now(),
		TimeSlot: "09:00 AM",
	})
	assert.True(t, strings.Contains(body, model.DefaultCancellationReason))
}
