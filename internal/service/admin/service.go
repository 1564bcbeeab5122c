package admin

import (
	"context"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

// Service covers the admin oversight surface: account listings, removals
// and aggregate analytics. Booking transitions requested by admins go
// through the booking service like everyone else's.
type Service struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	bookings repository.BookingRepository
}

func NewService(patients repository.PatientRepository, doctors repository.DoctorRepository, bookings repository.BookingRepository) *Service {
	return &Service{
		patients: patients,
		doctors:  doctors,
		bookings: bookings,
	}
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	return s.patients.List(ctx)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

// Analytics returns account counts and the booking status breakdown.
func (s *Service) Analytics(ctx context.Context) (*model.Analytics, error) {
	patientCount, err := s.patients.Count(ctx)
	if err != nil {
		return nil, err
	}

	doctorCount, err := s.doctors.Count(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Analytics{
		PatientCount:     patientCount,
		DoctorCount:      doctorCount,
		BookingsByStatus: byStatus,
	}, nil
}
