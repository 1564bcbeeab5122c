package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

type Service struct {
	repo    repository.PatientRepository
	doctors repository.DoctorRepository
}

func NewService(repo repository.PatientRepository, doctors repository.DoctorRepository) *Service {
	return &Service{repo: repo, doctors: doctors}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile applies only the fields present in the request. A present
// empty string clears the field; an absent field is left alone.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdatePatientProfileRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.DateOfBirth != nil {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.ProfilePhoto != nil {
		patient.ProfilePhoto = *req.ProfilePhoto
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// ListDoctors is the patient-facing doctor directory.
func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.doctors.List(ctx)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.doctors.Get(ctx, id)
}
