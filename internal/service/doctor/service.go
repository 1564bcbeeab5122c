package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
)

type Service struct {
	repo repository.DoctorRepository
}

func NewService(repo repository.DoctorRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

// UpdateProfile applies only the fields present in the request body.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorProfileRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Gender != nil {
		doctor.Gender = *req.Gender
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Education != nil {
		doctor.Education = *req.Education
	}
	if req.Experience != nil {
		doctor.Experience = *req.Experience
	}
	if req.HospitalName != nil {
		doctor.HospitalName = *req.HospitalName
	}
	if req.HospitalAddress != nil {
		doctor.HospitalAddress = *req.HospitalAddress
	}
	if req.About != nil {
		doctor.About = *req.About
	}
	if req.TimeSlots != nil {
		doctor.TimeSlots = pq.StringArray(req.TimeSlots)
	}
	if req.ConsultingFee != nil {
		doctor.ConsultingFee = *req.ConsultingFee
	}
	if req.ProfilePhoto != nil {
		doctor.ProfilePhoto = *req.ProfilePhoto
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}
