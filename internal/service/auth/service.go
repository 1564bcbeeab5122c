package auth

import (
	"context"
	"time"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/errors"
	"github.com/carelink/booking-api/pkg/security"
)

// Service handles registration and credential verification for all three
// actor roles. Each role has its own directory table; emails are unique
// per table, matched case-insensitively.
type Service struct {
	patients repository.PatientRepository
	doctors  repository.DoctorRepository
	admins   repository.AdminRepository
	hasher   security.PasswordHasher
	jwtSvc   auth.JWTService
}

func NewService(
	patients repository.PatientRepository,
	doctors repository.DoctorRepository,
	admins repository.AdminRepository,
	hasher security.PasswordHasher,
	jwtSvc auth.JWTService,
) *Service {
	return &Service{
		patients: patients,
		doctors:  doctors,
		admins:   admins,
		hasher:   hasher,
		jwtSvc:   jwtSvc,
	}
}

func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.Patient, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewValidation("invalid password", err)
	}

	patient := &model.Patient{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Phone:        req.Phone,
		Address:      req.Address,
		Gender:       req.Gender,
		DateOfBirth:  req.DateOfBirth,
	}
	if err := s.patients.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) LoginPatient(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	patient, err := s.patients.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}
	if err := s.hasher.Compare(patient.PasswordHash, req.Password); err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}
	return s.issueToken(model.PatientIdentity(patient.ID))
}

func (s *Service) RegisterDoctor(ctx context.Context, req *model.RegisterDoctorRequest) (*model.Doctor, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewValidation("invalid password", err)
	}

	doctor := &model.Doctor{
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    hash,
		Phone:           req.Phone,
		Gender:          req.Gender,
		Specialization:  req.Specialization,
		Education:       req.Education,
		Experience:      req.Experience,
		HospitalName:    req.HospitalName,
		HospitalAddress: req.HospitalAddress,
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return nil, err
	}
	return doctor, nil
}

func (s *Service) LoginDoctor(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	doctor, err := s.doctors.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}
	if err := s.hasher.Compare(doctor.PasswordHash, req.Password); err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}
	return s.issueToken(model.DoctorIdentity(doctor.ID))
}

func (s *Service) RegisterAdmin(ctx context.Context, req *model.RegisterAdminRequest) (*model.TokenResponse, error) {
	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, errors.NewValidation("invalid password", err)
	}

	admin := &model.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return s.issueToken(model.AdminIdentity(admin.ID))
}

func (s *Service) LoginAdmin(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	admin, err := s.admins.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, req.Password); err != nil {
		return nil, errors.NewUnauthorized("invalid credentials", err)
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID, time.Now()); err != nil {
		// Login still succeeds; the timestamp is advisory.
		return s.issueToken(model.AdminIdentity(admin.ID))
	}
	return s.issueToken(model.AdminIdentity(admin.ID))
}

func (s *Service) issueToken(identity model.Identity) (*model.TokenResponse, error) {
	token, err := s.jwtSvc.Generate(identity)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return token, nil
}
