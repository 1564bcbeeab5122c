package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	apperrors "github.com/carelink/booking-api/pkg/errors"
)

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

const doctorColumns = `
	id, name, email, password_hash, phone, gender, specialization,
	education, experience, hospital_name, hospital_address, about,
	time_slots, consulting_fee, profile_photo, created_at, updated_at
`

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (
			id, name, email, password_hash, phone, gender, specialization,
			education, experience, hospital_name, hospital_address, about,
			time_slots, consulting_fee, profile_photo, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	doctor.ID = uuid.New()
	doctor.Email = strings.ToLower(strings.TrimSpace(doctor.Email))
	doctor.ApplyDefaults()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = doctor.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.Phone,
		doctor.Gender,
		doctor.Specialization,
		doctor.Education,
		doctor.Experience,
		doctor.HospitalName,
		doctor.HospitalAddress,
		doctor.About,
		doctor.TimeSlots,
		doctor.ConsultingFee,
		doctor.ProfilePhoto,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperrors.NewConflict("doctor already exists", err)
	}
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to create doctor: %w", err))
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE id = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("doctor", err)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get doctor: %w", err))
	}
	return &doctor, nil
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE email = $1`

	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("doctor", err)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get doctor by email: %w", err))
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET name = $1, phone = $2, gender = $3, specialization = $4,
		    education = $5, experience = $6, hospital_name = $7,
		    hospital_address = $8, about = $9, time_slots = $10,
		    consulting_fee = $11, profile_photo = $12, updated_at = $13
		WHERE id = $14
	`
	doctor.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		doctor.Name,
		doctor.Phone,
		doctor.Gender,
		doctor.Specialization,
		doctor.Education,
		doctor.Experience,
		doctor.HospitalName,
		doctor.HospitalAddress,
		doctor.About,
		pq.StringArray(doctor.TimeSlots),
		doctor.ConsultingFee,
		doctor.ProfilePhoto,
		doctor.UpdatedAt,
		doctor.ID,
	)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to update doctor: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return apperrors.NewNotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to delete doctor: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return apperrors.NewNotFound("doctor", nil)
	}
	return nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY created_at DESC`

	var doctors []*model.Doctor
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list doctors: %w", err))
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors`); err != nil {
		return 0, apperrors.NewInternal(fmt.Errorf("failed to count doctors: %w", err))
	}
	return count, nil
}
