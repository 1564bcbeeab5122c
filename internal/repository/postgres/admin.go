package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	apperrors "github.com/carelink/booking-api/pkg/errors"
)

type adminRepository struct {
	BaseRepository
}

func NewAdminRepository(base BaseRepository) repository.AdminRepository {
	return &adminRepository{base}
}

const adminColumns = `
	id, name, email, password_hash, status, last_login_at, created_at, updated_at
`

func (r *adminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (
			id, name, email, password_hash, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	admin.ID = uuid.New()
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	if admin.Status == "" {
		admin.Status = model.AdminStatusActive
	}
	admin.CreatedAt = time.Now()
	admin.UpdatedAt = admin.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.Name,
		admin.Email,
		admin.PasswordHash,
		admin.Status,
		admin.CreatedAt,
		admin.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return apperrors.NewConflict("admin already exists", err)
	}
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to create admin: %w", err))
	}
	return nil
}

func (r *adminRepository) Get(ctx context.Context, id uuid.UUID) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("admin", err)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get admin: %w", err))
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE email = $1`

	var admin model.Admin
	err := r.db.GetContext(ctx, &admin, query, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("admin", err)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get admin by email: %w", err))
	}
	return &admin, nil
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `UPDATE admins SET last_login_at = $1, updated_at = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, at, time.Now(), id)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to update admin login time: %w", err))
	}
	return nil
}
