package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	apperrors "github.com/carelink/booking-api/pkg/errors"
)

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{base}
}

const bookingColumns = `
	id, patient_id, doctor_id, date, time_slot, urgency, reason,
	status, payment_status, cancellation_reason, cancelled_by,
	version, created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, patient_id, doctor_id, date, time_slot, urgency, reason,
			status, payment_status, cancellation_reason, cancelled_by,
			version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	booking.ID = uuid.New()
	booking.Version = 1
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.PatientID,
		booking.DoctorID,
		booking.Date,
		booking.TimeSlot,
		booking.Urgency,
		booking.Reason,
		booking.Status,
		booking.PaymentStatus,
		booking.CancellationReason,
		booking.CancelledBy,
		booking.Version,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to create booking: %w", err))
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFound("booking", err)
	}
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to get booking: %w", err))
	}
	return &booking, nil
}

// UpdateStatus persists a lifecycle transition. The WHERE clause pins the
// version read by the caller, so a lost race affects zero rows.
func (r *bookingRepository) UpdateStatus(ctx context.Context, booking *model.Booking, expectedVersion int64) error {
	query := `
		UPDATE bookings
		SET status = $1, cancellation_reason = $2, cancelled_by = $3,
		    version = version + 1, updated_at = $4
		WHERE id = $5 AND version = $6
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		booking.Status,
		booking.CancellationReason,
		booking.CancelledBy,
		booking.UpdatedAt,
		booking.ID,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to update booking status: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return apperrors.NewConflict("booking was modified concurrently", nil)
	}

	booking.Version = expectedVersion + 1
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += fmt.Sprintf(" AND patient_id = $%d", argCount)
			args = append(args, filters.PatientID)
			argCount++
		}
		if filters.DoctorID != uuid.Nil {
			query += fmt.Sprintf(" AND doctor_id = $%d", argCount)
			args = append(args, filters.DoctorID)
			argCount++
		}
		if filters.Status != "" {
			query += fmt.Sprintf(" AND status = $%d", argCount)
			args = append(args, filters.Status)
			argCount++
		}
	}

	query += " ORDER BY created_at DESC"

	var bookings []*model.Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list bookings: %w", err))
	}
	return bookings, nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[model.BookingStatus]int64, error) {
	query := `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to count bookings: %w", err))
	}
	defer rows.Close()

	counts := make(map[model.BookingStatus]int64)
	for rows.Next() {
		var status model.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, apperrors.NewInternal(fmt.Errorf("failed to scan booking count: %w", err))
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to iterate booking counts: %w", err))
	}
	return counts, nil
}
