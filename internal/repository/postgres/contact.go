package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carelink/booking-api/internal/model"
	"github.com/carelink/booking-api/internal/repository"
	apperrors "github.com/carelink/booking-api/pkg/errors"
)

type contactRepository struct {
	BaseRepository
}

func NewContactRepository(base BaseRepository) repository.ContactRepository {
	return &contactRepository{base}
}

func (r *contactRepository) Create(ctx context.Context, contact *model.Contact) error {
	query := `
		INSERT INTO contacts (
			id, first_name, last_name, phone_number, email, problem, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	contact.ID = uuid.New()
	contact.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		contact.ID,
		contact.FirstName,
		contact.LastName,
		contact.PhoneNumber,
		contact.Email,
		contact.Problem,
		contact.CreatedAt,
	)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to create contact: %w", err))
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]*model.Contact, error) {
	query := `
		SELECT id, first_name, last_name, phone_number, email, problem, created_at
		FROM contacts
		ORDER BY created_at DESC
	`
	var contacts []*model.Contact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list contacts: %w", err))
	}
	return contacts, nil
}
