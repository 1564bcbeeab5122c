package model

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID          uuid.UUID `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"firstname"`
	LastName    string    `db:"last_name" json:"lastname"`
	PhoneNumber string    `db:"phone_number" json:"phonenumber"`
	Email       string    `db:"email" json:"email"`
	Problem     string    `db:"problem" json:"problem"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CreateContactRequest struct {
	FirstName   string `json:"firstname" binding:"required"`
	LastName    string `json:"lastname" binding:"required"`
	PhoneNumber string `json:"phonenumber" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Problem     string `json:"problem" binding:"required"`
}
