package model

import (
	"time"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterPatientRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Password    string     `json:"password" binding:"required,min=8"`
	Phone       string     `json:"phone" binding:"required"`
	Address     string     `json:"address" binding:"required"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth"`
}

type RegisterDoctorRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	Phone           string `json:"phone" binding:"required"`
	Gender          string `json:"gender" binding:"required"`
	Specialization  string `json:"specialization" binding:"required"`
	Education       string `json:"education" binding:"required"`
	Experience      int    `json:"experience" binding:"required"`
	HospitalName    string `json:"hospital_name"`
	HospitalAddress string `json:"hospital_address"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
