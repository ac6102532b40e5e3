package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RegisterRequest is bound from the multipart registration form.
type RegisterRequest struct {
	HospitalName string `validate:"required,max=255"`
	Address      string `validate:"required"`
	Contact      string `validate:"required,max=50"`
	Email        string `validate:"required,email"`
	Password     string `validate:"required,min=6"`

	Image            io.Reader `validate:"-"`
	ImageName        string    `validate:"-"`
	ImageContentType string    `validate:"-"`
}

type LoginRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
	HospitalName string `json:"hospitalName" validate:"required"`
}

// Response DTOs

type AuthResponse struct {
	Token        string    `json:"token"`
	ID           uuid.UUID `json:"id"`
	HospitalName string    `json:"hospitalName"`
	Email        string    `json:"email"`
	ExpiresIn    int64     `json:"expiresIn,omitempty"`
}

type HospitalResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	HospitalName string    `json:"hospitalName"`
	Address      string    `json:"address"`
	Contact      string    `json:"contact"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	DoctorIDs    []string  `json:"doctorIds"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
