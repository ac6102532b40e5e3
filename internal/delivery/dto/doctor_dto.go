package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ListDoctorsRequest struct {
	HospitalName string
	Verified     bool
}

type RejectDoctorRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// Response DTOs

type DocumentResponse struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type DoctorVerificationResponse struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Specialization     string             `json:"specialization"`
	HospitalName       string             `json:"hospitalName"`
	ProfileImage       string             `json:"profileImage,omitempty"`
	Documents          []DocumentResponse `json:"documents"`
	Verified           bool               `json:"verified"`
	RegistrationStatus string             `json:"registrationStatus"`
	RejectionReason    *string            `json:"rejectionReason,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

type DoctorResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Email              string     `json:"email"`
	MobileNumber       string     `json:"mobileNumber"`
	RegistrationStatus string     `json:"registrationStatus"`
	VerificationID     *uuid.UUID `json:"verificationId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// DoctorDetailResponse pairs a verification with its linked doctor, which may be null.
type DoctorDetailResponse struct {
	DoctorVerification DoctorVerificationResponse `json:"doctorVerification"`
	Doctor             *DoctorResponse            `json:"doctor"`
}

type DoctorListResponse struct {
	Doctors []DoctorDetailResponse `json:"doctors"`
	Total   int                    `json:"total"`
}

// DoctorStatusChangeResponse reports a verify or reject. DoctorUpdated is false
// when no doctor account links to the verification.
type DoctorStatusChangeResponse struct {
	DoctorVerification DoctorVerificationResponse `json:"doctorVerification"`
	Doctor             *DoctorResponse            `json:"doctor"`
	DoctorUpdated      bool                       `json:"doctorUpdated"`
	Warning            string                     `json:"warning,omitempty"`
}

// DoctorSummary is the short doctor view embedded in appointments and reports.
type DoctorSummary struct {
	ID             uuid.UUID  `json:"id"`
	VerificationID *uuid.UUID `json:"verificationId,omitempty"`
	Name           string     `json:"name,omitempty"`
	Email          string     `json:"email"`
	Specialization string     `json:"specialization,omitempty"`
	ProfileImage   string     `json:"profileImage,omitempty"`
}
