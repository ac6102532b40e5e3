package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type ListPatientsRequest struct {
	Name   string
	Email  string
	Phone  string
	Status string `validate:"omitempty,oneof=active inactive"`
	Page   int    `validate:"min=1"`
	Limit  int    `validate:"min=1,max=500"`
}

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type EmergencyContactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
}

type MedicalInfoRequest struct {
	BloodType      string   `json:"bloodType" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies      []string `json:"allergies"`
	MedicalHistory string   `json:"medicalHistory"`
}

type CreatePatientRequest struct {
	Name             string                   `json:"name" validate:"required,max=255"`
	Email            string                   `json:"email" validate:"required,email"`
	Phone            string                   `json:"phone" validate:"required,phone"`
	DateOfBirth      string                   `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           string                   `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          *AddressRequest          `json:"address"`
	EmergencyContact *EmergencyContactRequest `json:"emergencyContact" validate:"omitempty"`
	MedicalInfo      *MedicalInfoRequest      `json:"medicalInfo" validate:"omitempty"`
	Status           string                   `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdatePatientRequest changes only the fields that are set.
type UpdatePatientRequest struct {
	Name             *string                  `json:"name" validate:"omitempty,max=255"`
	Email            *string                  `json:"email" validate:"omitempty,email"`
	Phone            *string                  `json:"phone" validate:"omitempty,phone"`
	DateOfBirth      *string                  `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string                  `json:"gender" validate:"omitempty,oneof=male female other"`
	Address          *AddressRequest          `json:"address"`
	EmergencyContact *EmergencyContactRequest `json:"emergencyContact" validate:"omitempty"`
	MedicalInfo      *MedicalInfoRequest      `json:"medicalInfo" validate:"omitempty"`
	Status           *string                  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Response DTOs

type NotificationResponse struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

type PatientResponse struct {
	ID               uuid.UUID               `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Phone            string                  `json:"phone"`
	DateOfBirth      string                  `json:"dateOfBirth,omitempty"`
	Age              *int                    `json:"age,omitempty"`
	Gender           string                  `json:"gender,omitempty"`
	Address          AddressRequest          `json:"address"`
	EmergencyContact EmergencyContactRequest `json:"emergencyContact"`
	MedicalInfo      MedicalInfoRequest      `json:"medicalInfo"`
	Notifications    []NotificationResponse  `json:"notifications"`
	Status           string                  `json:"status"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int64             `json:"total"`
	Page     int               `json:"-"`
	Limit    int               `json:"-"`
}

type PatientStatsResponse struct {
	TotalAppointments int64                `json:"totalAppointments"`
	ByStatus          StatusCountsResponse `json:"byStatus"`
}
