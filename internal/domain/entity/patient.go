package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PatientStatus string

const (
	PatientStatusActive   PatientStatus = "active"
	PatientStatusInactive PatientStatus = "inactive"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
}

type MedicalInfo struct {
	BloodType      string   `json:"bloodType,omitempty"`
	Allergies      []string `json:"allergies"`
	MedicalHistory string   `json:"medicalHistory"`
}

type Notification struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// Patient is a patient's demographic and medical profile.
type Patient struct {
	ID               uuid.UUID                            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name             string                               `gorm:"type:varchar(255);not null" json:"name"`
	Email            string                               `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone            string                               `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	DateOfBirth      *time.Time                           `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender           string                               `gorm:"type:varchar(10)" json:"gender"`
	Address          datatypes.JSONType[Address]          `gorm:"type:jsonb" json:"address"`
	EmergencyContact datatypes.JSONType[EmergencyContact] `gorm:"type:jsonb" json:"emergency_contact"`
	MedicalInfo      datatypes.JSONType[MedicalInfo]      `gorm:"type:jsonb" json:"medical_info"`
	Notifications    datatypes.JSONSlice[Notification]    `gorm:"type:jsonb" json:"notifications"`
	Status           PatientStatus                        `gorm:"type:varchar(10);not null;default:'active';index" json:"status"`
	CreatedAt        time.Time                            `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time                            `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// AgeAt returns the patient's age in whole years, or -1 when the date of birth is unknown.
func (p *Patient) AgeAt(now time.Time) int {
	if p.DateOfBirth == nil || p.DateOfBirth.IsZero() {
		return -1
	}
	dob := *p.DateOfBirth
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return -1
	}
	return age
}

// PatientFilter is a domain-level filter for listing patients.
type PatientFilter struct {
	Name   string // ILIKE
	Email  string // ILIKE
	Phone  string // ILIKE
	Status PatientStatus
	Page   int
	Limit  int
}
