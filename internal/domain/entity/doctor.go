package entity

import (
	"time"

	"github.com/google/uuid"
)

// Doctor is the doctor's login account. Its registration status mirrors the
// linked DoctorVerification.
type Doctor struct {
	ID                 uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email              string             `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash       string             `gorm:"type:varchar(255);not null" json:"-"`
	MobileNumber       string             `gorm:"type:varchar(20);uniqueIndex;not null" json:"mobile_number"`
	RegistrationStatus RegistrationStatus `gorm:"type:varchar(32);not null;default:'under review by hospital';index" json:"registration_status"`
	VerificationID     *uuid.UUID         `gorm:"type:uuid;uniqueIndex" json:"verification_id,omitempty"`
	CreatedAt          time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Verification *DoctorVerification `gorm:"foreignKey:VerificationID" json:"verification,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) IsVerified() bool {
	return d.RegistrationStatus == RegistrationStatusVerified
}

// DoctorWithVerification pairs a verification record with its linked doctor account (nil when missing).
type DoctorWithVerification struct {
	Verification DoctorVerification
	Doctor       *Doctor
}
