package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RegistrationStatus is shared by DoctorVerification and Doctor; both rows
// always carry the same value.
type RegistrationStatus string

const (
	RegistrationStatusUnderReview RegistrationStatus = "under review by hospital"
	RegistrationStatusVerified    RegistrationStatus = "verified"
	RegistrationStatusRejected    RegistrationStatus = "rejected"
)

var (
	ErrAlreadyVerified   = errors.New("doctor is already verified")
	ErrAlreadyRejected   = errors.New("doctor is already rejected")
	ErrRejectionIsFinal  = errors.New("doctor has been rejected")
	ErrUnknownTransition = errors.New("unknown registration status")
)

// Transition moves a registration status to target. It is the only place the
// verification lifecycle is decided: under review -> verified | rejected,
// verified -> rejected (revocation). Rejected is terminal.
func (s RegistrationStatus) Transition(target RegistrationStatus) (RegistrationStatus, error) {
	switch target {
	case RegistrationStatusVerified:
		switch s {
		case RegistrationStatusVerified:
			return s, ErrAlreadyVerified
		case RegistrationStatusRejected:
			return s, ErrRejectionIsFinal
		}
		return RegistrationStatusVerified, nil
	case RegistrationStatusRejected:
		if s == RegistrationStatusRejected {
			return s, ErrAlreadyRejected
		}
		return RegistrationStatusRejected, nil
	}
	return s, ErrUnknownTransition
}

// Document is an uploaded qualification or identity document.
type Document struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// DoctorVerification holds the credentials a doctor submitted for review by a hospital.
type DoctorVerification struct {
	ID                 uuid.UUID                     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name               string                        `gorm:"type:varchar(255)" json:"name"`
	Email              string                        `gorm:"type:varchar(255)" json:"email"`
	Specialization     string                        `gorm:"type:varchar(255)" json:"specialization"`
	HospitalName       string                        `gorm:"type:varchar(255);index" json:"hospital_name"`
	ProfileImage       string                        `gorm:"type:text" json:"profile_image"`
	Documents          datatypes.JSONSlice[Document] `gorm:"type:jsonb" json:"documents"`
	Verified           bool                          `gorm:"not null;default:false" json:"verified"`
	RegistrationStatus RegistrationStatus            `gorm:"type:varchar(32);not null;default:'under review by hospital';index" json:"registration_status"`
	RejectionReason    *string                       `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt          time.Time                     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time                     `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DoctorVerification) TableName() string {
	return "doctor_verifications"
}

// Verify marks the record verified.
func (v *DoctorVerification) Verify() error {
	next, err := v.RegistrationStatus.Transition(RegistrationStatusVerified)
	if err != nil {
		return err
	}
	v.RegistrationStatus = next
	v.Verified = true
	v.RejectionReason = nil
	return nil
}

// Reject marks the record rejected. An empty reason leaves any previous reason untouched.
func (v *DoctorVerification) Reject(reason string) error {
	next, err := v.RegistrationStatus.Transition(RegistrationStatusRejected)
	if err != nil {
		return err
	}
	v.RegistrationStatus = next
	v.Verified = false
	if reason != "" {
		v.RejectionReason = &reason
	}
	return nil
}

func (v *DoctorVerification) IsVerified() bool {
	return v.Verified && v.RegistrationStatus == RegistrationStatusVerified
}
