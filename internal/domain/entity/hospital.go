package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Hospital is the hospital login account. Sessions are scoped to it.
type Hospital struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string         `gorm:"type:varchar(255);not null" json:"-"`
	HospitalName string         `gorm:"type:varchar(255);not null;index" json:"hospital_name"`
	Address      string         `gorm:"type:text;not null" json:"address"`
	Contact      string         `gorm:"type:varchar(50);not null" json:"contact"`
	ImageURL     string         `gorm:"type:text" json:"image_url"`
	DoctorIDs    pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"doctor_ids"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hospital) TableName() string {
	return "hospitals"
}

// SameHospital compares hospital names the way lookups do: trimmed, case-insensitive.
func SameHospital(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
