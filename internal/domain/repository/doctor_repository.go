package repository

import (
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error)
	FindByVerificationID(db *gorm.DB, verificationID uuid.UUID) (*entity.Doctor, error)
	FindByVerificationIDs(db *gorm.DB, verificationIDs []uuid.UUID) ([]entity.Doctor, error)
	FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Doctor, error)
	UpdateRegistrationStatus(db *gorm.DB, verificationID uuid.UUID, status entity.RegistrationStatus) (int64, error)
	FindVerifiedIDsByHospital(db *gorm.DB, hospitalName string) ([]uuid.UUID, error)
}
