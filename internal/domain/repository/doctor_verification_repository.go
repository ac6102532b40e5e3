package repository

import (
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorVerificationRepository interface {
	Create(db *gorm.DB, verification *entity.DoctorVerification) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error)
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error)
	FindByHospital(db *gorm.DB, hospitalName string, verified bool) ([]entity.DoctorVerification, error)
	Update(db *gorm.DB, verification *entity.DoctorVerification) error
}
