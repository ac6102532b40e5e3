package repository

import (
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	Create(db *gorm.DB, hospital *entity.Hospital) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Hospital, error)
	FindByEmail(db *gorm.DB, email string) (*entity.Hospital, error)
	AddDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error)
	RemoveDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error)
}
