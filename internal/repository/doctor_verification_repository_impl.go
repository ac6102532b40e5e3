package repository

import (
	"errors"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	domainRepo "github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorVerificationRepository struct{}

func NewDoctorVerificationRepository() domainRepo.DoctorVerificationRepository {
	return &doctorVerificationRepository{}
}

func (r *doctorVerificationRepository) Create(db *gorm.DB, verification *entity.DoctorVerification) error {
	return db.Create(verification).Error
}

func (r *doctorVerificationRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error) {
	var verification entity.DoctorVerification
	err := db.Where("id = ?", id).First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
func (r *doctorVerificationRepository) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error) {
	var verification entity.DoctorVerification
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &verification, nil
}

// FindByHospital matches the hospital name exactly, ignoring case.
func (r *doctorVerificationRepository) FindByHospital(db *gorm.DB, hospitalName string, verified bool) ([]entity.DoctorVerification, error) {
	var verifications []entity.DoctorVerification
	err := db.
		Where("LOWER(hospital_name) = LOWER(?) AND verified = ?", strings.TrimSpace(hospitalName), verified).
		Order("created_at DESC").
		Find(&verifications).Error
	if err != nil {
		return nil, err
	}
	return verifications, nil
}

func (r *doctorVerificationRepository) Update(db *gorm.DB, verification *entity.DoctorVerification) error {
	return db.Save(verification).Error
}
