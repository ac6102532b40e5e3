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

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Omit(clause.Associations).Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Verification").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByVerificationID(db *gorm.DB, verificationID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("Verification").Where("verification_id = ?", verificationID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByVerificationIDs(db *gorm.DB, verificationIDs []uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	if len(verificationIDs) == 0 {
		return doctors, nil
	}
	err := db.Where("verification_id IN ?", verificationIDs).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	if len(ids) == 0 {
		return doctors, nil
	}
	err := db.Preload("Verification").Where("id IN ?", ids).Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// UpdateRegistrationStatus returns 0 affected rows when no doctor links to the verification.
func (r *doctorRepository) UpdateRegistrationStatus(db *gorm.DB, verificationID uuid.UUID, status entity.RegistrationStatus) (int64, error) {
	result := db.Model(&entity.Doctor{}).
		Where("verification_id = ?", verificationID).
		Update("registration_status", status)
	return result.RowsAffected, result.Error
}

// FindVerifiedIDsByHospital returns doctors verified on both records for the hospital.
func (r *doctorRepository) FindVerifiedIDsByHospital(db *gorm.DB, hospitalName string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	err := db.Model(&entity.Doctor{}).
		Joins("JOIN doctor_verifications ON doctor_verifications.id = doctors.verification_id").
		Where("LOWER(doctor_verifications.hospital_name) = LOWER(?)", strings.TrimSpace(hospitalName)).
		Where("doctor_verifications.verified = ? AND doctors.registration_status = ?", true, entity.RegistrationStatusVerified).
		Pluck("doctors.id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
