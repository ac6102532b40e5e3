package repository

import (
	"errors"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	domainRepo "github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type hospitalRepository struct{}

func NewHospitalRepository() domainRepo.HospitalRepository {
	return &hospitalRepository{}
}

func (r *hospitalRepository) Create(db *gorm.DB, hospital *entity.Hospital) error {
	return db.Create(hospital).Error
}

func (r *hospitalRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindByEmail(db *gorm.DB, email string) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := db.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

// AddDoctor appends a verification id to every hospital account with this name, skipping duplicates.
func (r *hospitalRepository) AddDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error) {
	id := verificationID.String()
	result := db.Model(&entity.Hospital{}).
		Where("LOWER(hospital_name) = LOWER(?) AND NOT (?::text = ANY(doctor_ids))", strings.TrimSpace(hospitalName), id).
		Update("doctor_ids", gorm.Expr("array_append(doctor_ids, ?::text)", id))
	return result.RowsAffected, result.Error
}

func (r *hospitalRepository) RemoveDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error) {
	id := verificationID.String()
	result := db.Model(&entity.Hospital{}).
		Where("LOWER(hospital_name) = LOWER(?) AND ?::text = ANY(doctor_ids)", strings.TrimSpace(hospitalName), id).
		Update("doctor_ids", gorm.Expr("array_remove(doctor_ids, ?::text)", id))
	return result.RowsAffected, result.Error
}
