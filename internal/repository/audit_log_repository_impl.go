package repository

import (
	"errors"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	domainRepo "github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Omit("Hospital").Create(log).Error
}

func (r *auditLogRepository) FindRecentByHospital(db *gorm.DB, hospitalID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	logs := []entity.AuditLog{}
	err := db.Where("hospital_id = ?", hospitalID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	err := db.Preload("Hospital").Where("id = ?", id).First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
