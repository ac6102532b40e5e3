package repository

import (
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	Update(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	SlotTaken(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (bool, error)
	CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) (entity.StatusCounts, error)
	CountDistinctPatients(db *gorm.DB, doctorIDs []uuid.UUID) (int64, error)
	CountByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error)
	PatientSummaries(db *gorm.DB, doctorID uuid.UUID) ([]entity.PatientAppointmentSummary, error)
	FindPatientIDsByDoctors(db *gorm.DB, doctorIDs []uuid.UUID) ([]uuid.UUID, error)
	DailyCounts(db *gorm.DB, doctorIDs []uuid.UUID, from, to time.Time) ([]entity.DailyCount, error)
	PerformanceByDoctor(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.DoctorPerformance, error)
	DeleteExpired(db *gorm.DB, now time.Time) (int64, error)
}
