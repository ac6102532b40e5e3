package repository

import (
	"errors"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	domainRepo "github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Create(appointment).Error
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit(clause.Associations).Save(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Patient").Preload("Doctor.Verification").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) filtered(db *gorm.DB, filter *entity.AppointmentFilter) *gorm.DB {
	query := db.Model(&entity.Appointment{})
	if filter == nil {
		return query
	}

	if filter.DoctorID != nil {
		query = query.Where("appointments.doctor_id = ?", *filter.DoctorID)
	}
	if filter.DoctorIDs != nil {
		query = query.Where("appointments.doctor_id IN ?", filter.DoctorIDs)
	}
	if filter.PatientID != nil {
		query = query.Where("appointments.patient_id = ?", *filter.PatientID)
	}
	if filter.Status != "" {
		query = query.Where("appointments.status = ?", filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("appointments.appointment_date >= ?", filter.DateFrom.Format(entity.DateLayout))
	}
	if filter.DateTo != nil {
		query = query.Where("appointments.appointment_date < ?", filter.DateTo.Format(entity.DateLayout))
	}
	return query
}

// FindAll returns one page of matching appointments and the total match count.
func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	appointments := []entity.Appointment{}
	if filter == nil {
		filter = &entity.AppointmentFilter{}
	}
	if filter.MatchesNothing() {
		return appointments, 0, nil
	}

	var total int64
	if err := r.filtered(db, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "appointments.appointment_date DESC, appointments.appointment_time DESC"
	if filter.Ascending {
		order = "appointments.appointment_date ASC, appointments.appointment_time ASC"
	}

	query := r.filtered(db, filter).
		Preload("Patient").
		Preload("Doctor.Verification").
		Order(order)
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.Limit).Offset((page - 1) * filter.Limit)
	}

	if err := query.Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

// SlotTaken reports whether a live appointment already holds the doctor's slot.
func (r *appointmentRepository) SlotTaken(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (bool, error) {
	query := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ?", doctorID, date.Format(entity.DateLayout), clock)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) (entity.StatusCounts, error) {
	counts := entity.StatusCounts{}
	for _, status := range entity.AppointmentStatuses {
		counts[status] = 0
	}
	if filter != nil && filter.MatchesNothing() {
		return counts, nil
	}

	var rows []struct {
		Status entity.AppointmentStatus
		Count  int64
	}
	err := r.filtered(db, filter).
		Select("appointments.status AS status, COUNT(*) AS count").
		Group("appointments.status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *appointmentRepository) CountDistinctPatients(db *gorm.DB, doctorIDs []uuid.UUID) (int64, error) {
	if len(doctorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id IN ?", doctorIDs).
		Distinct("patient_id").
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) CountByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.Appointment{}).Where("patient_id = ?", patientID).Count(&count).Error
	return count, err
}

// PatientSummaries groups a doctor's appointments per patient, most recent first.
func (r *appointmentRepository) PatientSummaries(db *gorm.DB, doctorID uuid.UUID) ([]entity.PatientAppointmentSummary, error) {
	summaries := []entity.PatientAppointmentSummary{}
	err := db.Model(&entity.Appointment{}).
		Select(`appointments.patient_id AS patient_id,
			patients.name AS name,
			patients.email AS email,
			patients.phone AS phone,
			COUNT(*) AS appointment_count,
			MAX(appointments.appointment_date) AS last_appointment`).
		Joins("JOIN patients ON patients.id = appointments.patient_id").
		Where("appointments.doctor_id = ?", doctorID).
		Group("appointments.patient_id, patients.name, patients.email, patients.phone").
		Order("last_appointment DESC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *appointmentRepository) FindPatientIDsByDoctors(db *gorm.DB, doctorIDs []uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(doctorIDs) == 0 {
		return ids, nil
	}
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id IN ?", doctorIDs).
		Distinct().
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// DailyCounts counts appointments per day in [from, to).
func (r *appointmentRepository) DailyCounts(db *gorm.DB, doctorIDs []uuid.UUID, from, to time.Time) ([]entity.DailyCount, error) {
	counts := []entity.DailyCount{}
	if len(doctorIDs) == 0 {
		return counts, nil
	}
	err := db.Model(&entity.Appointment{}).
		Select("appointment_date AS day, COUNT(*) AS count").
		Where("doctor_id IN ?", doctorIDs).
		Where("appointment_date >= ? AND appointment_date < ?", from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Group("appointment_date").
		Order("appointment_date ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *appointmentRepository) PerformanceByDoctor(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.DoctorPerformance, error) {
	rows := []entity.DoctorPerformance{}
	if len(doctorIDs) == 0 {
		return rows, nil
	}
	err := db.Model(&entity.Appointment{}).
		Select(`doctor_id,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = ?) AS completed,
			COUNT(*) FILTER (WHERE status = ?) AS cancelled`,
			entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled).
		Where("doctor_id IN ?", doctorIDs).
		Group("doctor_id").
		Order("total DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteExpired soft-deletes every appointment whose expire_at has passed.
func (r *appointmentRepository) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	result := db.Where("expire_at <= ?", now).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}
