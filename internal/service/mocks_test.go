package service

import (
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

var mockAnyTime = mock.AnythingOfType("time.Time")

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(appointment).Error(0)
}

func (m *mockAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(appointment).Error(0)
}

func (m *mockAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(id)
	a, _ := args.Get(0).(*entity.Appointment)
	return a, args.Error(1)
}

func (m *mockAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	args := m.Called(filter)
	a, _ := args.Get(0).([]entity.Appointment)
	return a, args.Get(1).(int64), args.Error(2)
}

func (m *mockAppointmentRepo) SlotTaken(db *gorm.DB, doctorID uuid.UUID, date time.Time, clock string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(doctorID, date, clock, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAppointmentRepo) CountByStatus(db *gorm.DB, filter *entity.AppointmentFilter) (entity.StatusCounts, error) {
	args := m.Called(filter)
	c, _ := args.Get(0).(entity.StatusCounts)
	return c, args.Error(1)
}

func (m *mockAppointmentRepo) CountDistinctPatients(db *gorm.DB, doctorIDs []uuid.UUID) (int64, error) {
	args := m.Called(doctorIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) CountByPatient(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	args := m.Called(patientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) PatientSummaries(db *gorm.DB, doctorID uuid.UUID) ([]entity.PatientAppointmentSummary, error) {
	args := m.Called(doctorID)
	s, _ := args.Get(0).([]entity.PatientAppointmentSummary)
	return s, args.Error(1)
}

func (m *mockAppointmentRepo) FindPatientIDsByDoctors(db *gorm.DB, doctorIDs []uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(doctorIDs)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

func (m *mockAppointmentRepo) DailyCounts(db *gorm.DB, doctorIDs []uuid.UUID, from, to time.Time) ([]entity.DailyCount, error) {
	args := m.Called(doctorIDs, from, to)
	c, _ := args.Get(0).([]entity.DailyCount)
	return c, args.Error(1)
}

func (m *mockAppointmentRepo) PerformanceByDoctor(db *gorm.DB, doctorIDs []uuid.UUID) ([]entity.DoctorPerformance, error) {
	args := m.Called(doctorIDs)
	p, _ := args.Get(0).([]entity.DoctorPerformance)
	return p, args.Error(1)
}

func (m *mockAppointmentRepo) DeleteExpired(db *gorm.DB, now time.Time) (int64, error) {
	args := m.Called(now)
	return args.Get(0).(int64), args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) Create(db *gorm.DB, log *entity.AuditLog) error {
	return m.Called(log).Error(0)
}

func (m *mockAuditRepo) FindRecentByHospital(db *gorm.DB, hospitalID uuid.UUID, limit int) ([]entity.AuditLog, error) {
	args := m.Called(hospitalID, limit)
	l, _ := args.Get(0).([]entity.AuditLog)
	return l, args.Error(1)
}

func (m *mockAuditRepo) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	args := m.Called(id)
	l, _ := args.Get(0).(*entity.AuditLog)
	return l, args.Error(1)
}
