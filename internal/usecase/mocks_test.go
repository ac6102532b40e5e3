package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB returns a gorm handle backed by sqlmock. Repositories are mocked,
// so only transaction boundaries reach the driver.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db, sqlMock
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockHospitalRepo struct {
	mock.Mock
}

func (m *mockHospitalRepo) Create(db *gorm.DB, hospital *entity.Hospital) error {
	args := m.Called(hospital)
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockHospitalRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Hospital, error) {
	args := m.Called(id)
	h, _ := args.Get(0).(*entity.Hospital)
	return h, args.Error(1)
}

func (m *mockHospitalRepo) FindByEmail(db *gorm.DB, email string) (*entity.Hospital, error) {
	args := m.Called(email)
	h, _ := args.Get(0).(*entity.Hospital)
	return h, args.Error(1)
}

func (m *mockHospitalRepo) AddDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error) {
	args := m.Called(hospitalName, verificationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockHospitalRepo) RemoveDoctor(db *gorm.DB, hospitalName string, verificationID uuid.UUID) (int64, error) {
	args := m.Called(hospitalName, verificationID)
	return args.Get(0).(int64), args.Error(1)
}

type mockVerificationRepo struct {
	mock.Mock
}

func (m *mockVerificationRepo) Create(db *gorm.DB, verification *entity.DoctorVerification) error {
	return m.Called(verification).Error(0)
}

func (m *mockVerificationRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error) {
	args := m.Called(id)
	v, _ := args.Get(0).(*entity.DoctorVerification)
	return v, args.Error(1)
}

func (m *mockVerificationRepo) FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.DoctorVerification, error) {
	args := m.Called(id)
	v, _ := args.Get(0).(*entity.DoctorVerification)
	return v, args.Error(1)
}

func (m *mockVerificationRepo) FindByHospital(db *gorm.DB, hospitalName string, verified bool) ([]entity.DoctorVerification, error) {
	args := m.Called(hospitalName, verified)
	v, _ := args.Get(0).([]entity.DoctorVerification)
	return v, args.Error(1)
}

func (m *mockVerificationRepo) Update(db *gorm.DB, verification *entity.DoctorVerification) error {
	return m.Called(verification).Error(0)
}

type mockDoctorRepo struct {
	mock.Mock
}

func (m *mockDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return m.Called(doctor).Error(0)
}

func (m *mockDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(id)
	d, _ := args.Get(0).(*entity.Doctor)
	return d, args.Error(1)
}

func (m *mockDoctorRepo) FindByVerificationID(db *gorm.DB, verificationID uuid.UUID) (*entity.Doctor, error) {
	args := m.Called(verificationID)
	d, _ := args.Get(0).(*entity.Doctor)
	return d, args.Error(1)
}

func (m *mockDoctorRepo) FindByVerificationIDs(db *gorm.DB, verificationIDs []uuid.UUID) ([]entity.Doctor, error) {
	args := m.Called(verificationIDs)
	d, _ := args.Get(0).([]entity.Doctor)
	return d, args.Error(1)
}

func (m *mockDoctorRepo) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Doctor, error) {
	args := m.Called(ids)
	d, _ := args.Get(0).([]entity.Doctor)
	return d, args.Error(1)
}

func (m *mockDoctorRepo) UpdateRegistrationStatus(db *gorm.DB, verificationID uuid.UUID, status entity.RegistrationStatus) (int64, error) {
	args := m.Called(verificationID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockDoctorRepo) FindVerifiedIDsByHospital(db *gorm.DB, hospitalName string) ([]uuid.UUID, error) {
	args := m.Called(hospitalName)
	ids, _ := args.Get(0).([]uuid.UUID)
	return ids, args.Error(1)
}

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	args := m.Called(appointment)
	if args.Error(0) == nil && appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	return args.Error(0)
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

type mockPatientRepo struct {
	mock.Mock
}

func (m *mockPatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	args := m.Called(patient)
	if args.Error(0) == nil && patient.ID == uuid.Nil {
		patient.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *mockPatientRepo) Update(db *gorm.DB, patient *entity.Patient) error {
	return m.Called(patient).Error(0)
}

func (m *mockPatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*entity.Patient)
	return p, args.Error(1)
}

func (m *mockPatientRepo) FindByIDs(db *gorm.DB, ids []uuid.UUID) ([]entity.Patient, error) {
	args := m.Called(ids)
	p, _ := args.Get(0).([]entity.Patient)
	return p, args.Error(1)
}

func (m *mockPatientRepo) FindAll(db *gorm.DB, filter *entity.PatientFilter) ([]entity.Patient, int64, error) {
	args := m.Called(filter)
	p, _ := args.Get(0).([]entity.Patient)
	return p, args.Get(1).(int64), args.Error(2)
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

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, hospitalID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, hospitalID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, hospitalID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return m.Called(action, entityName, entityID).Error(0)
}

type mockSlotLocker struct {
	mock.Mock
	released int
}

func (m *mockSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (func(), error) {
	args := m.Called(doctorID, date, clock)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

type mockFileStorage struct {
	mock.Mock
}

func (m *mockFileStorage) Save(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(folder, filename, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockFileStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(url)
	return args.Error(0)
}
