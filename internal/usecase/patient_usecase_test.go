package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type patientFixture struct {
	uc           *patientUsecase
	sql          sqlmock.Sqlmock
	patients     *mockPatientRepo
	appointments *mockAppointmentRepo
	doctors      *mockDoctorRepo
	audit        *mockAuditService
}

func newPatientFixture(t *testing.T) *patientFixture {
	t.Helper()
	db, sqlMock := newMockDB(t)
	f := &patientFixture{
		sql:          sqlMock,
		patients:     new(mockPatientRepo),
		appointments: new(mockAppointmentRepo),
		doctors:      new(mockDoctorRepo),
		audit:        new(mockAuditService),
	}
	uc := NewPatientUsecase(db, quietLogger(), f.patients, f.appointments, f.doctors, f.audit)
	f.uc = uc.(*patientUsecase)
	f.uc.now = fixedNow(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC))
	return f
}

func TestPatientUsecase_CreatePatient(t *testing.T) {
	f := newPatientFixture(t)

	f.sql.ExpectBegin()
	f.patients.On("Create", mock.MatchedBy(func(p *entity.Patient) bool {
		return p.Email == "asha@example.com" && p.Status == entity.PatientStatusActive &&
			p.DateOfBirth != nil && p.MedicalInfo.Data().BloodType == "O+"
	})).Return(nil).Once()
	f.audit.On("LogCreate", entity.AuditActionPatientCreate, "patient", mock.Anything).Return(nil).Once()
	f.sql.ExpectCommit()

	resp, err := f.uc.CreatePatient(context.Background(), &dto.CreatePatientRequest{
		Name:        "Asha",
		Email:       " Asha@Example.com ",
		Phone:       "+15550002222",
		DateOfBirth: "2000-05-31",
		MedicalInfo: &dto.MedicalInfoRequest{BloodType: "O+"},
	})
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	require.NotNil(t, resp.Age)
	assert.Equal(t, 30, *resp.Age)
	assert.Equal(t, []string{}, resp.MedicalInfo.Allergies)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestPatientUsecase_CreatePatientDuplicates(t *testing.T) {
	tests := []struct {
		constraint string
		wantErr    error
	}{
		{"uni_patients_email", ErrPatientEmailExists},
		{"uni_patients_phone", ErrPatientPhoneExists},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			f := newPatientFixture(t)
			f.sql.ExpectBegin()
			f.patients.On("Create", mock.Anything).
				Return(&pgconn.PgError{Code: "23505", ConstraintName: tt.constraint}).Once()
			f.sql.ExpectRollback()

			_, err := f.uc.CreatePatient(context.Background(), &dto.CreatePatientRequest{Name: "A", Email: "a@b.com", Phone: "+15550001111"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, f.sql.ExpectationsWereMet())
		})
	}
}

func TestPatientUsecase_UpdatePatient(t *testing.T) {
	f := newPatientFixture(t)
	id := uuid.New()
	existing := &entity.Patient{ID: id, Name: "Asha", Email: "asha@example.com", Phone: "+15550002222", Status: entity.PatientStatusActive}

	name := "Asha K"
	status := "inactive"
	f.sql.ExpectBegin()
	f.patients.On("FindByID", id).Return(existing, nil).Once()
	f.patients.On("Update", mock.MatchedBy(func(p *entity.Patient) bool {
		return p.Name == "Asha K" && p.Status == entity.PatientStatusInactive && p.Email == "asha@example.com"
	})).Return(nil).Once()
	f.audit.On("LogUpdate", entity.AuditActionPatientUpdate, "patient", id.String()).Return(nil).Once()
	f.sql.ExpectCommit()

	resp, err := f.uc.UpdatePatient(context.Background(), id, &dto.UpdatePatientRequest{Name: &name, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", resp.Name)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestPatientUsecase_DeletePatientWithAppointments(t *testing.T) {
	f := newPatientFixture(t)
	id := uuid.New()

	f.sql.ExpectBegin()
	f.patients.On("FindByID", id).Return(&entity.Patient{ID: id}, nil).Once()
	f.appointments.On("CountByPatient", id).Return(int64(2), nil).Once()
	f.sql.ExpectRollback()

	err := f.uc.DeletePatient(context.Background(), id)
	assert.ErrorIs(t, err, ErrPatientHasAppointments)
	f.patients.AssertNotCalled(t, "Delete", id)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestPatientUsecase_DeletePatient(t *testing.T) {
	f := newPatientFixture(t)
	id := uuid.New()

	f.sql.ExpectBegin()
	f.patients.On("FindByID", id).Return(&entity.Patient{ID: id}, nil).Once()
	f.appointments.On("CountByPatient", id).Return(int64(0), nil).Once()
	f.patients.On("Delete", id).Return(int64(1), nil).Once()
	f.audit.On("LogDelete", entity.AuditActionPatientDelete, "patient", id.String()).Return(nil).Once()
	f.sql.ExpectCommit()

	require.NoError(t, f.uc.DeletePatient(context.Background(), id))
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestPatientUsecase_GetPatientMissing(t *testing.T) {
	f := newPatientFixture(t)
	id := uuid.New()
	f.patients.On("FindByID", id).Return(nil, nil)

	_, err := f.uc.GetPatient(context.Background(), id)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	_, err = f.uc.PatientStats(context.Background(), id)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientUsecase_PatientStats(t *testing.T) {
	f := newPatientFixture(t)
	id := uuid.New()
	f.patients.On("FindByID", id).Return(&entity.Patient{ID: id}, nil).Once()
	f.appointments.On("CountByStatus", mock.MatchedBy(func(fl *entity.AppointmentFilter) bool {
		return fl.PatientID != nil && *fl.PatientID == id
	})).Return(entity.StatusCounts{entity.AppointmentStatusPending: 1, entity.AppointmentStatusCancelled: 2}, nil).Once()

	stats, err := f.uc.PatientStats(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalAppointments)
	assert.Equal(t, int64(2), stats.ByStatus.Cancelled)
}

func TestPatientUsecase_ListPatientsDefaults(t *testing.T) {
	f := newPatientFixture(t)
	f.patients.On("FindAll", &entity.PatientFilter{Name: "ash", Page: 1, Limit: 50}).
		Return([]entity.Patient{{ID: uuid.New(), Name: "Asha"}}, int64(1), nil).Once()

	resp, err := f.uc.ListPatients(context.Background(), &dto.ListPatientsRequest{Name: " ash "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 50, resp.Limit)
}

func TestPatientUsecase_HospitalPatients(t *testing.T) {
	f := newPatientFixture(t)

	_, err := f.uc.HospitalPatients(context.Background(), " ")
	assert.ErrorIs(t, err, ErrHospitalNameNeeded)

	doctorIDs := []uuid.UUID{uuid.New()}
	patientIDs := []uuid.UUID{uuid.New()}
	f.doctors.On("FindVerifiedIDsByHospital", "Test Clinic").Return(doctorIDs, nil).Once()
	f.appointments.On("FindPatientIDsByDoctors", doctorIDs).Return(patientIDs, nil).Once()
	f.patients.On("FindByIDs", patientIDs).Return([]entity.Patient{{ID: patientIDs[0], Name: "Asha"}}, nil).Once()

	resp, err := f.uc.HospitalPatients(context.Background(), "Test Clinic")
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "Asha", resp[0].Name)
}
