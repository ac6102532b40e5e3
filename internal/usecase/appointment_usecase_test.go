package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"
	"github.com/RayuduBharani/meetocure-hs/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var bookingNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

type appointmentFixture struct {
	uc           *appointmentUsecase
	sql          sqlmock.Sqlmock
	appointments *mockAppointmentRepo
	doctors      *mockDoctorRepo
	patients     *mockPatientRepo
	audit        *mockAuditService
	locker       *mockSlotLocker
	doctor       *entity.Doctor
	patient      *entity.Patient
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	db, sqlMock := newMockDB(t)
	dob := time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC)

	f := &appointmentFixture{
		sql:          sqlMock,
		appointments: new(mockAppointmentRepo),
		doctors:      new(mockDoctorRepo),
		patients:     new(mockPatientRepo),
		audit:        new(mockAuditService),
		locker:       new(mockSlotLocker),
		doctor:       &entity.Doctor{ID: uuid.New(), Email: "rao@clinic.test", RegistrationStatus: entity.RegistrationStatusVerified},
		patient: &entity.Patient{
			ID:          uuid.New(),
			Name:        "Asha",
			Phone:       "+15550002222",
			Gender:      "female",
			DateOfBirth: &dob,
			MedicalInfo: datatypes.NewJSONType(entity.MedicalInfo{BloodType: "O+", Allergies: []string{"penicillin"}}),
		},
	}
	uc := NewAppointmentUsecase(db, quietLogger(), f.appointments, f.doctors, f.patients, f.audit, f.locker, metrics.New(prometheus.NewRegistry()), time.UTC)
	f.uc = uc.(*appointmentUsecase)
	f.uc.now = fixedNow(bookingNow)
	return f
}

func (f *appointmentFixture) expectParticipants() {
	f.doctors.On("FindByID", f.doctor.ID).Return(f.doctor, nil)
	f.patients.On("FindByID", f.patient.ID).Return(f.patient, nil)
}

func (f *appointmentFixture) createRequest(date, clock string) *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Reason:          "checkup",
	}
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()
	day := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)

	f.locker.On("Acquire", f.doctor.ID, "2030-01-10", "09:30").Return(nil).Once()
	f.sql.ExpectBegin()
	f.appointments.On("SlotTaken", f.doctor.ID, day, "09:30", (*uuid.UUID)(nil)).Return(false, nil).Once()
	f.appointments.On("Create", mock.MatchedBy(func(a *entity.Appointment) bool {
		return a.Status == entity.AppointmentStatusPending &&
			a.AppointmentType == entity.DefaultAppointmentType &&
			a.Payment.Currency == entity.DefaultCurrency &&
			a.ExpireAt.Equal(time.Date(2030, 1, 10, 10, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	f.audit.On("LogCreate", entity.AuditActionAppointmentCreate, "appointment", mock.Anything).Return(nil).Once()
	f.sql.ExpectCommit()

	resp, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	require.NoError(t, err)
	assert.Equal(t, "2030-01-10", resp.AppointmentDate)
	assert.Equal(t, "09:30", resp.AppointmentTime)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, time.Date(2030, 1, 10, 10, 0, 0, 0, time.UTC), resp.ExpireAt)

	// snapshot derived from the patient profile
	assert.Equal(t, "Asha", resp.PatientInfo.Name)
	assert.Equal(t, "O+", resp.PatientInfo.BloodGroup)
	require.NotNil(t, resp.PatientInfo.Age)
	assert.Equal(t, 39, *resp.PatientInfo.Age)
	require.NotNil(t, resp.Doctor)
	require.NotNil(t, resp.Patient)

	assert.Equal(t, 1, f.locker.released)
	assert.NoError(t, f.sql.ExpectationsWereMet())
	f.appointments.AssertExpectations(t)
}

func TestAppointmentUsecase_CreateAppointmentSlotTaken(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()

	f.locker.On("Acquire", f.doctor.ID, "2030-01-10", "09:30").Return(nil).Once()
	f.sql.ExpectBegin()
	f.appointments.On("SlotTaken", f.doctor.ID, mock.Anything, "09:30", (*uuid.UUID)(nil)).Return(true, nil).Once()
	f.sql.ExpectRollback()

	_, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)

	assert.Equal(t, 1, f.locker.released)
	f.appointments.AssertNotCalled(t, "Create", mock.Anything)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestAppointmentUsecase_CreateAppointmentUniqueViolation(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()

	f.locker.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.sql.ExpectBegin()
	f.appointments.On("SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Once()
	f.appointments.On("Create", mock.Anything).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "uniq_appointment_slot"}).Once()
	f.sql.ExpectRollback()

	_, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)
	f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_CreateAppointmentRejectsPast(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()

	_, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-01", "07:59"))
	assert.ErrorIs(t, err, entity.ErrAppointmentInPast)

	f.locker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestAppointmentUsecase_CreateAppointmentMissingParticipants(t *testing.T) {
	f := newAppointmentFixture(t)
	f.doctors.On("FindByID", f.doctor.ID).Return(nil, nil).Once()

	_, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	f.doctors.On("FindByID", f.doctor.ID).Return(f.doctor, nil).Once()
	f.patients.On("FindByID", f.patient.ID).Return(nil, nil).Once()

	_, err = f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestAppointmentUsecase_CreateAppointmentNegativePayment(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()
	req := f.createRequest("2030-01-10", "09:30")
	req.Payment = &dto.PaymentRequest{Amount: decimal.NewFromInt(-5)}

	_, err := f.uc.CreateAppointment(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidPaymentAmount)
}

func TestAppointmentUsecase_CreateAppointmentLockHeldElsewhere(t *testing.T) {
	f := newAppointmentFixture(t)
	f.expectParticipants()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	f.uc.slotLocker = service.NewRedisSlotLocker(client, quietLogger(), time.Minute)

	require.NoError(t, mr.Set(service.SlotKey(f.doctor.ID, "2030-01-10", "09:30"), "someone-else"))

	_, err := f.uc.CreateAppointment(context.Background(), f.createRequest("2030-01-10", "09:30"))
	assert.ErrorIs(t, err, ErrAppointmentSlotTaken)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestAppointmentUsecase_UpdateAppointmentReschedule(t *testing.T) {
	f := newAppointmentFixture(t)
	id := uuid.New()
	existing := &entity.Appointment{ID: id, DoctorID: f.doctor.ID, PatientID: f.patient.ID, Status: entity.AppointmentStatusPending}
	require.NoError(t, existing.Schedule(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), "09:30", time.UTC, bookingNow))

	newDate, newTime := "2030-01-12", "14:00"
	newDay := time.Date(2030, 1, 12, 0, 0, 0, 0, time.UTC)

	f.appointments.On("FindByID", id).Return(existing, nil).Once()
	f.locker.On("Acquire", f.doctor.ID, newDate, newTime).Return(nil).Once()
	f.sql.ExpectBegin()
	f.appointments.On("SlotTaken", f.doctor.ID, newDay, newTime, &id).Return(false, nil).Once()
	f.appointments.On("Update", mock.Anything).Return(nil).Once()
	f.audit.On("LogUpdate", entity.AuditActionAppointmentUpdate, "appointment", id.String()).Return(nil).Once()
	f.sql.ExpectCommit()

	resp, err := f.uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{
		AppointmentDate: &newDate,
		AppointmentTime: &newTime,
	})
	require.NoError(t, err)
	assert.Equal(t, newDate, resp.AppointmentDate)
	assert.Equal(t, time.Date(2030, 1, 12, 14, 30, 0, 0, time.UTC), resp.ExpireAt)
	assert.Equal(t, 1, f.locker.released)
	assert.NoError(t, f.sql.ExpectationsWereMet())
}

func TestAppointmentUsecase_UpdateAppointmentStatus(t *testing.T) {
	f := newAppointmentFixture(t)
	id := uuid.New()
	existing := &entity.Appointment{ID: id, DoctorID: f.doctor.ID, Status: entity.AppointmentStatusPending}
	require.NoError(t, existing.Schedule(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), "09:30", time.UTC, bookingNow))

	f.appointments.On("FindByID", id).Return(existing, nil)

	completed := "completed"
	_, err := f.uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{Status: &completed})
	assert.ErrorIs(t, err, entity.ErrInvalidStatusTransition)

	confirmed := "confirmed"
	paid := &dto.PaymentRequest{Amount: decimal.NewFromInt(40), Status: "paid"}
	f.sql.ExpectBegin()
	f.appointments.On("Update", mock.Anything).Return(nil).Once()
	f.audit.On("LogUpdate", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.sql.ExpectCommit()

	resp, err := f.uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{Status: &confirmed, Payment: paid})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.Payment.Status)
	require.NotNil(t, resp.Payment.PaidAt)
	assert.Equal(t, bookingNow, *resp.Payment.PaidAt)
	f.locker.AssertNotCalled(t, "Acquire", mock.Anything, mock.Anything, mock.Anything)
	f.appointments.AssertNotCalled(t, "SlotTaken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAppointmentUsecase_UpdateClosedAppointmentCannotMove(t *testing.T) {
	f := newAppointmentFixture(t)
	id := uuid.New()
	existing := &entity.Appointment{ID: id, Status: entity.AppointmentStatusCancelled}
	require.NoError(t, existing.Schedule(time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), "09:30", time.UTC, bookingNow))
	f.appointments.On("FindByID", id).Return(existing, nil).Once()

	newTime := "11:00"
	_, err := f.uc.UpdateAppointment(context.Background(), id, &dto.UpdateAppointmentRequest{AppointmentTime: &newTime})
	assert.ErrorIs(t, err, ErrAppointmentClosed)
}

func TestAppointmentUsecase_ListAppointments(t *testing.T) {
	f := newAppointmentFixture(t)
	doctorID := f.doctor.ID

	_, err := f.uc.ListAppointments(context.Background(), &dto.ListAppointmentsRequest{DoctorID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = f.uc.ListAppointments(context.Background(), &dto.ListAppointmentsRequest{Date: "10-01-2030"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	from := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	f.appointments.On("FindAll", mock.MatchedBy(func(fl *entity.AppointmentFilter) bool {
		return *fl.DoctorID == doctorID && fl.DateFrom.Equal(from) && fl.DateTo.Equal(from.AddDate(0, 0, 1)) &&
			fl.Page == 2 && fl.Limit == 10 && !fl.Ascending
	})).Return([]entity.Appointment{{ID: uuid.New(), AppointmentDate: from, AppointmentTime: "09:00"}}, int64(11), nil).Once()

	resp, err := f.uc.ListAppointments(context.Background(), &dto.ListAppointmentsRequest{
		DoctorID: doctorID.String(), Date: "2030-01-10", Page: 2, Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), resp.Total)
	assert.Len(t, resp.Appointments, 1)
	assert.Equal(t, 2, resp.Page)
}

func TestAppointmentUsecase_TodayAndWeekWindows(t *testing.T) {
	f := newAppointmentFixture(t)
	// Thursday 2030-01-03
	f.uc.now = fixedNow(time.Date(2030, 1, 3, 15, 0, 0, 0, time.UTC))

	today := time.Date(2030, 1, 3, 0, 0, 0, 0, time.UTC)
	f.appointments.On("FindAll", mock.MatchedBy(func(fl *entity.AppointmentFilter) bool {
		return fl.Ascending && fl.DateFrom.Equal(today) && fl.DateTo.Equal(today.AddDate(0, 0, 1))
	})).Return([]entity.Appointment{}, int64(0), nil).Once()

	monday := time.Date(2029, 12, 31, 0, 0, 0, 0, time.UTC)
	f.appointments.On("FindAll", mock.MatchedBy(func(fl *entity.AppointmentFilter) bool {
		return fl.Ascending && fl.DateFrom.Equal(monday) && fl.DateTo.Equal(monday.AddDate(0, 0, 7))
	})).Return([]entity.Appointment{}, int64(0), nil).Once()

	_, err := f.uc.TodaysAppointments(context.Background())
	require.NoError(t, err)
	_, err = f.uc.WeeklyAppointments(context.Background())
	require.NoError(t, err)
	f.appointments.AssertExpectations(t)
}

func TestAppointmentUsecase_DoctorStats(t *testing.T) {
	f := newAppointmentFixture(t)
	vid := uuid.New()
	f.doctor.VerificationID = &vid

	f.doctors.On("FindByVerificationID", vid).Return(f.doctor, nil).Once()
	f.appointments.On("CountByStatus", mock.MatchedBy(func(fl *entity.AppointmentFilter) bool {
		return fl.DoctorID != nil && *fl.DoctorID == f.doctor.ID
	})).Return(entity.StatusCounts{
		entity.AppointmentStatusPending:   2,
		entity.AppointmentStatusConfirmed: 1,
		entity.AppointmentStatusCompleted: 4,
		entity.AppointmentStatusCancelled: 0,
	}, nil).Once()
	f.appointments.On("CountDistinctPatients", []uuid.UUID{f.doctor.ID}).Return(int64(3), nil).Once()

	stats, err := f.uc.DoctorStats(context.Background(), vid)
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalAppointments)
	assert.Equal(t, int64(3), stats.TotalPatients)
	assert.Equal(t, int64(4), stats.ByStatus.Completed)
}

func TestAppointmentUsecase_DoctorLookupMissing(t *testing.T) {
	f := newAppointmentFixture(t)
	vid := uuid.New()
	f.doctors.On("FindByVerificationID", vid).Return(nil, nil)

	_, err := f.uc.DoctorAppointments(context.Background(), vid, &dto.DoctorAppointmentsRequest{})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
	_, err = f.uc.DoctorPatients(context.Background(), vid)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAppointmentUsecase_DoctorViewsScopedToSessionHospital(t *testing.T) {
	f := newAppointmentFixture(t)
	vid := uuid.New()
	f.doctor.VerificationID = &vid
	f.doctor.Verification = &entity.DoctorVerification{ID: vid, HospitalName: "Test Clinic"}
	f.doctors.On("FindByVerificationID", vid).Return(f.doctor, nil)

	ctx := middleware.WithSession(context.Background(), uuid.New(), "a@b.com", "Other Clinic", "tok")

	_, err := f.uc.DoctorAppointments(ctx, vid, &dto.DoctorAppointmentsRequest{})
	assert.ErrorIs(t, err, ErrDoctorNotInHospital)
	_, err = f.uc.DoctorStats(ctx, vid)
	assert.ErrorIs(t, err, ErrDoctorNotInHospital)
	_, err = f.uc.DoctorPatients(ctx, vid)
	assert.ErrorIs(t, err, ErrDoctorNotInHospital)
	f.appointments.AssertNotCalled(t, "PatientSummaries", mock.Anything)

	f.appointments.On("PatientSummaries", f.doctor.ID).Return([]entity.PatientAppointmentSummary{}, nil).Once()
	own := middleware.WithSession(context.Background(), uuid.New(), "a@b.com", "test clinic", "tok")
	_, err = f.uc.DoctorPatients(own, vid)
	assert.NoError(t, err)
}

func TestAppointmentUsecase_DoctorPatients(t *testing.T) {
	f := newAppointmentFixture(t)
	vid := uuid.New()
	f.doctors.On("FindByVerificationID", vid).Return(f.doctor, nil).Once()
	f.appointments.On("PatientSummaries", f.doctor.ID).Return([]entity.PatientAppointmentSummary{
		{PatientID: f.patient.ID, Name: "Asha", AppointmentCount: 2, LastAppointment: time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()

	resp, err := f.uc.DoctorPatients(context.Background(), vid)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, int64(2), resp[0].AppointmentCount)
	assert.Equal(t, "Asha", resp[0].Patient.Name)
}
