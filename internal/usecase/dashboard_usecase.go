package usecase

import (
	"context"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/converter"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type DashboardUsecase interface {
	TodaysAppointments(ctx context.Context, hospitalName, date string) (*dto.DashboardAppointmentsResponse, error)
	AllAppointments(ctx context.Context, hospitalName string) (*dto.DashboardAppointmentsResponse, error)
	Patients(ctx context.Context, hospitalName string) (*dto.DashboardPatientsResponse, error)
	AppointmentCounts(ctx context.Context, hospitalName string) (*dto.DashboardCountsResponse, error)
	Activity(ctx context.Context, hospitalID uuid.UUID, limit int) (*dto.ActivityResponse, error)
}

type dashboardUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	auditRepo       repository.AuditLogRepository
	loc             *time.Location
	now             func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	auditRepo repository.AuditLogRepository,
	loc *time.Location,
) DashboardUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		auditRepo:       auditRepo,
		loc:             loc,
		now:             time.Now,
	}
}

func (u *dashboardUsecase) TodaysAppointments(ctx context.Context, hospitalName, date string) (*dto.DashboardAppointmentsResponse, error) {
	day := calendarDay(u.now(), u.loc)
	if date != "" {
		d, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		day = d
	}
	next := day.AddDate(0, 0, 1)

	return u.appointments(ctx, hospitalName, &entity.AppointmentFilter{
		DateFrom:  &day,
		DateTo:    &next,
		Ascending: true,
	})
}

func (u *dashboardUsecase) AllAppointments(ctx context.Context, hospitalName string) (*dto.DashboardAppointmentsResponse, error) {
	return u.appointments(ctx, hospitalName, &entity.AppointmentFilter{})
}

func (u *dashboardUsecase) Patients(ctx context.Context, hospitalName string) (*dto.DashboardPatientsResponse, error) {
	db := u.db.WithContext(ctx)

	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}

	patientIDs, err := u.appointmentRepo.FindPatientIDsByDoctors(db, doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to find patient IDs: %+v", err)
		return nil, err
	}

	patients, err := u.patientRepo.FindByIDs(db, patientIDs)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.DashboardPatientsResponse{
		Patients: converter.PatientsToResponses(patients, u.now()),
		Total:    len(patients),
	}, nil
}

func (u *dashboardUsecase) AppointmentCounts(ctx context.Context, hospitalName string) (*dto.DashboardCountsResponse, error) {
	db := u.db.WithContext(ctx)

	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}

	counts, err := u.appointmentRepo.CountByStatus(db, &entity.AppointmentFilter{DoctorIDs: doctorIDs})
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, err
	}

	return &dto.DashboardCountsResponse{
		TotalAppointments:     counts.Total(),
		ConfirmedAppointments: counts[entity.AppointmentStatusConfirmed],
		PendingAppointments:   counts[entity.AppointmentStatusPending],
		CancelledAppointments: counts[entity.AppointmentStatusCancelled],
		CompletedAppointments: counts[entity.AppointmentStatusCompleted],
	}, nil
}

func (u *dashboardUsecase) Activity(ctx context.Context, hospitalID uuid.UUID, limit int) (*dto.ActivityResponse, error) {
	if limit < 1 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	logs, err := u.auditRepo.FindRecentByHospital(u.db.WithContext(ctx), hospitalID, limit)
	if err != nil {
		u.log.Warnf("Failed to find recent activity: %+v", err)
		return nil, err
	}

	return &dto.ActivityResponse{Activities: converter.AuditLogsToResponses(logs)}, nil
}

func (u *dashboardUsecase) appointments(ctx context.Context, hospitalName string, filter *entity.AppointmentFilter) (*dto.DashboardAppointmentsResponse, error) {
	db := u.db.WithContext(ctx)

	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}
	filter.DoctorIDs = doctorIDs

	appointments, _, err := u.appointmentRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.DashboardAppointmentsResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

