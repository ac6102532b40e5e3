package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/converter"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"
	"github.com/RayuduBharani/meetocure-hs/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrAppointmentSlotTaken = errors.New("doctor already has an appointment at this date and time")
	ErrAppointmentClosed    = errors.New("completed or cancelled appointments cannot be rescheduled")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrInvalidPaymentAmount = errors.New("payment amount must not be negative")
)

const appointmentSlotConstraint = "uniq_appointment_slot"

type AppointmentUsecase interface {
	ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	TodaysAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	WeeklyAppointments(ctx context.Context) ([]dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	DoctorAppointments(ctx context.Context, verificationID uuid.UUID, req *dto.DoctorAppointmentsRequest) (*dto.AppointmentListResponse, error)
	DoctorStats(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorStatsResponse, error)
	DoctorPatients(ctx context.Context, verificationID uuid.UUID) ([]dto.DoctorPatientResponse, error)
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	auditService    service.AuditService
	slotLocker      service.SlotLocker
	metrics         *metrics.Metrics
	loc             *time.Location
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	slotLocker service.SlotLocker,
	m *metrics.Metrics,
	loc *time.Location,
) AppointmentUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		auditService:    auditService,
		slotLocker:      slotLocker,
		metrics:         m,
		loc:             loc,
		now:             time.Now,
	}
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	doctorID, err := parseOptionalID(req.DoctorID)
	if err != nil {
		return nil, err
	}
	patientID, err := parseOptionalID(req.PatientID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	filter := &entity.AppointmentFilter{
		DoctorID:  doctorID,
		PatientID: patientID,
		Status:    entity.AppointmentStatus(req.Status),
		Page:      page,
		Limit:     limit,
	}

	if req.Date != "" {
		day, err := parseDate(req.Date)
		if err != nil {
			return nil, err
		}
		next := day.AddDate(0, 0, 1)
		filter.DateFrom = &day
		filter.DateTo = &next
	}

	return u.findPage(ctx, filter)
}

func (u *appointmentUsecase) TodaysAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	day := calendarDay(u.now(), u.loc)
	return u.findRange(ctx, day, day.AddDate(0, 0, 1))
}

func (u *appointmentUsecase) WeeklyAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	monday, nextMonday := weekBounds(calendarDay(u.now(), u.loc))
	return u.findRange(ctx, monday, nextMonday)
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	resp := converter.AppointmentToResponse(appointment)
	return &resp, nil
}

func (u *appointmentUsecase) DoctorAppointments(ctx context.Context, verificationID uuid.UUID, req *dto.DoctorAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	doctor, err := u.doctorByVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	page, limit := normalizePage(req.Page, req.Limit)
	return u.findPage(ctx, &entity.AppointmentFilter{
		DoctorID: &doctor.ID,
		Status:   entity.AppointmentStatus(req.Status),
		Page:     page,
		Limit:    limit,
	})
}

func (u *appointmentUsecase) DoctorStats(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorStatsResponse, error) {
	doctor, err := u.doctorByVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	var (
		counts   entity.StatusCounts
		patients int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = u.appointmentRepo.CountByStatus(u.db.WithContext(gctx), &entity.AppointmentFilter{DoctorID: &doctor.ID})
		return err
	})
	g.Go(func() error {
		var err error
		patients, err = u.appointmentRepo.CountDistinctPatients(u.db.WithContext(gctx), []uuid.UUID{doctor.ID})
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to compute doctor stats: %+v", err)
		return nil, err
	}

	return &dto.DoctorStatsResponse{
		TotalAppointments: counts.Total(),
		TotalPatients:     patients,
		ByStatus:          converter.StatusCountsToResponse(counts),
	}, nil
}

func (u *appointmentUsecase) DoctorPatients(ctx context.Context, verificationID uuid.UUID) ([]dto.DoctorPatientResponse, error) {
	doctor, err := u.doctorByVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	summaries, err := u.appointmentRepo.PatientSummaries(u.db.WithContext(ctx), doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to summarize doctor patients: %+v", err)
		return nil, err
	}

	responses := make([]dto.DoctorPatientResponse, len(summaries))
	for i := range summaries {
		responses[i] = converter.PatientSummaryToResponse(&summaries[i])
	}
	return responses, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)
	now := u.now()

	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.patientRepo.FindByID(db, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentType: strings.TrimSpace(req.AppointmentType),
		Status:          entity.AppointmentStatusPending,
		Reason:          req.Reason,
		Payment: entity.Payment{
			Currency: entity.DefaultCurrency,
			Status:   entity.PaymentStatusPending,
		},
	}
	if appointment.AppointmentType == "" {
		appointment.AppointmentType = entity.DefaultAppointmentType
	}
	if err := appointment.Schedule(date, req.AppointmentTime, u.loc, now); err != nil {
		return nil, err
	}

	if req.PatientInfo != nil {
		appointment.PatientInfo = datatypes.NewJSONType(patientInfoFromRequest(req.PatientInfo))
	} else {
		appointment.PatientInfo = datatypes.NewJSONType(patientInfoFromPatient(patient, now))
	}
	appointment.MedicalRecords = appendMedicalRecords(nil, req.MedicalRecords, now)
	if req.Payment != nil {
		if err := applyPayment(&appointment.Payment, req.Payment, now); err != nil {
			return nil, err
		}
	}

	release, err := u.acquireSlot(ctx, appointment)
	if err != nil {
		return nil, err
	}
	defer release()

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.ensureSlotFree(tx, appointment, nil); err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, appointmentSlotConstraint) {
			u.metrics.ObserveBookingConflict("constraint")
			return nil, ErrAppointmentSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	resp := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogCreate(ctx, tx, middleware.HospitalActor(ctx), entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.Patient = patient
	appointment.Doctor = doctor
	resp = converter.AppointmentToResponse(appointment)
	return &resp, nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)
	now := u.now()

	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	before := converter.AppointmentToResponse(appointment)

	rescheduled, err := u.reschedule(appointment, req, now)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		next := entity.AppointmentStatus(*req.Status)
		if next != appointment.Status {
			if err := appointment.TransitionTo(next); err != nil {
				return nil, err
			}
		}
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.AppointmentType != nil && strings.TrimSpace(*req.AppointmentType) != "" {
		appointment.AppointmentType = strings.TrimSpace(*req.AppointmentType)
	}
	if len(req.MedicalRecords) > 0 {
		appointment.MedicalRecords = appendMedicalRecords(appointment.MedicalRecords, req.MedicalRecords, now)
	}
	if req.Payment != nil {
		if err := applyPayment(&appointment.Payment, req.Payment, now); err != nil {
			return nil, err
		}
	}

	if rescheduled {
		release, err := u.acquireSlot(ctx, appointment)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	tx := db.Begin()
	defer tx.Rollback()

	if rescheduled {
		if err := u.ensureSlotFree(tx, appointment, &appointment.ID); err != nil {
			return nil, err
		}
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		if isDuplicateKeyError(err, appointmentSlotConstraint) {
			u.metrics.ObserveBookingConflict("constraint")
			return nil, ErrAppointmentSlotTaken
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	after := converter.AppointmentToResponse(appointment)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.HospitalActor(ctx), entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &after, nil
}

// reschedule applies a date or time change, reporting whether the slot moved.
func (u *appointmentUsecase) reschedule(a *entity.Appointment, req *dto.UpdateAppointmentRequest, now time.Time) (bool, error) {
	if req.AppointmentDate == nil && req.AppointmentTime == nil {
		return false, nil
	}

	date := a.AppointmentDate
	if req.AppointmentDate != nil {
		d, err := parseDate(*req.AppointmentDate)
		if err != nil {
			return false, err
		}
		date = d
	}
	clock := a.AppointmentTime
	if req.AppointmentTime != nil {
		clock = *req.AppointmentTime
	}

	if date.Equal(a.AppointmentDate) && clock == a.AppointmentTime {
		return false, nil
	}
	if a.Status == entity.AppointmentStatusCompleted || a.IsCancelled() {
		return false, ErrAppointmentClosed
	}

	if err := a.Schedule(date, clock, u.loc, now); err != nil {
		return false, err
	}
	return true, nil
}

func (u *appointmentUsecase) acquireSlot(ctx context.Context, a *entity.Appointment) (func(), error) {
	release, err := u.slotLocker.Acquire(ctx, a.DoctorID, a.AppointmentDate.Format(entity.DateLayout), a.AppointmentTime)
	if err != nil {
		if errors.Is(err, service.ErrSlotBusy) {
			u.metrics.ObserveBookingConflict("lock")
			return nil, ErrAppointmentSlotTaken
		}
		return nil, err
	}
	return release, nil
}

func (u *appointmentUsecase) ensureSlotFree(tx *gorm.DB, a *entity.Appointment, excludeID *uuid.UUID) error {
	taken, err := u.appointmentRepo.SlotTaken(tx, a.DoctorID, a.AppointmentDate, a.AppointmentTime, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check appointment slot: %+v", err)
		return err
	}
	if taken {
		u.metrics.ObserveBookingConflict("precheck")
		return ErrAppointmentSlotTaken
	}
	return nil
}

func (u *appointmentUsecase) doctorByVerification(ctx context.Context, verificationID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByVerificationID(u.db.WithContext(ctx), verificationID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by verification ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if doctor.Verification != nil && !ownedBySession(ctx, doctor.Verification) {
		return nil, ErrDoctorNotInHospital
	}
	return doctor, nil
}

func (u *appointmentUsecase) findPage(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

func (u *appointmentUsecase) findRange(ctx context.Context, from, to time.Time) ([]dto.AppointmentResponse, error) {
	appointments, _, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), &entity.AppointmentFilter{
		DateFrom:  &from,
		DateTo:    &to,
		Ascending: true,
	})
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func patientInfoFromRequest(req *dto.PatientInfoRequest) entity.PatientInfo {
	return entity.PatientInfo{
		Name:                  strings.TrimSpace(req.Name),
		Gender:                req.Gender,
		Age:                   req.Age,
		Phone:                 req.Phone,
		BloodGroup:            req.BloodGroup,
		Allergies:             req.Allergies,
		MedicalHistorySummary: req.MedicalHistorySummary,
		Note:                  req.Note,
	}
}

// patientInfoFromPatient snapshots the patient profile for a booking made without explicit patient info.
func patientInfoFromPatient(p *entity.Patient, now time.Time) entity.PatientInfo {
	medical := p.MedicalInfo.Data()
	info := entity.PatientInfo{
		Name:                  p.Name,
		Gender:                p.Gender,
		Phone:                 p.Phone,
		BloodGroup:            medical.BloodType,
		Allergies:             medical.Allergies,
		MedicalHistorySummary: medical.MedicalHistory,
	}
	if age := p.AgeAt(now); age >= 0 {
		info.Age = &age
	}
	return info
}

func appendMedicalRecords(records []entity.MedicalRecord, reqs []dto.MedicalRecordRequest, now time.Time) []entity.MedicalRecord {
	if records == nil {
		records = []entity.MedicalRecord{}
	}
	for _, r := range reqs {
		records = append(records, entity.MedicalRecord{
			RecordType:  r.RecordType,
			FileURL:     r.FileURL,
			Description: r.Description,
			UploadDate:  now,
		})
	}
	return records
}

func applyPayment(p *entity.Payment, req *dto.PaymentRequest, now time.Time) error {
	if req.Amount.LessThan(decimal.Zero) {
		return ErrInvalidPaymentAmount
	}
	p.Amount = req.Amount
	if req.Currency != "" {
		p.Currency = strings.ToUpper(req.Currency)
	}
	if req.Method != "" {
		p.Method = req.Method
	}
	if req.TransactionID != "" {
		p.TransactionID = req.TransactionID
	}
	if req.Status != "" {
		p.Status = entity.PaymentStatus(req.Status)
	}
	if p.Status == entity.PaymentStatusPaid && p.PaidAt == nil {
		paidAt := now
		p.PaidAt = &paidAt
	}
	return nil
}
