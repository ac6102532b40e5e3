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
	"github.com/RayuduBharani/meetocure-hs/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPatientEmailExists     = errors.New("a patient with this email already exists")
	ErrPatientPhoneExists     = errors.New("a patient with this phone number already exists")
	ErrPatientHasAppointments = errors.New("cannot delete patient with existing appointments")
)

type PatientUsecase interface {
	HospitalPatients(ctx context.Context, hospitalName string) ([]dto.PatientResponse, error)
	ListPatients(ctx context.Context, req *dto.ListPatientsRequest) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
	PatientStats(ctx context.Context, id uuid.UUID) (*dto.PatientStatsResponse, error)
}

type patientUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:              db,
		log:             log,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

// HospitalPatients lists patients who have booked any of the hospital's verified doctors.
func (u *patientUsecase) HospitalPatients(ctx context.Context, hospitalName string) ([]dto.PatientResponse, error) {
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

	return converter.PatientsToResponses(patients, u.now()), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, req *dto.ListPatientsRequest) (*dto.PatientListResponse, error) {
	page, limit := normalizePage(req.Page, req.Limit)

	patients, total, err := u.patientRepo.FindAll(u.db.WithContext(ctx), &entity.PatientFilter{
		Name:   strings.TrimSpace(req.Name),
		Email:  strings.TrimSpace(req.Email),
		Phone:  strings.TrimSpace(req.Phone),
		Status: entity.PatientStatus(req.Status),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients, u.now()),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}

	resp := converter.PatientToResponse(patient, u.now())
	return &resp, nil
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Gender:        req.Gender,
		Status:        entity.PatientStatusActive,
		Notifications: datatypes.JSONSlice[entity.Notification]{},
	}
	if req.Status != "" {
		patient.Status = entity.PatientStatus(req.Status)
	}
	if err := setDateOfBirth(patient, req.DateOfBirth); err != nil {
		return nil, err
	}
	applyPatientDetails(patient, req.Address, req.EmergencyContact, req.MedicalInfo)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if mapped := mapPatientConflict(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	resp := converter.PatientToResponse(patient, u.now())
	if err := u.auditService.LogCreate(ctx, tx, middleware.HospitalActor(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), resp); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &resp, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findPatient(tx, id)
	if err != nil {
		return nil, err
	}
	now := u.now()
	before := converter.PatientToResponse(patient, now)

	if req.Name != nil {
		patient.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		patient.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		patient.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Status != nil {
		patient.Status = entity.PatientStatus(*req.Status)
	}
	if req.DateOfBirth != nil {
		if err := setDateOfBirth(patient, *req.DateOfBirth); err != nil {
			return nil, err
		}
	}
	applyPatientDetails(patient, req.Address, req.EmergencyContact, req.MedicalInfo)

	if err := u.patientRepo.Update(tx, patient); err != nil {
		if mapped := mapPatientConflict(err); mapped != nil {
			return nil, mapped
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	after := converter.PatientToResponse(patient, now)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.HospitalActor(ctx), entity.AuditActionPatientUpdate, "patient", patient.ID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &after, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findPatient(tx, id)
	if err != nil {
		return err
	}

	count, err := u.appointmentRepo.CountByPatient(tx, id)
	if err != nil {
		u.log.Warnf("Failed to count patient appointments: %+v", err)
		return err
	}
	if count > 0 {
		return ErrPatientHasAppointments
	}

	if _, err := u.patientRepo.Delete(tx, id); err != nil {
		if isForeignKeyError(err, "patient") {
			return ErrPatientHasAppointments
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	before := converter.PatientToResponse(patient, u.now())
	if err := u.auditService.LogDelete(ctx, tx, middleware.HospitalActor(ctx), entity.AuditActionPatientDelete, "patient", id.String(), before); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *patientUsecase) PatientStats(ctx context.Context, id uuid.UUID) (*dto.PatientStatsResponse, error) {
	db := u.db.WithContext(ctx)

	if _, err := u.findPatient(db, id); err != nil {
		return nil, err
	}

	counts, err := u.appointmentRepo.CountByStatus(db, &entity.AppointmentFilter{PatientID: &id})
	if err != nil {
		u.log.Warnf("Failed to count patient appointments: %+v", err)
		return nil, err
	}

	return &dto.PatientStatsResponse{
		TotalAppointments: counts.Total(),
		ByStatus:          converter.StatusCountsToResponse(counts),
	}, nil
}

func (u *patientUsecase) findPatient(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func setDateOfBirth(p *entity.Patient, raw string) error {
	if raw == "" {
		p.DateOfBirth = nil
		return nil
	}
	dob, err := parseDate(raw)
	if err != nil {
		return err
	}
	p.DateOfBirth = &dob
	return nil
}

func applyPatientDetails(p *entity.Patient, address *dto.AddressRequest, contact *dto.EmergencyContactRequest, medical *dto.MedicalInfoRequest) {
	if address != nil {
		p.Address = datatypes.NewJSONType(entity.Address{
			Street:  address.Street,
			City:    address.City,
			State:   address.State,
			ZipCode: address.ZipCode,
			Country: address.Country,
		})
	}
	if contact != nil {
		p.EmergencyContact = datatypes.NewJSONType(entity.EmergencyContact{
			Name:         contact.Name,
			Relationship: contact.Relationship,
			Phone:        contact.Phone,
		})
	}
	if medical != nil {
		allergies := medical.Allergies
		if allergies == nil {
			allergies = []string{}
		}
		p.MedicalInfo = datatypes.NewJSONType(entity.MedicalInfo{
			BloodType:      medical.BloodType,
			Allergies:      allergies,
			MedicalHistory: medical.MedicalHistory,
		})
	}
}

func mapPatientConflict(err error) error {
	switch {
	case isDuplicateKeyError(err, "email"):
		return ErrPatientEmailExists
	case isDuplicateKeyError(err, "phone"):
		return ErrPatientPhoneExists
	}
	return nil
}
