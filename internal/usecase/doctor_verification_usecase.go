package usecase

import (
	"context"
	"errors"

	"github.com/RayuduBharani/meetocure-hs/internal/converter"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"
	"github.com/RayuduBharani/meetocure-hs/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorVerificationNotFound = errors.New("doctor verification not found")
	ErrDoctorAlreadyVerified      = errors.New("doctor is already verified")
	ErrDoctorAlreadyRejected      = errors.New("doctor is already rejected")
	ErrDoctorRejected             = errors.New("doctor has been rejected")
	ErrDoctorSyncFailed           = errors.New("doctor sync failed")
	ErrDoctorNotInHospital        = errors.New("doctor belongs to a different hospital")
)

const doctorNotLinkedWarning = "no doctor account is linked to this verification; only the verification was updated"

type DoctorVerificationUsecase interface {
	ListDoctors(ctx context.Context, req *dto.ListDoctorsRequest) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorDetailResponse, error)
	VerifyDoctor(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorStatusChangeResponse, error)
	RejectDoctor(ctx context.Context, verificationID uuid.UUID, req *dto.RejectDoctorRequest) (*dto.DoctorStatusChangeResponse, error)
}

type doctorVerificationUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	verificationRepo repository.DoctorVerificationRepository
	doctorRepo       repository.DoctorRepository
	hospitalRepo     repository.HospitalRepository
	auditService     service.AuditService
	metrics          *metrics.Metrics
}

func NewDoctorVerificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	verificationRepo repository.DoctorVerificationRepository,
	doctorRepo repository.DoctorRepository,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
	m *metrics.Metrics,
) DoctorVerificationUsecase {
	return &doctorVerificationUsecase{
		db:               db,
		log:              log,
		verificationRepo: verificationRepo,
		doctorRepo:       doctorRepo,
		hospitalRepo:     hospitalRepo,
		auditService:     auditService,
		metrics:          m,
	}
}

func (u *doctorVerificationUsecase) ListDoctors(ctx context.Context, req *dto.ListDoctorsRequest) (*dto.DoctorListResponse, error) {
	db := u.db.WithContext(ctx)

	verifications, err := u.verificationRepo.FindByHospital(db, req.HospitalName, req.Verified)
	if err != nil {
		u.log.Warnf("Failed to find doctor verifications: %+v", err)
		return nil, err
	}

	ids := make([]uuid.UUID, len(verifications))
	for i := range verifications {
		ids[i] = verifications[i].ID
	}

	doctors, err := u.doctorRepo.FindByVerificationIDs(db, ids)
	if err != nil {
		u.log.Warnf("Failed to find doctors by verification IDs: %+v", err)
		return nil, err
	}

	byVerification := make(map[uuid.UUID]*entity.Doctor, len(doctors))
	for i := range doctors {
		if doctors[i].VerificationID != nil {
			byVerification[*doctors[i].VerificationID] = &doctors[i]
		}
	}

	// A listing only shows pairs whose doctor account agrees with the requested side.
	items := make([]entity.DoctorWithVerification, 0, len(verifications))
	for _, v := range verifications {
		doctor, ok := byVerification[v.ID]
		if !ok {
			continue
		}
		if doctor.IsVerified() != req.Verified {
			continue
		}
		items = append(items, entity.DoctorWithVerification{Verification: v, Doctor: doctor})
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorDetailsToResponses(items),
		Total:   len(items),
	}, nil
}

func (u *doctorVerificationUsecase) GetDoctor(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorDetailResponse, error) {
	db := u.db.WithContext(ctx)

	verification, err := u.verificationRepo.FindByID(db, verificationID)
	if err != nil {
		u.log.Warnf("Failed to find doctor verification: %+v", err)
		return nil, err
	}
	if verification == nil {
		return nil, ErrDoctorVerificationNotFound
	}
	if !ownedBySession(ctx, verification) {
		return nil, ErrDoctorNotInHospital
	}

	doctor, err := u.doctorRepo.FindByVerificationID(db, verificationID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by verification ID: %+v", err)
		return nil, err
	}

	resp := converter.DoctorDetailToResponse(&entity.DoctorWithVerification{
		Verification: *verification,
		Doctor:       doctor,
	})
	return &resp, nil
}

func (u *doctorVerificationUsecase) VerifyDoctor(ctx context.Context, verificationID uuid.UUID) (*dto.DoctorStatusChangeResponse, error) {
	return u.changeStatus(ctx, verificationID, entity.RegistrationStatusVerified, "")
}

func (u *doctorVerificationUsecase) RejectDoctor(ctx context.Context, verificationID uuid.UUID, req *dto.RejectDoctorRequest) (*dto.DoctorStatusChangeResponse, error) {
	var reason string
	if req != nil {
		reason = req.Reason
	}
	return u.changeStatus(ctx, verificationID, entity.RegistrationStatusRejected, reason)
}

// changeStatus moves the verification and its doctor account to target in one
// transaction, keeping the hospital's doctor list in step.
func (u *doctorVerificationUsecase) changeStatus(ctx context.Context, verificationID uuid.UUID, target entity.RegistrationStatus, reason string) (*dto.DoctorStatusChangeResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	verification, err := u.verificationRepo.FindByIDForUpdate(tx, verificationID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor verification: %+v", err)
		return nil, err
	}
	if verification == nil {
		return nil, ErrDoctorVerificationNotFound
	}
	if !ownedBySession(ctx, verification) {
		return nil, ErrDoctorNotInHospital
	}

	before := converter.DoctorVerificationToResponse(verification)

	action := entity.AuditActionDoctorVerify
	if target == entity.RegistrationStatusVerified {
		err = verification.Verify()
	} else {
		action = entity.AuditActionDoctorReject
		err = verification.Reject(reason)
	}
	if err != nil {
		return nil, mapRegistrationError(err)
	}

	if err := u.verificationRepo.Update(tx, verification); err != nil {
		u.log.Warnf("Failed to update doctor verification: %+v", err)
		return nil, err
	}

	rows, err := u.doctorRepo.UpdateRegistrationStatus(tx, verificationID, target)
	if err != nil {
		u.log.Warnf("Failed to sync doctor registration status: %+v", err)
		return nil, ErrDoctorSyncFailed
	}
	doctorUpdated := rows > 0

	if target == entity.RegistrationStatusVerified {
		_, err = u.hospitalRepo.AddDoctor(tx, verification.HospitalName, verificationID)
	} else {
		_, err = u.hospitalRepo.RemoveDoctor(tx, verification.HospitalName, verificationID)
	}
	if err != nil {
		u.log.Warnf("Failed to update hospital doctor list: %+v", err)
		return nil, err
	}

	after := converter.DoctorVerificationToResponse(verification)
	if err := u.auditService.LogUpdate(ctx, tx, middleware.HospitalActor(ctx), action, "doctor_verification", verificationID.String(), before, after); err != nil {
		return nil, err
	}

	var doctor *entity.Doctor
	if doctorUpdated {
		doctor, err = u.doctorRepo.FindByVerificationID(tx, verificationID)
		if err != nil {
			u.log.Warnf("Failed to reload doctor: %+v", err)
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveVerification(string(target))

	resp := &dto.DoctorStatusChangeResponse{
		DoctorVerification: after,
		Doctor:             converter.DoctorToResponse(doctor),
		DoctorUpdated:      doctorUpdated,
	}
	if !doctorUpdated {
		u.log.Warnf("No doctor linked to verification %s", verificationID)
		resp.Warning = doctorNotLinkedWarning
	}
	return resp, nil
}

func mapRegistrationError(err error) error {
	switch {
	case errors.Is(err, entity.ErrAlreadyVerified):
		return ErrDoctorAlreadyVerified
	case errors.Is(err, entity.ErrAlreadyRejected):
		return ErrDoctorAlreadyRejected
	case errors.Is(err, entity.ErrRejectionIsFinal):
		return ErrDoctorRejected
	}
	return err
}

// ownedBySession reports whether the verification was filed with the session's
// hospital. Calls without a session are not scoped.
func ownedBySession(ctx context.Context, v *entity.DoctorVerification) bool {
	name, ok := middleware.GetHospitalNameFromContext(ctx)
	if !ok {
		return true
	}
	return entity.SameHospital(name, v.HospitalName)
}
