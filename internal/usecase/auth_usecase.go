package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/internal/converter"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/storage"
	"github.com/RayuduBharani/meetocure-hs/internal/service"
	"github.com/RayuduBharani/meetocure-hs/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrHospitalNotFound   = errors.New("hospital not found")
	ErrHospitalMismatch   = errors.New("email is registered under a different hospital")
)

const hospitalImageFolder = "hospitals"

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, hospitalID uuid.UUID, tokenID string) error
	Me(ctx context.Context, hospitalID uuid.UUID) (*dto.HospitalResponse, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	auditService service.AuditService
	fileStorage  storage.FileStorage
	jwtService   *jwt.JWTService
	redisClient  *redis.Client
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
	fileStorage storage.FileStorage,
	jwtService *jwt.JWTService,
	redisClient *redis.Client,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		auditService: auditService,
		fileStorage:  fileStorage,
		jwtService:   jwtService,
		redisClient:  redisClient,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	existing, err := u.hospitalRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find hospital by email: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	var imageURL string
	if req.Image != nil {
		imageURL, err = u.fileStorage.Save(ctx, hospitalImageFolder, req.ImageName, req.ImageContentType, req.Image)
		if err != nil {
			u.log.Warnf("Failed to store hospital image: %+v", err)
			return nil, err
		}
	}

	hospital := &entity.Hospital{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Password:     string(hashedPassword),
		HospitalName: strings.TrimSpace(req.HospitalName),
		Address:      req.Address,
		Contact:      req.Contact,
		ImageURL:     imageURL,
		DoctorIDs:    []string{},
	}

	if err := u.createHospital(ctx, hospital); err != nil {
		u.discardImage(imageURL)
		return nil, err
	}

	return u.issueToken(ctx, hospital)
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	// Read-only, no transaction needed
	hospital, err := u.hospitalRepo.FindByEmail(u.db.WithContext(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to find hospital by email: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	if !entity.SameHospital(hospital.HospitalName, req.HospitalName) {
		return nil, ErrHospitalMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hospital.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueToken(ctx, hospital)
}

func (u *authUsecase) Logout(ctx context.Context, hospitalID uuid.UUID, tokenID string) error {
	if err := u.redisClient.Del(ctx, middleware.AccessTokenKey(hospitalID, tokenID)).Err(); err != nil {
		u.log.Warnf("Failed to delete access token: %+v", err)
		return err
	}

	if email, ok := middleware.GetUserEmailFromContext(ctx); ok {
		u.log.Infof("Hospital %s signed out (%s)", hospitalID, email)
	}
	return nil
}

func (u *authUsecase) Me(ctx context.Context, hospitalID uuid.UUID) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), hospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital), nil
}

func (u *authUsecase) createHospital(ctx context.Context, hospital *entity.Hospital) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.hospitalRepo.Create(tx, hospital); err != nil {
		if isDuplicateKeyError(err, "email") {
			return ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create hospital: %+v", err)
		return err
	}

	if err := u.auditService.LogCreate(ctx, tx, &hospital.ID, entity.AuditActionHospitalRegister, "hospital", hospital.ID.String(), converter.HospitalToResponse(hospital)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

// discardImage removes an upload whose hospital row was never committed.
func (u *authUsecase) discardImage(url string) {
	if url == "" {
		return
	}
	if err := u.fileStorage.Delete(context.Background(), url); err != nil {
		u.log.Warnf("Failed to delete orphaned hospital image: %+v", err)
	}
}

// issueToken signs a session token and marks it live in Redis for its lifetime.
func (u *authUsecase) issueToken(ctx context.Context, hospital *entity.Hospital) (*dto.AuthResponse, error) {
	token, tokenID, err := u.jwtService.GenerateAccessToken(hospital.ID, hospital.Email, hospital.HospitalName)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	key := middleware.AccessTokenKey(hospital.ID, tokenID)
	if err := u.redisClient.Set(ctx, key, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}

	return &dto.AuthResponse{
		Token:        token,
		ID:           hospital.ID,
		HospitalName: hospital.HospitalName,
		Email:        hospital.Email,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
	}, nil
}
