package main

import (
	"flag"
	"time"

	"github.com/RayuduBharani/meetocure-hs/config"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/database"
	"github.com/RayuduBharani/meetocure-hs/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seeds one hospital account, three doctor registrations awaiting review, a
// patient and a booking for tomorrow. Doctor registration happens outside this
// service, so local environments need this to exercise the console.
func main() {
	hospitalName := flag.String("hospital", "Test Clinic", "hospital name")
	email := flag.String("email", "admin@testclinic.com", "hospital login email")
	password := flag.String("password", "password123", "hospital login password")
	flag.Parse()

	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		logrus.Fatalf("connect db: %v", err)
	}
	if err := database.MigrateUp(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("hash password: %v", err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return seed(tx, cfg.App.Location(), *hospitalName, *email, string(hashed))
	})
	if err != nil {
		logrus.Fatalf("seed: %v", err)
	}
	logrus.Infof("Seeded hospital %q (%s)", *hospitalName, *email)
}

func seed(tx *gorm.DB, loc *time.Location, hospitalName, email, passwordHash string) error {
	hospitalRepo := repository.NewHospitalRepository()
	verificationRepo := repository.NewDoctorVerificationRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	appointmentRepo := repository.NewAppointmentRepository()

	existing, err := hospitalRepo.FindByEmail(tx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		logrus.Infof("Hospital %s already exists, skipping", email)
		return nil
	}

	if err := hospitalRepo.Create(tx, &entity.Hospital{
		Email:        email,
		Password:     passwordHash,
		HospitalName: hospitalName,
		Address:      "1 Main Street",
		Contact:      "+15550000000",
		DoctorIDs:    []string{},
	}); err != nil {
		return err
	}

	doctors := []struct {
		name, email, mobile, specialization string
	}{
		{"Dr. Asha Rao", "asha.rao@example.com", "+15550000001", "Cardiology"},
		{"Dr. Ben Okafor", "ben.okafor@example.com", "+15550000002", "Dermatology"},
		{"Dr. Chen Wei", "chen.wei@example.com", "+15550000003", "Pediatrics"},
	}

	var firstDoctor *entity.Doctor
	for _, d := range doctors {
		verification := &entity.DoctorVerification{
			Name:               d.name,
			Email:              d.email,
			Specialization:     d.specialization,
			HospitalName:       hospitalName,
			Documents:          datatypes.NewJSONSlice([]entity.Document{{Type: "license", URL: "https://example.com/license.pdf"}}),
			RegistrationStatus: entity.RegistrationStatusUnderReview,
		}
		if err := verificationRepo.Create(tx, verification); err != nil {
			return err
		}

		doctor := &entity.Doctor{
			Email:              d.email,
			PasswordHash:       passwordHash,
			MobileNumber:       d.mobile,
			RegistrationStatus: entity.RegistrationStatusUnderReview,
			VerificationID:     &verification.ID,
		}
		if err := doctorRepo.Create(tx, doctor); err != nil {
			return err
		}
		if firstDoctor == nil {
			firstDoctor = doctor
		}
	}

	dob := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)
	patient := &entity.Patient{
		Name:        "Jordan Lee",
		Email:       "jordan.lee@example.com",
		Phone:       "+15550001000",
		DateOfBirth: &dob,
		Gender:      "other",
		MedicalInfo: datatypes.NewJSONType(entity.MedicalInfo{BloodType: "O+", Allergies: []string{}}),
		Status:      entity.PatientStatusActive,
	}
	if err := patientRepo.Create(tx, patient); err != nil {
		return err
	}

	now := time.Now().In(loc)
	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        firstDoctor.ID,
		PatientInfo:     datatypes.NewJSONType(entity.PatientInfo{Name: patient.Name, Phone: patient.Phone, Allergies: []string{}}),
		AppointmentType: "virtual",
		Status:          entity.AppointmentStatusPending,
		Reason:          "Routine checkup",
		Payment:         entity.Payment{Currency: "USD", Status: entity.PaymentStatusPending},
	}
	if err := appointment.Schedule(now.AddDate(0, 0, 1), "10:00", loc, now); err != nil {
		return err
	}
	return appointmentRepo.Create(tx, appointment)
}
