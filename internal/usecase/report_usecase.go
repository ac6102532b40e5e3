package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/converter"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultTrendDays = 7
	maxTrendDays     = 90

	ageGroupUnknown = "unknown"
	genderUnknown   = "unknown"
)

var ErrInvalidDateRange = errors.New("from must not be after to")

// ageGroups are inclusive upper bounds; anything older falls into "66+".
var ageGroups = []struct {
	label string
	max   int
}{
	{"0-17", 17},
	{"18-35", 35},
	{"36-50", 50},
	{"51-65", 65},
}

type ReportUsecase interface {
	Performance(ctx context.Context, hospitalName string) (*dto.PerformanceReportResponse, error)
	Trends(ctx context.Context, hospitalName string, days int) (*dto.TrendReportResponse, error)
	Demographics(ctx context.Context, hospitalName string) (*dto.DemographicsReportResponse, error)
	Export(ctx context.Context, hospitalName string, req *dto.ExportRequest) (*dto.ExportFile, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	loc             *time.Location
	now             func() time.Time
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	loc *time.Location,
) ReportUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &reportUsecase{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		loc:             loc,
		now:             time.Now,
	}
}

func (u *reportUsecase) Performance(ctx context.Context, hospitalName string) (*dto.PerformanceReportResponse, error) {
	db := u.db.WithContext(ctx)

	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}

	rows, err := u.appointmentRepo.PerformanceByDoctor(db, doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to aggregate doctor performance: %+v", err)
		return nil, err
	}

	doctors, err := u.doctorRepo.FindByIDs(db, doctorIDs)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}
	byID := make(map[uuid.UUID]*entity.Doctor, len(doctors))
	for i := range doctors {
		byID[doctors[i].ID] = &doctors[i]
	}

	report := &dto.PerformanceReportResponse{Doctors: make([]dto.DoctorPerformanceResponse, 0, len(rows))}
	for _, row := range rows {
		item := dto.DoctorPerformanceResponse{
			Doctor:    dto.DoctorSummary{ID: row.DoctorID},
			Total:     row.Total,
			Completed: row.Completed,
			Cancelled: row.Cancelled,
		}
		if summary := converter.DoctorToSummary(byID[row.DoctorID]); summary != nil {
			item.Doctor = *summary
		}
		report.Doctors = append(report.Doctors, item)
	}
	return report, nil
}

// Trends counts appointments per day over the last days days, today included.
// Days without appointments are reported as zero.
func (u *reportUsecase) Trends(ctx context.Context, hospitalName string, days int) (*dto.TrendReportResponse, error) {
	if days < 1 {
		days = defaultTrendDays
	}
	if days > maxTrendDays {
		days = maxTrendDays
	}

	db := u.db.WithContext(ctx)
	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}

	today := calendarDay(u.now(), u.loc)
	from := today.AddDate(0, 0, -(days - 1))
	to := today.AddDate(0, 0, 1)

	counts, err := u.appointmentRepo.DailyCounts(db, doctorIDs, from, to)
	if err != nil {
		u.log.Warnf("Failed to count daily appointments: %+v", err)
		return nil, err
	}
	byDay := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDay[c.Day.Format(entity.DateLayout)] = c.Count
	}

	report := &dto.TrendReportResponse{Days: days, Daily: make([]dto.DailyCountResponse, 0, days)}
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format(entity.DateLayout)
		report.Daily = append(report.Daily, dto.DailyCountResponse{Date: key, Count: byDay[key]})
		report.Total += byDay[key]
	}
	return report, nil
}

func (u *reportUsecase) Demographics(ctx context.Context, hospitalName string) (*dto.DemographicsReportResponse, error) {
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

	report := &dto.DemographicsReportResponse{
		TotalPatients: len(patients),
		ByGender:      map[string]int64{},
		ByAgeGroup:    map[string]int64{ageGroupUnknown: 0, "66+": 0},
	}
	for _, g := range ageGroups {
		report.ByAgeGroup[g.label] = 0
	}

	now := u.now()
	for i := range patients {
		gender := strings.ToLower(strings.TrimSpace(patients[i].Gender))
		if gender == "" {
			gender = genderUnknown
		}
		report.ByGender[gender]++
		report.ByAgeGroup[ageGroup(patients[i].AgeAt(now))]++
	}
	return report, nil
}

func (u *reportUsecase) Export(ctx context.Context, hospitalName string, req *dto.ExportRequest) (*dto.ExportFile, error) {
	filter := &entity.AppointmentFilter{Ascending: true}

	var from, to time.Time
	if req.From != "" {
		d, err := parseDate(req.From)
		if err != nil {
			return nil, err
		}
		from = d
		filter.DateFrom = &from
	}
	if req.To != "" {
		d, err := parseDate(req.To)
		if err != nil {
			return nil, err
		}
		to = d.AddDate(0, 0, 1)
		filter.DateTo = &to
	}
	if filter.DateFrom != nil && filter.DateTo != nil && !from.Before(to) {
		return nil, ErrInvalidDateRange
	}

	db := u.db.WithContext(ctx)
	doctorIDs, err := resolveVerifiedDoctorIDs(db, u.doctorRepo, u.log, hospitalName)
	if err != nil {
		return nil, err
	}
	filter.DoctorIDs = doctorIDs

	appointments, _, err := u.appointmentRepo.FindAll(db, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments for export: %+v", err)
		return nil, err
	}

	content, err := service.ExportAppointments(appointments)
	if err != nil {
		u.log.Warnf("Failed to build appointment export: %+v", err)
		return nil, err
	}

	return &dto.ExportFile{
		Filename: exportFilename(req, u.now().In(u.loc)),
		Content:  content,
	}, nil
}

func ageGroup(age int) string {
	if age < 0 {
		return ageGroupUnknown
	}
	for _, g := range ageGroups {
		if age <= g.max {
			return g.label
		}
	}
	return "66+"
}

func exportFilename(req *dto.ExportRequest, now time.Time) string {
	from, to := req.From, req.To
	if from == "" && to == "" {
		return fmt.Sprintf("appointments-%s.xlsx", now.Format(entity.DateLayout))
	}
	if from == "" {
		from = "start"
	}
	if to == "" {
		to = "end"
	}
	return fmt.Sprintf("appointments-%s_%s.xlsx", from, to)
}
