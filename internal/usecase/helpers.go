package usecase

import (
	"errors"
	"strings"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

var (
	ErrInvalidID          = errors.New("invalid id format")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrHospitalNameNeeded = errors.New("hospitalName is required")
)

// resolveVerifiedDoctorIDs returns the doctors of a hospital that are verified
// on both the verification and the doctor record. The result is never nil, so
// an empty set restricts appointment filters to nothing.
func resolveVerifiedDoctorIDs(db *gorm.DB, doctorRepo repository.DoctorRepository, log *logrus.Logger, hospitalName string) ([]uuid.UUID, error) {
	if strings.TrimSpace(hospitalName) == "" {
		return nil, ErrHospitalNameNeeded
	}

	ids, err := doctorRepo.FindVerifiedIDsByHospital(db, hospitalName)
	if err != nil {
		log.Warnf("Failed to resolve verified doctors: %+v", err)
		return nil, err
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return ids, nil
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ErrInvalidID
	}
	return &id, nil
}

// parseDate parses YYYY-MM-DD as a calendar day at UTC midnight, matching how
// appointment dates are stored.
func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(entity.DateLayout, raw)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return d, nil
}

// calendarDay returns the calendar day of t in loc as UTC midnight.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// weekBounds returns Monday and the following Monday of the week containing day.
func weekBounds(day time.Time) (time.Time, time.Time) {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 7)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
