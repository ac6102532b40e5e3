package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	DoctorIDs []uuid.UUID // when non-nil, restricts to this set (an empty set matches nothing)
	PatientID *uuid.UUID
	Status    AppointmentStatus
	DateFrom  *time.Time // inclusive
	DateTo    *time.Time // exclusive
	Page      int
	Limit     int  // 0 = no limit
	Ascending bool // default order is date DESC, time DESC
}

// MatchesNothing reports a doctor-set restriction that cannot match any row.
func (f *AppointmentFilter) MatchesNothing() bool {
	return f.DoctorIDs != nil && len(f.DoctorIDs) == 0
}

// StatusCounts holds appointment counts per status.
type StatusCounts map[AppointmentStatus]int64

func (c StatusCounts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// PatientAppointmentSummary aggregates one patient's appointments with a doctor.
type PatientAppointmentSummary struct {
	PatientID        uuid.UUID
	Name             string
	Email            string
	Phone            string
	AppointmentCount int64
	LastAppointment  time.Time
}

// DailyCount is the number of appointments scheduled on a day.
type DailyCount struct {
	Day   time.Time
	Count int64
}

// DoctorPerformance aggregates a doctor's appointment outcomes.
type DoctorPerformance struct {
	DoctorID  uuid.UUID
	Total     int64
	Completed int64
	Cancelled int64
}
