package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentStatusPending,
	AppointmentStatusConfirmed,
	AppointmentStatusCompleted,
	AppointmentStatusCancelled,
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

const (
	// AppointmentExpiryGrace is how long after its slot an appointment stays live.
	AppointmentExpiryGrace = 30 * time.Minute

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultAppointmentType = "virtual"
	DefaultCurrency        = "USD"
)

var (
	ErrInvalidAppointmentTime  = errors.New("invalid appointment time, use HH:MM")
	ErrAppointmentInPast       = errors.New("appointment date and time must be in the future")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
}

// CanTransitionTo reports whether s may move to next. Completed and cancelled are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PatientInfo is the patient snapshot captured when the appointment is booked.
type PatientInfo struct {
	Name                  string   `json:"name"`
	Gender                string   `json:"gender,omitempty"`
	Age                   *int     `json:"age,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	BloodGroup            string   `json:"blood_group,omitempty"`
	Allergies             []string `json:"allergies"`
	MedicalHistorySummary string   `json:"medical_history_summary,omitempty"`
	Note                  string   `json:"note,omitempty"`
}

type MedicalRecord struct {
	RecordType  string    `json:"record_type"`
	FileURL     string    `json:"file_url"`
	Description string    `json:"description,omitempty"`
	UploadDate  time.Time `json:"upload_date"`
}

type Payment struct {
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Method        string          `gorm:"type:varchar(20)" json:"payment_method,omitempty"`
	TransactionID string          `gorm:"type:varchar(255)" json:"transaction_id,omitempty"`
	Status        PaymentStatus   `gorm:"type:varchar(10);not null;default:'pending'" json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

// Appointment is a patient's booking of a doctor's slot.
type Appointment struct {
	ID              uuid.UUID                          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID                          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID                          `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientInfo     datatypes.JSONType[PatientInfo]    `gorm:"type:jsonb" json:"patient_info"`
	MedicalRecords  datatypes.JSONSlice[MedicalRecord] `gorm:"type:jsonb" json:"medical_records"`
	AppointmentDate time.Time                          `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime string                             `gorm:"type:varchar(5);not null" json:"appointment_time"`
	AppointmentType string                             `gorm:"type:varchar(20);not null;default:'virtual'" json:"appointment_type"`
	Status          AppointmentStatus                  `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	Reason          string                             `gorm:"type:text" json:"reason,omitempty"`
	Payment         Payment                            `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`
	ExpireAt        time.Time                          `gorm:"not null;index" json:"expire_at"`
	CreatedAt       time.Time                          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                          `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt                     `gorm:"index" json:"-"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// ScheduledAt combines a calendar date and an HH:MM clock time in loc.
func ScheduledAt(date time.Time, clock string, loc *time.Location) (time.Time, error) {
	if len(clock) != len(TimeLayout) {
		return time.Time{}, ErrInvalidAppointmentTime
	}
	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, ErrInvalidAppointmentTime
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), nil
}

// Schedule sets the slot and recomputes ExpireAt. The slot must be after now.
func (a *Appointment) Schedule(date time.Time, clock string, loc *time.Location, now time.Time) error {
	at, err := ScheduledAt(date, clock, loc)
	if err != nil {
		return err
	}
	if !at.After(now) {
		return ErrAppointmentInPast
	}

	a.AppointmentDate = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	a.AppointmentTime = clock
	a.ExpireAt = at.Add(AppointmentExpiryGrace)
	return nil
}

// ScheduledAt returns the appointment's slot start in loc.
func (a *Appointment) ScheduledAt(loc *time.Location) (time.Time, error) {
	return ScheduledAt(a.AppointmentDate, a.AppointmentTime, loc)
}

// TransitionTo applies a guarded status change.
func (a *Appointment) TransitionTo(next AppointmentStatus) error {
	if !a.Status.CanTransitionTo(next) {
		return ErrInvalidStatusTransition
	}
	a.Status = next
	return nil
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
