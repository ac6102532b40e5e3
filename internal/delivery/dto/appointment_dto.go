package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ListAppointmentsRequest struct {
	DoctorID  string
	PatientID string
	Status    string `validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Date      string `validate:"omitempty,datetime=2006-01-02"`
	Page      int    `validate:"min=1"`
	Limit     int    `validate:"min=1,max=500"`
}

type DoctorAppointmentsRequest struct {
	Status string `validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Page   int    `validate:"min=1"`
	Limit  int    `validate:"min=1,max=500"`
}

type PatientInfoRequest struct {
	Name                  string   `json:"name" validate:"required,max=255"`
	Gender                string   `json:"gender" validate:"required,oneof=male female other"`
	Age                   *int     `json:"age" validate:"required,min=0,max=150"`
	Phone                 string   `json:"phone" validate:"required,phone"`
	BloodGroup            string   `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Allergies             []string `json:"allergies"`
	MedicalHistorySummary string   `json:"medical_history_summary"`
	Note                  string   `json:"note"`
}

type MedicalRecordRequest struct {
	RecordType  string `json:"record_type" validate:"required,oneof=prescription ct_scan xray other"`
	FileURL     string `json:"file_url" validate:"required,url"`
	Description string `json:"description"`
}

type PaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency" validate:"omitempty,len=3"`
	Method        string          `json:"payment_method" validate:"omitempty,oneof=credit_card paypal stripe other"`
	TransactionID string          `json:"transaction_id"`
	Status        string          `json:"status" validate:"omitempty,oneof=pending paid failed refunded"`
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID              `json:"patientId" validate:"required"`
	DoctorID        uuid.UUID              `json:"doctorId" validate:"required"`
	AppointmentDate string                 `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string                 `json:"appointment_time" validate:"required,hhmm"`
	AppointmentType string                 `json:"appointment_type" validate:"omitempty,max=20"`
	Reason          string                 `json:"reason"`
	PatientInfo     *PatientInfoRequest    `json:"patientInfo" validate:"omitempty"`
	MedicalRecords  []MedicalRecordRequest `json:"medicalRecords" validate:"omitempty,dive"`
	Payment         *PaymentRequest        `json:"payment" validate:"omitempty"`
}

// UpdateAppointmentRequest changes only the fields that are set.
type UpdateAppointmentRequest struct {
	AppointmentDate *string                `json:"appointment_date" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string                `json:"appointment_time" validate:"omitempty,hhmm"`
	AppointmentType *string                `json:"appointment_type" validate:"omitempty,max=20"`
	Status          *string                `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	Reason          *string                `json:"reason"`
	MedicalRecords  []MedicalRecordRequest `json:"medicalRecords" validate:"omitempty,dive"`
	Payment         *PaymentRequest        `json:"payment" validate:"omitempty"`
}

// Response DTOs

type PatientInfoResponse struct {
	Name                  string   `json:"name"`
	Gender                string   `json:"gender,omitempty"`
	Age                   *int     `json:"age,omitempty"`
	Phone                 string   `json:"phone,omitempty"`
	BloodGroup            string   `json:"blood_group,omitempty"`
	Allergies             []string `json:"allergies"`
	MedicalHistorySummary string   `json:"medical_history_summary"`
	Note                  string   `json:"note"`
}

type MedicalRecordResponse struct {
	RecordType  string    `json:"record_type"`
	FileURL     string    `json:"file_url"`
	Description string    `json:"description"`
	UploadDate  time.Time `json:"upload_date"`
}

type PaymentResponse struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Method        string          `json:"payment_method,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Status        string          `json:"status"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
}

type PatientSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

type AppointmentResponse struct {
	ID              uuid.UUID               `json:"id"`
	PatientID       uuid.UUID               `json:"patientId"`
	DoctorID        uuid.UUID               `json:"doctorId"`
	Patient         *PatientSummary         `json:"patient,omitempty"`
	Doctor          *DoctorSummary          `json:"doctor,omitempty"`
	PatientInfo     PatientInfoResponse     `json:"patientInfo"`
	MedicalRecords  []MedicalRecordResponse `json:"medicalRecords"`
	AppointmentDate string                  `json:"appointment_date"`
	AppointmentTime string                  `json:"appointment_time"`
	AppointmentType string                  `json:"appointment_type"`
	Status          string                  `json:"status"`
	Reason          string                  `json:"reason"`
	Payment         PaymentResponse         `json:"payment"`
	ExpireAt        time.Time               `json:"expireAt"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"-"`
	Limit        int                   `json:"-"`
}

type StatusCountsResponse struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type DoctorStatsResponse struct {
	TotalAppointments int64                `json:"totalAppointments"`
	TotalPatients     int64                `json:"totalPatients"`
	ByStatus          StatusCountsResponse `json:"byStatus"`
}

type DoctorPatientResponse struct {
	Patient          PatientSummary `json:"patient"`
	AppointmentCount int64          `json:"appointmentCount"`
	LastAppointment  string         `json:"lastAppointment"`
}
