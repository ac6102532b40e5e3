package converter

import (
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) dto.AppointmentResponse {
	info := a.PatientInfo.Data()
	allergies := info.Allergies
	if allergies == nil {
		allergies = []string{}
	}

	records := make([]dto.MedicalRecordResponse, len(a.MedicalRecords))
	for i, r := range a.MedicalRecords {
		records[i] = dto.MedicalRecordResponse{
			RecordType:  r.RecordType,
			FileURL:     r.FileURL,
			Description: r.Description,
			UploadDate:  r.UploadDate,
		}
	}

	return dto.AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Patient:   PatientToSummary(a.Patient),
		Doctor:    DoctorToSummary(a.Doctor),
		PatientInfo: dto.PatientInfoResponse{
			Name:                  info.Name,
			Gender:                info.Gender,
			Age:                   info.Age,
			Phone:                 info.Phone,
			BloodGroup:            info.BloodGroup,
			Allergies:             allergies,
			MedicalHistorySummary: info.MedicalHistorySummary,
			Note:                  info.Note,
		},
		MedicalRecords:  records,
		AppointmentDate: a.AppointmentDate.Format(entity.DateLayout),
		AppointmentTime: a.AppointmentTime,
		AppointmentType: a.AppointmentType,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Payment: dto.PaymentResponse{
			Amount:        a.Payment.Amount,
			Currency:      a.Payment.Currency,
			Method:        a.Payment.Method,
			TransactionID: a.Payment.TransactionID,
			Status:        string(a.Payment.Status),
			PaidAt:        a.Payment.PaidAt,
		},
		ExpireAt:  a.ExpireAt,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = AppointmentToResponse(&appointments[i])
	}
	return responses
}

func StatusCountsToResponse(c entity.StatusCounts) dto.StatusCountsResponse {
	return dto.StatusCountsResponse{
		Pending:   c[entity.AppointmentStatusPending],
		Confirmed: c[entity.AppointmentStatusConfirmed],
		Completed: c[entity.AppointmentStatusCompleted],
		Cancelled: c[entity.AppointmentStatusCancelled],
	}
}

func PatientSummaryToResponse(s *entity.PatientAppointmentSummary) dto.DoctorPatientResponse {
	return dto.DoctorPatientResponse{
		Patient: dto.PatientSummary{
			ID:    s.PatientID,
			Name:  s.Name,
			Email: s.Email,
			Phone: s.Phone,
		},
		AppointmentCount: s.AppointmentCount,
		LastAppointment:  s.LastAppointment.Format(entity.DateLayout),
	}
}
