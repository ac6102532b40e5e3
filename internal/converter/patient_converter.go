package converter

import (
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
)

// PatientToResponse computes the age against now, omitting it when the date of birth is unknown
func PatientToResponse(p *entity.Patient, now time.Time) dto.PatientResponse {
	address := p.Address.Data()
	contact := p.EmergencyContact.Data()
	medical := p.MedicalInfo.Data()

	allergies := medical.Allergies
	if allergies == nil {
		allergies = []string{}
	}

	notifications := make([]dto.NotificationResponse, len(p.Notifications))
	for i, n := range p.Notifications {
		notifications[i] = dto.NotificationResponse{
			Title:     n.Title,
			Body:      n.Body,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}

	resp := dto.PatientResponse{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
		Gender: p.Gender,
		Address: dto.AddressRequest{
			Street:  address.Street,
			City:    address.City,
			State:   address.State,
			ZipCode: address.ZipCode,
			Country: address.Country,
		},
		EmergencyContact: dto.EmergencyContactRequest{
			Name:         contact.Name,
			Relationship: contact.Relationship,
			Phone:        contact.Phone,
		},
		MedicalInfo: dto.MedicalInfoRequest{
			BloodType:      medical.BloodType,
			Allergies:      allergies,
			MedicalHistory: medical.MedicalHistory,
		},
		Notifications: notifications,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format(entity.DateLayout)
	}
	if age := p.AgeAt(now); age >= 0 {
		resp.Age = &age
	}
	return resp
}

func PatientsToResponses(patients []entity.Patient, now time.Time) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = PatientToResponse(&patients[i], now)
	}
	return responses
}

func PatientToSummary(p *entity.Patient) *dto.PatientSummary {
	if p == nil {
		return nil
	}
	return &dto.PatientSummary{
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
	}
}
