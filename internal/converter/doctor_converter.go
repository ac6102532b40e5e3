package converter

import (
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
)

// DoctorVerificationToResponse converts a DoctorVerification entity to its DTO
func DoctorVerificationToResponse(v *entity.DoctorVerification) dto.DoctorVerificationResponse {
	documents := make([]dto.DocumentResponse, len(v.Documents))
	for i, d := range v.Documents {
		documents[i] = dto.DocumentResponse{Type: d.Type, URL: d.URL}
	}

	return dto.DoctorVerificationResponse{
		ID:                 v.ID,
		Name:               v.Name,
		Email:              v.Email,
		Specialization:     v.Specialization,
		HospitalName:       v.HospitalName,
		ProfileImage:       v.ProfileImage,
		Documents:          documents,
		Verified:           v.Verified,
		RegistrationStatus: string(v.RegistrationStatus),
		RejectionReason:    v.RejectionReason,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// DoctorToResponse returns nil for a nil doctor
func DoctorToResponse(d *entity.Doctor) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:                 d.ID,
		Email:              d.Email,
		MobileNumber:       d.MobileNumber,
		RegistrationStatus: string(d.RegistrationStatus),
		VerificationID:     d.VerificationID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func DoctorDetailToResponse(item *entity.DoctorWithVerification) dto.DoctorDetailResponse {
	return dto.DoctorDetailResponse{
		DoctorVerification: DoctorVerificationToResponse(&item.Verification),
		Doctor:             DoctorToResponse(item.Doctor),
	}
}

func DoctorDetailsToResponses(items []entity.DoctorWithVerification) []dto.DoctorDetailResponse {
	responses := make([]dto.DoctorDetailResponse, len(items))
	for i := range items {
		responses[i] = DoctorDetailToResponse(&items[i])
	}
	return responses
}

// DoctorToSummary takes name and specialization from the preloaded verification, if any
func DoctorToSummary(d *entity.Doctor) *dto.DoctorSummary {
	if d == nil {
		return nil
	}

	summary := &dto.DoctorSummary{
		ID:             d.ID,
		VerificationID: d.VerificationID,
		Email:          d.Email,
	}
	if d.Verification != nil {
		summary.Name = d.Verification.Name
		summary.Specialization = d.Verification.Specialization
		summary.ProfileImage = d.Verification.ProfileImage
	}
	return summary
}
