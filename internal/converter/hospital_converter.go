package converter

import (
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
)

func HospitalToResponse(h *entity.Hospital) *dto.HospitalResponse {
	if h == nil {
		return nil
	}

	doctorIDs := []string(h.DoctorIDs)
	if doctorIDs == nil {
		doctorIDs = []string{}
	}

	return &dto.HospitalResponse{
		ID:           h.ID,
		Email:        h.Email,
		HospitalName: h.HospitalName,
		Address:      h.Address,
		Contact:      h.Contact,
		ImageURL:     h.ImageURL,
		DoctorIDs:    doctorIDs,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
}
