package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"
	"github.com/RayuduBharani/meetocure-hs/pkg/validator"
)

type DoctorHandler struct {
	verificationUsecase usecase.DoctorVerificationUsecase
	validator           *validator.CustomValidator
}

func NewDoctorHandler(verificationUsecase usecase.DoctorVerificationUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		verificationUsecase: verificationUsecase,
		validator:           validator,
	}
}

// ListDoctors lists a hospital's doctors filtered by verification state
// @Summary List doctors
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param hospitalName query string false "Hospital name"
// @Param verified query bool false "Verified doctors only"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/doctors [get]
func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	verified := false
	if raw := r.URL.Query().Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.BadRequest(w, "verified must be true or false")
			return
		}
		verified = v
	}
	h.list(w, r, verified)
}

func (h *DoctorHandler) ListUnverified(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *DoctorHandler) ListVerified(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *DoctorHandler) list(w http.ResponseWriter, r *http.Request, verified bool) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	doctors, err := h.verificationUsecase.ListDoctors(r.Context(), &dto.ListDoctorsRequest{
		HospitalName: hospitalName,
		Verified:     verified,
	})
	if err != nil {
		response.InternalServerError(w, "Failed to fetch doctors", err)
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns a verification and its linked doctor
// @Summary Get doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.verificationUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to fetch doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// VerifyDoctor marks a doctor verified on both records
// @Summary Verify doctor
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Verification ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/doctors/{id}/verify [patch]
func (h *DoctorHandler) VerifyDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	result, err := h.verificationUsecase.VerifyDoctor(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to verify doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor verified successfully", result)
}

// RejectDoctor marks a doctor rejected with an optional reason
// @Summary Reject doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Verification ID"
// @Param request body dto.RejectDoctorRequest false "Reject Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/doctors/{id}/reject [patch]
func (h *DoctorHandler) RejectDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "doctor")
	if !ok {
		return
	}

	var req dto.RejectDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.verificationUsecase.RejectDoctor(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to reject doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor rejected successfully", result)
}

func (h *DoctorHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrDoctorVerificationNotFound:
		response.NotFound(w, "Doctor verification not found")
	case usecase.ErrDoctorAlreadyVerified:
		response.BadRequest(w, "Doctor is already verified")
	case usecase.ErrDoctorAlreadyRejected:
		response.BadRequest(w, "Doctor is already rejected")
	case usecase.ErrDoctorRejected:
		response.Conflict(w, "Doctor has been rejected and cannot be verified")
	case usecase.ErrDoctorNotInHospital:
		response.Forbidden(w, "Doctor belongs to a different hospital")
	case usecase.ErrDoctorSyncFailed:
		response.InternalServerError(w, "Failed to update doctor status", err)
	default:
		response.InternalServerError(w, fallback, err)
	}
}
