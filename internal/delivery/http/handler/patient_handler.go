package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"
	"github.com/RayuduBharani/meetocure-hs/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// HospitalPatients lists patients who booked the hospital's verified doctors
// @Summary List hospital patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param hospitalName query string false "Hospital name"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/patients [get]
func (h *PatientHandler) HospitalPatients(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	patients, err := h.patientUsecase.HospitalPatients(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to fetch patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := pageParams(r)

	req := dto.ListPatientsRequest{
		Name:   query.Get("name"),
		Email:  query.Get("email"),
		Phone:  query.Get("phone"),
		Status: query.Get("status"),
		Page:   page,
		Limit:  limit,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.ListPatients(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch patients", err)
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Patients retrieved successfully", result.Patients,
		response.NewPagination(result.Total, result.Page, result.Limit))
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetPatient(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to fetch patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// CreatePatient registers patient details
// @Summary Create patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Create Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/patient-details [post]
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.CreatePatient(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.UpdatePatient(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	if err := h.patientUsecase.DeletePatient(r.Context(), id); err != nil {
		h.writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}

func (h *PatientHandler) PatientStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "patient")
	if !ok {
		return
	}

	stats, err := h.patientUsecase.PatientStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to fetch patient stats")
		return
	}

	response.Success(w, http.StatusOK, "Patient stats retrieved successfully", stats)
}

func (h *PatientHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPatientEmailExists:
		response.Conflict(w, "A patient with this email already exists")
	case usecase.ErrPatientPhoneExists:
		response.Conflict(w, "A patient with this phone number already exists")
	case usecase.ErrPatientHasAppointments:
		response.BadRequest(w, "Cannot delete patient with existing appointments")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case usecase.ErrHospitalNameNeeded:
		response.BadRequest(w, "hospitalName is required")
	default:
		response.InternalServerError(w, fallback, err)
	}
}
