package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"
	"github.com/RayuduBharani/meetocure-hs/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// ListAppointments lists appointments with optional filters
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param doctorId query string false "Doctor ID"
// @Param patientId query string false "Patient ID"
// @Param status query string false "Status"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} response.Response
// @Router /api/appointments [get]
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, limit := pageParams(r)

	req := dto.ListAppointmentsRequest{
		DoctorID:  query.Get("doctorId"),
		PatientID: query.Get("patientId"),
		Status:    query.Get("status"),
		Date:      query.Get("date"),
		Page:      page,
		Limit:     limit,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.ListAppointments(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to fetch appointments")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Appointments retrieved successfully", result.Appointments,
		response.NewPagination(result.Total, result.Page, result.Limit))
}

func (h *AppointmentHandler) TodaysAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.TodaysAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to fetch today's appointments", err)
		return
	}

	response.Success(w, http.StatusOK, "Today's appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) WeeklyAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.WeeklyAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to fetch weekly appointments", err)
		return
	}

	response.Success(w, http.StatusOK, "Weekly appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetAppointment(r.Context(), id)
	if err != nil {
		h.writeError(w, err, "Failed to fetch appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// DoctorAppointments lists the appointments of the doctor linked to a verification
// @Summary List a doctor's appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param verificationId path string true "Verification ID"
// @Param status query string false "Status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/appointments/doctor/{verificationId} [get]
func (h *AppointmentHandler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	verificationID, ok := pathID(w, r, "verificationId", "verification")
	if !ok {
		return
	}

	page, limit := pageParams(r)
	req := dto.DoctorAppointmentsRequest{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.DoctorAppointments(r.Context(), verificationID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to fetch doctor appointments")
		return
	}

	response.SuccessWithPagination(w, http.StatusOK, "Doctor appointments retrieved successfully", result.Appointments,
		response.NewPagination(result.Total, result.Page, result.Limit))
}

func (h *AppointmentHandler) DoctorStats(w http.ResponseWriter, r *http.Request) {
	verificationID, ok := pathID(w, r, "verificationId", "verification")
	if !ok {
		return
	}

	stats, err := h.appointmentUsecase.DoctorStats(r.Context(), verificationID)
	if err != nil {
		h.writeError(w, err, "Failed to fetch doctor stats")
		return
	}

	response.Success(w, http.StatusOK, "Doctor stats retrieved successfully", stats)
}

func (h *AppointmentHandler) DoctorPatients(w http.ResponseWriter, r *http.Request) {
	verificationID, ok := pathID(w, r, "verificationId", "verification")
	if !ok {
		return
	}

	patients, err := h.appointmentUsecase.DoctorPatients(r.Context(), verificationID)
	if err != nil {
		h.writeError(w, err, "Failed to fetch doctor patients")
		return
	}

	response.Success(w, http.StatusOK, "Doctor patients retrieved successfully", patients)
}

// CreateAppointment books an appointment
// @Summary Create appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/appointments [post]
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.CreateAppointment(r.Context(), &req)
	if err != nil {
		h.writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// UpdateAppointment reschedules, changes status or records payment
// @Summary Update appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Update Appointment Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/appointments/{id} [patch]
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateAppointment(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrDoctorNotInHospital:
		response.Forbidden(w, "Doctor belongs to a different hospital")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrAppointmentSlotTaken:
		response.Conflict(w, "Doctor already has an appointment at this date and time")
	case usecase.ErrAppointmentClosed:
		response.Conflict(w, "Completed or cancelled appointments cannot be rescheduled")
	case entity.ErrInvalidStatusTransition:
		response.Conflict(w, "Invalid appointment status transition")
	case entity.ErrAppointmentInPast:
		response.BadRequest(w, "Appointment date and time must be in the future")
	case entity.ErrInvalidAppointmentTime:
		response.BadRequest(w, "Invalid appointment time, use HH:MM")
	case usecase.ErrInvalidPaymentAmount:
		response.BadRequest(w, "Payment amount must not be negative")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case usecase.ErrInvalidID:
		response.BadRequest(w, "Invalid ID format")
	default:
		response.InternalServerError(w, fallback, err)
	}
}
