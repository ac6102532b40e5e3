package handler

import (
	"net/http"
	"strconv"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

// TodaysAppointments lists the day's appointments for the hospital's verified doctors
// @Summary Today's appointments of verified doctors
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param hospitalName query string false "Hospital name"
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Response
// @Router /api/dashboard/verified-doctors-todays-appointments [get]
func (h *DashboardHandler) TodaysAppointments(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardUsecase.TodaysAppointments(r.Context(), hospitalName, r.URL.Query().Get("date"))
	if err != nil {
		h.writeError(w, err, "Failed to fetch today's appointments")
		return
	}

	response.Success(w, http.StatusOK, "Today's appointments retrieved successfully", result)
}

func (h *DashboardHandler) AllAppointments(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardUsecase.AllAppointments(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to fetch appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", result)
}

func (h *DashboardHandler) Patients(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardUsecase.Patients(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to fetch patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", result)
}

func (h *DashboardHandler) AppointmentCounts(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	result, err := h.dashboardUsecase.AppointmentCounts(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to fetch appointment counts")
		return
	}

	response.Success(w, http.StatusOK, "Appointment counts retrieved successfully", result)
}

// Activity returns the session hospital's most recent audit entries
// @Summary Recent activity
// @Tags Dashboard
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max entries"
// @Success 200 {object} response.Response
// @Router /api/dashboard/activity [get]
func (h *DashboardHandler) Activity(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.dashboardUsecase.Activity(r.Context(), hospitalID, limit)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch activity", err)
		return
	}

	response.Success(w, http.StatusOK, "Activity retrieved successfully", result)
}

func (h *DashboardHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrHospitalNameNeeded:
		response.BadRequest(w, "hospitalName is required")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	default:
		response.InternalServerError(w, fallback, err)
	}
}
