package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"
	"github.com/RayuduBharani/meetocure-hs/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
	validator     *validator.CustomValidator
}

func NewReportHandler(reportUsecase usecase.ReportUsecase, validator *validator.CustomValidator) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
		validator:     validator,
	}
}

func (h *ReportHandler) Performance(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	report, err := h.reportUsecase.Performance(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to build performance report")
		return
	}

	response.Success(w, http.StatusOK, "Performance report retrieved successfully", report)
}

// Trends counts appointments per day over the last N days
// @Summary Appointment trends
// @Tags Reports
// @Security BearerAuth
// @Produce json
// @Param hospitalName query string false "Hospital name"
// @Param days query int false "Window in days"
// @Success 200 {object} response.Response
// @Router /api/reports/appointment-trends [get]
func (h *ReportHandler) Trends(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	report, err := h.reportUsecase.Trends(r.Context(), hospitalName, days)
	if err != nil {
		h.writeError(w, err, "Failed to build trend report")
		return
	}

	response.Success(w, http.StatusOK, "Appointment trends retrieved successfully", report)
}

func (h *ReportHandler) Demographics(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	report, err := h.reportUsecase.Demographics(r.Context(), hospitalName)
	if err != nil {
		h.writeError(w, err, "Failed to build demographics report")
		return
	}

	response.Success(w, http.StatusOK, "Patient demographics retrieved successfully", report)
}

// Export streams the hospital's appointments as an xlsx workbook
// @Summary Export appointments
// @Tags Reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param hospitalName query string false "Hospital name"
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Router /api/reports/export [get]
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	hospitalName, ok := hospitalScope(w, r)
	if !ok {
		return
	}

	req := dto.ExportRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, err := h.reportUsecase.Export(r.Context(), hospitalName, &req)
	if err != nil {
		h.writeError(w, err, "Failed to export appointments")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}

func (h *ReportHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrHospitalNameNeeded:
		response.BadRequest(w, "hospitalName is required")
	case usecase.ErrInvalidDateFormat:
		response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
	case usecase.ErrInvalidDateRange:
		response.BadRequest(w, "from must not be after to")
	default:
		response.InternalServerError(w, fallback, err)
	}
}
