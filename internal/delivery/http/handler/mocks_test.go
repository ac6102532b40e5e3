package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/dto"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	sessionHospitalID = uuid.MustParse("7b0c5c2e-7f0e-4b43-9d0e-1d3c0f6b2a11")
	sessionHospital   = "Test Clinic"
)

// serve routes req through a fresh mux router with a hospital session attached.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc(pattern, h).Methods(method)

	ctx := middleware.WithSession(req.Context(), sessionHospitalID, "admin@testclinic.com", sessionHospital, "token-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, hospitalID uuid.UUID, tokenID string) error {
	return m.Called(hospitalID, tokenID).Error(0)
}

func (m *mockAuthUsecase) Me(ctx context.Context, hospitalID uuid.UUID) (*dto.HospitalResponse, error) {
	args := m.Called(hospitalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.HospitalResponse), args.Error(1)
}

type mockVerificationUsecase struct {
	mock.Mock
}

func (m *mockVerificationUsecase) ListDoctors(ctx context.Context, req *dto.ListDoctorsRequest) (*dto.DoctorListResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorListResponse), args.Error(1)
}

func (m *mockVerificationUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorDetailResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorDetailResponse), args.Error(1)
}

func (m *mockVerificationUsecase) VerifyDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorStatusChangeResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorStatusChangeResponse), args.Error(1)
}

func (m *mockVerificationUsecase) RejectDoctor(ctx context.Context, id uuid.UUID, req *dto.RejectDoctorRequest) (*dto.DoctorStatusChangeResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorStatusChangeResponse), args.Error(1)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentListResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) TodaysAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) WeeklyAppointments(ctx context.Context) ([]dto.AppointmentResponse, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) DoctorAppointments(ctx context.Context, id uuid.UUID, req *dto.DoctorAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentListResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) DoctorStats(ctx context.Context, id uuid.UUID) (*dto.DoctorStatsResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DoctorStatsResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) DoctorPatients(ctx context.Context, id uuid.UUID) ([]dto.DoctorPatientResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.DoctorPatientResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

func (m *mockAppointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AppointmentResponse), args.Error(1)
}

type mockPatientUsecase struct {
	mock.Mock
}

func (m *mockPatientUsecase) HospitalPatients(ctx context.Context, hospitalName string) ([]dto.PatientResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) ListPatients(ctx context.Context, req *dto.ListPatientsRequest) (*dto.PatientListResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientListResponse), args.Error(1)
}

func (m *mockPatientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientResponse), args.Error(1)
}

func (m *mockPatientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return m.Called(id).Error(0)
}

func (m *mockPatientUsecase) PatientStats(ctx context.Context, id uuid.UUID) (*dto.PatientStatsResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PatientStatsResponse), args.Error(1)
}

type mockDashboardUsecase struct {
	mock.Mock
}

func (m *mockDashboardUsecase) TodaysAppointments(ctx context.Context, hospitalName, date string) (*dto.DashboardAppointmentsResponse, error) {
	args := m.Called(hospitalName, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardAppointmentsResponse), args.Error(1)
}

func (m *mockDashboardUsecase) AllAppointments(ctx context.Context, hospitalName string) (*dto.DashboardAppointmentsResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardAppointmentsResponse), args.Error(1)
}

func (m *mockDashboardUsecase) Patients(ctx context.Context, hospitalName string) (*dto.DashboardPatientsResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardPatientsResponse), args.Error(1)
}

func (m *mockDashboardUsecase) AppointmentCounts(ctx context.Context, hospitalName string) (*dto.DashboardCountsResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardCountsResponse), args.Error(1)
}

func (m *mockDashboardUsecase) Activity(ctx context.Context, hospitalID uuid.UUID, limit int) (*dto.ActivityResponse, error) {
	args := m.Called(hospitalID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ActivityResponse), args.Error(1)
}

type mockReportUsecase struct {
	mock.Mock
}

func (m *mockReportUsecase) Performance(ctx context.Context, hospitalName string) (*dto.PerformanceReportResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PerformanceReportResponse), args.Error(1)
}

func (m *mockReportUsecase) Trends(ctx context.Context, hospitalName string, days int) (*dto.TrendReportResponse, error) {
	args := m.Called(hospitalName, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrendReportResponse), args.Error(1)
}

func (m *mockReportUsecase) Demographics(ctx context.Context, hospitalName string) (*dto.DemographicsReportResponse, error) {
	args := m.Called(hospitalName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DemographicsReportResponse), args.Error(1)
}

func (m *mockReportUsecase) Export(ctx context.Context, hospitalName string, req *dto.ExportRequest) (*dto.ExportFile, error) {
	args := m.Called(hospitalName, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExportFile), args.Error(1)
}

type mockAuditLogUsecase struct {
	mock.Mock
}

func (m *mockAuditLogUsecase) GetAuditLog(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuditLogResponse), args.Error(1)
}
