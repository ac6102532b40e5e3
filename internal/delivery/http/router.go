package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/handler"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/pkg/response"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth        *handler.AuthHandler
	Doctor      *handler.DoctorHandler
	Appointment *handler.AppointmentHandler
	Patient     *handler.PatientHandler
	Dashboard   *handler.DashboardHandler
	Report      *handler.ReportHandler
	AuditLog    *handler.AuditLogHandler
}

// Options carries the non-API mounts. Empty directories are not served.
type Options struct {
	MetricsHandler http.Handler
	UploadDir      string
	UploadPrefix   string
	StaticDir      string
}

type Router struct {
	router                  *mux.Router
	handlers                Handlers
	authMiddleware          *middleware.AuthMiddleware
	corsMiddleware          *middleware.CORSMiddleware
	observabilityMiddleware *middleware.ObservabilityMiddleware
	options                 Options
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	observabilityMiddleware *middleware.ObservabilityMiddleware,
	options Options,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		handlers:                handlers,
		authMiddleware:          authMiddleware,
		corsMiddleware:          corsMiddleware,
		observabilityMiddleware: observabilityMiddleware,
		options:                 options,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.observabilityMiddleware.Handle)

	// Preflight requests never match a method-restricted route, so give them one.
	r.router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if r.options.MetricsHandler != nil {
		r.router.Handle("/metrics", r.options.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.handlers.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.handlers.Auth.Login).Methods(http.MethodPost)

	// Everything below requires a hospital session
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	protected.HandleFunc("/auth/me", r.handlers.Auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/logout", r.handlers.Auth.Logout).Methods(http.MethodPost)

	// Doctor verification
	protected.HandleFunc("/doctors", r.handlers.Doctor.ListDoctors).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/unverified", r.handlers.Doctor.ListUnverified).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/verified", r.handlers.Doctor.ListVerified).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}", r.handlers.Doctor.GetDoctor).Methods(http.MethodGet)
	protected.HandleFunc("/doctors/{id}/verify", r.handlers.Doctor.VerifyDoctor).Methods(http.MethodPatch)
	protected.HandleFunc("/doctors/{id}/reject", r.handlers.Doctor.RejectDoctor).Methods(http.MethodPatch)

	// Appointments
	protected.HandleFunc("/appointments", r.handlers.Appointment.ListAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments", r.handlers.Appointment.CreateAppointment).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/today", r.handlers.Appointment.TodaysAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/weekly", r.handlers.Appointment.WeeklyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/doctor/{verificationId}", r.handlers.Appointment.DoctorAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/doctor/{verificationId}/stats", r.handlers.Appointment.DoctorStats).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/doctor/{verificationId}/patients", r.handlers.Appointment.DoctorPatients).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.handlers.Appointment.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.handlers.Appointment.UpdateAppointment).Methods(http.MethodPatch)

	// Patients
	protected.HandleFunc("/patients", r.handlers.Patient.HospitalPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patient-details", r.handlers.Patient.ListPatients).Methods(http.MethodGet)
	protected.HandleFunc("/patient-details", r.handlers.Patient.CreatePatient).Methods(http.MethodPost)
	protected.HandleFunc("/patient-details/{id}", r.handlers.Patient.GetPatient).Methods(http.MethodGet)
	protected.HandleFunc("/patient-details/{id}", r.handlers.Patient.UpdatePatient).Methods(http.MethodPut)
	protected.HandleFunc("/patient-details/{id}", r.handlers.Patient.DeletePatient).Methods(http.MethodDelete)
	protected.HandleFunc("/patient-details/{id}/stats", r.handlers.Patient.PatientStats).Methods(http.MethodGet)

	// Dashboard
	protected.HandleFunc("/dashboard/verified-doctors-todays-appointments", r.handlers.Dashboard.TodaysAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/verified-doctors-all-appointments", r.handlers.Dashboard.AllAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/verified-doctors-patients", r.handlers.Dashboard.Patients).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/verified-doctors-appointments-count", r.handlers.Dashboard.AppointmentCounts).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard/activity", r.handlers.Dashboard.Activity).Methods(http.MethodGet)

	// Reports
	protected.HandleFunc("/reports/performance", r.handlers.Report.Performance).Methods(http.MethodGet)
	protected.HandleFunc("/reports/appointment-trends", r.handlers.Report.Trends).Methods(http.MethodGet)
	protected.HandleFunc("/reports/patient-demographics", r.handlers.Report.Demographics).Methods(http.MethodGet)
	protected.HandleFunc("/reports/export", r.handlers.Report.Export).Methods(http.MethodGet)

	// Audit logs
	protected.HandleFunc("/audit-logs/{id}", r.handlers.AuditLog.GetAuditLog).Methods(http.MethodGet)

	if r.options.UploadDir != "" {
		prefix := "/" + strings.Trim(r.options.UploadPrefix, "/") + "/"
		r.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(r.options.UploadDir))))
	}

	if r.options.StaticDir != "" {
		r.router.PathPrefix("/").Handler(spaHandler{root: r.options.StaticDir})
	}

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

// spaHandler serves built frontend assets and falls back to index.html so
// client-side routes resolve.
type spaHandler struct {
	root string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		response.NotFound(w, "Route not found")
		return
	}

	path := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, "index.html"))
		return
	}
	http.FileServer(http.Dir(h.root)).ServeHTTP(w, r)
}
