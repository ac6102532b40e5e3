package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RayuduBharani/meetocure-hs/config"
	deliveryHttp "github.com/RayuduBharani/meetocure-hs/internal/delivery/http"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/handler"
	"github.com/RayuduBharani/meetocure-hs/internal/delivery/http/middleware"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/cache"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/database"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"
	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/storage"
	"github.com/RayuduBharani/meetocure-hs/internal/repository"
	"github.com/RayuduBharani/meetocure-hs/internal/service"
	"github.com/RayuduBharani/meetocure-hs/internal/usecase"
	"github.com/RayuduBharani/meetocure-hs/pkg/jwt"
	"github.com/RayuduBharani/meetocure-hs/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Sweeper     *service.ExpirySweeper
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	setupLogger(cfg.App)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(db); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	fileStorage, err := storage.New(context.Background(), cfg.Storage, logrus.StandardLogger())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize all layers
	if err := app.initialize(fileStorage); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.AppConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initialize wires repositories, usecases, handlers and the HTTP server
func (app *App) initialize(fileStorage storage.FileStorage) error {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient
	log := logrus.StandardLogger()
	loc := cfg.App.Location()

	m := metrics.New(prometheus.DefaultRegisterer)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	hospitalRepo := repository.NewHospitalRepository()
	verificationRepo := repository.NewDoctorVerificationRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	patientRepo := repository.NewPatientRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotLocker := service.NewRedisSlotLocker(redisClient, log, cfg.Booking.SlotLockTTL)
	app.Sweeper = service.NewExpirySweeper(db, log, appointmentRepo, m, cfg.Scheduler.ExpirySpec)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, hospitalRepo, auditService, fileStorage, jwtService, redisClient)
	verificationUsecase := usecase.NewDoctorVerificationUsecase(db, log, verificationRepo, doctorRepo, hospitalRepo, auditService, m)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, patientRepo, auditService, slotLocker, m, loc)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, appointmentRepo, doctorRepo, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, doctorRepo, appointmentRepo, patientRepo, auditLogRepo, loc)
	reportUsecase := usecase.NewReportUsecase(db, log, doctorRepo, appointmentRepo, patientRepo, loc)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase, customValidator),
		Doctor:      handler.NewDoctorHandler(verificationUsecase, customValidator),
		Appointment: handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Patient:     handler.NewPatientHandler(patientUsecase, customValidator),
		Dashboard:   handler.NewDashboardHandler(dashboardUsecase),
		Report:      handler.NewReportHandler(reportUsecase, customValidator),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	observabilityMiddleware := middleware.NewObservabilityMiddleware(log, m)

	options := deliveryHttp.Options{
		MetricsHandler: promhttp.Handler(),
		StaticDir:      cfg.App.StaticDir,
	}
	if local, ok := fileStorage.(*storage.LocalStorage); ok {
		options.UploadDir = local.Root()
		options.UploadPrefix = "uploads"
		if u, err := url.Parse(cfg.Storage.PublicBaseURL); err == nil && u.Path != "" {
			options.UploadPrefix = u.Path
		}
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, observabilityMiddleware, options)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	app.Server = &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	if err := app.Sweeper.Start(); err != nil {
		logrus.Fatalf("Failed to start expiry sweeper: %v", err)
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	app.Sweeper.Stop()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
