package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-portal/config"
	deliveryHttp "hospital-portal/internal/delivery/http"
	"hospital-portal/internal/delivery/http/handler"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/infrastructure/broadcast"
	"hospital-portal/internal/infrastructure/cache"
	"hospital-portal/internal/infrastructure/database"
	"hospital-portal/internal/infrastructure/fallback"
	"hospital-portal/internal/infrastructure/fixture"
	"hospital-portal/internal/infrastructure/metrics"
	"hospital-portal/internal/infrastructure/store"
	"hospital-portal/internal/repository"
	"hospital-portal/internal/service"
	"hospital-portal/internal/usecase"
	"hospital-portal/pkg/jwt"
	"hospital-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

// Usecases groups the application services shared by the HTTP server and
// the maintenance commands.
type Usecases struct {
	Auth         usecase.AuthUsecase
	Appointment  usecase.AppointmentUsecase
	Prescription usecase.PrescriptionUsecase
	Medicine     usecase.MedicineUsecase
	Patient      usecase.PatientUsecase
	Doctor       usecase.DoctorUsecase
	Account      usecase.AccountUsecase
	Contact      usecase.ContactUsecase
	ActivityLog  usecase.ActivityLogUsecase
	Seed         usecase.SeedUsecase
}

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	Store       *store.Handle
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Locks       *service.SlotLockService
	Usecases    Usecases
	Server      *http.Server
}

// Open loads configuration and connects to the stores without opening the
// named database. Maintenance commands that must not upgrade the schema
// stop here.
func Open(configPath string) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{Config: cfg}
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	db, err := database.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to record store: %w", err)
	}
	app.DB = db

	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, app.Log)
		switch {
		case err == nil:
			app.RedisClient = redisClient
		case cfg.Redis.Required:
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		default:
			app.Log.WithError(err).Warn("Redis unreachable, using the fallback file and in-process notifications")
		}
	}

	return app, nil
}

// New opens the named database at the configured version and wires every
// layer.
func New(ctx context.Context, configPath string) (*App, error) {
	app, err := Open(configPath)
	if err != nil {
		return nil, err
	}

	handle, err := app.Manager().Open(ctx, app.Config.Store.Name, app.Config.Store.Version)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open %s: %w", app.Config.Store.Name, err)
	}
	app.Store = handle
	app.Log.Infof("Database %s opened at version %d", handle.Name(), handle.Version())

	app.Metrics = metrics.New()
	app.Locks = service.NewSlotLockService(app.Log)
	app.Usecases = app.initializeUsecases()
	app.Server = app.initializeServer()

	return app, nil
}

// Manager returns a schema manager over the connected record store.
func (app *App) Manager() *store.Manager {
	return store.NewManager(app.DB, app.Log)
}

// setupLogger configures logrus to write JSON to stdout and, when a log file
// is configured, to a rotated file.
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	log.SetOutput(out)

	return log
}

// appointmentBackends selects Redis for the fallback list and notification
// channel when it is enabled, otherwise a local file and an in-process
// broadcaster.
func (app *App) appointmentBackends() (fallback.AppointmentList, broadcast.Broadcaster) {
	if app.RedisClient != nil {
		return fallback.NewRedisList(app.RedisClient, app.Config.Redis.AppointmentsKey, app.Log),
			broadcast.NewRedisBroadcaster(app.RedisClient, app.Config.Redis.Channel, app.Log)
	}
	return fallback.NewFileList(app.Config.Store.FallbackPath), broadcast.NewLocalBroadcaster()
}

func (app *App) fixtureSource() fixture.Source {
	cfg := app.Config.Fixtures
	if cfg.BaseURL != "" {
		return fixture.NewHTTPSource(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, cfg.CacheBust)
	}
	return fixture.NewDirSource(cfg.Dir)
}

func (app *App) initializeUsecases() Usecases {
	cfg := app.Config
	log := app.Log
	handle := app.Store

	// Initialize repositories
	accountRepo := repository.NewAccountRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	medicineRepo := repository.NewMedicineRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	restockRepo := repository.NewRestockRequestRepository()
	contactRepo := repository.NewContactMessageRepository()
	activityRepo := repository.NewActivityLogRepository()

	// Initialize services
	jwtService := jwt.NewJWTService(cfg.JWT)
	clock := service.NewMonotonicClock(time.Now, time.Millisecond)
	activity := service.NewActivityLogService(log, activityRepo, clock)
	catalog := fixture.NewCatalog(app.fixtureSource())
	fallbackList, broadcaster := app.appointmentBackends()

	return Usecases{
		Auth: usecase.NewAuthUsecase(handle, log, accountRepo, patientRepo, doctorRepo, activity, jwtService, cfg.Phone.Region),
		Appointment: usecase.NewAppointmentUsecase(handle, log, appointmentRepo, doctorRepo, fallbackList, catalog,
			broadcaster, app.Locks, app.Metrics, cfg.Scheduler.Slots),
		Prescription: usecase.NewPrescriptionUsecase(handle, log, medicineRepo, prescriptionRepo, restockRepo, patientRepo,
			catalog, activity, app.Metrics, cfg.Inventory.MaterializeStock),
		Medicine:    usecase.NewMedicineUsecase(handle, log, medicineRepo, restockRepo, activity),
		Patient:     usecase.NewPatientUsecase(handle, log, patientRepo, activity, cfg.Phone.Region),
		Doctor:      usecase.NewDoctorUsecase(handle, log, doctorRepo, activity, cfg.Phone.Region),
		Account:     usecase.NewAccountUsecase(handle, log, accountRepo, activity),
		Contact:     usecase.NewContactUsecase(handle, log, contactRepo, activity, cfg.Phone.Region),
		ActivityLog: usecase.NewActivityLogUsecase(handle, log, activityRepo),
		Seed: usecase.NewSeedUsecase(handle, log, catalog, accountRepo, patientRepo, doctorRepo, medicineRepo,
			activity, app.Metrics, cfg.Inventory.SeedStock),
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	uc := app.Usecases
	customValidator := validator.NewValidator()
	jwtService := jwt.NewJWTService(app.Config.JWT)

	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(uc.Auth, customValidator),
		Appointment:  handler.NewAppointmentHandler(uc.Appointment, customValidator, app.Log),
		Prescription: handler.NewPrescriptionHandler(uc.Prescription, customValidator),
		Medicine:     handler.NewMedicineHandler(uc.Medicine, customValidator),
		Patient:      handler.NewPatientHandler(uc.Patient, customValidator),
		Doctor:       handler.NewDoctorHandler(uc.Doctor, customValidator),
		Account:      handler.NewAccountHandler(uc.Account, customValidator),
		Contact:      handler.NewContactHandler(uc.Contact, customValidator),
		ActivityLog:  handler.NewActivityLogHandler(uc.ActivityLog),
	}

	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(app.Config.App.CORSOrigin)

	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, app.Metrics.Handler(), app.Store.Ping)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run seeds the store when configured, starts the HTTP server and blocks
// until an interrupt signal arrives.
func (app *App) Run(ctx context.Context) error {
	if app.Config.Fixtures.SeedOnStart {
		report, err := app.Usecases.Seed.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed on start: %w", err)
		}
		for _, c := range report.Collections {
			app.Log.Infof("Seeded %s: %d inserted (skipped=%t %s)", c.Collection, c.Inserted, c.Skipped, c.Reason)
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return app.waitForShutdown(serveErr)
}

// waitForShutdown blocks until an interrupt signal is received or the
// listener fails.
func (app *App) waitForShutdown(serveErr <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var runErr error
	select {
	case <-quit:
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("failed to start server: %w", err)
		}
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return runErr
}

// Close releases the lock sweeper, the record store and Redis.
func (app *App) Close() {
	if app.Locks != nil {
		app.Locks.Stop()
	}

	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Log.Warnf("Failed to close record store: %v", err)
		}
	} else if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
