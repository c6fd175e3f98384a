package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"

	activitiesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/activities"
	authHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/auth"
	carsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/cars"
	healthHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/health"
	packagesHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/packages"
	paymentsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/payments"
	reportsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/reports"
	serviceRecordsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/service_records"
	sessionsHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/sessions"
	usersHandler "github.com/m04kA/SMC-CarWashService/internal/api/handlers/users"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/infra/migrations"
	activityRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/activity"
	carRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/car"
	paymentRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/payment"
	reportRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/report"
	recordRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/servicerecord"
	sessionRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	packageRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/washpackage"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/googleauth"
	"github.com/m04kA/SMC-CarWashService/internal/jobs"
	activitiesService "github.com/m04kA/SMC-CarWashService/internal/service/activities"
	authService "github.com/m04kA/SMC-CarWashService/internal/service/auth"
	carsService "github.com/m04kA/SMC-CarWashService/internal/service/cars"
	packagesService "github.com/m04kA/SMC-CarWashService/internal/service/packages"
	paymentsService "github.com/m04kA/SMC-CarWashService/internal/service/payments"
	reportsService "github.com/m04kA/SMC-CarWashService/internal/service/reports"
	serviceRecordsService "github.com/m04kA/SMC-CarWashService/internal/service/servicerecords"
	sessionsService "github.com/m04kA/SMC-CarWashService/internal/service/sessions"
	usersService "github.com/m04kA/SMC-CarWashService/internal/service/users"
	createServiceRecordUC "github.com/m04kA/SMC-CarWashService/internal/usecase/create_service_record"
	recordPaymentUC "github.com/m04kA/SMC-CarWashService/internal/usecase/record_payment"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/filestore"
	"github.com/m04kA/SMC-CarWashService/pkg/metrics"
	"github.com/m04kA/SMC-CarWashService/pkg/numbers"
	"github.com/m04kA/SMC-CarWashService/pkg/password"
	"github.com/m04kA/SMC-CarWashService/pkg/txmanager"
)

const (
	visitorCleanupSchedule = "@every 10m"
	visitorIdleTimeout     = 10 * time.Minute
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before starting")
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	log.Info("Starting SMC-CarWashService...")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		authMetrics      authService.Metrics
		wrappedDB        *dbmetrics.DB
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		authMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if migrateOnStart {
		migrator, err := migrations.New(db, cfg.Database.DBName, log)
		if err != nil {
			log.Error("Failed to initialize migrations: %v", err)
			return err
		}
		if err := migrator.Up(); err != nil {
			log.Error("Migration failed: %v", err)
			return err
		}
	}

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	users := userRepo.NewRepository(wrappedDB)
	sessionsRepository := sessionRepo.NewRepository(wrappedDB)
	activitiesRepository := activityRepo.NewRepository(wrappedDB)
	cars := carRepo.NewRepository(wrappedDB)
	packages := packageRepo.NewRepository(wrappedDB)
	records := recordRepo.NewRepository(wrappedDB)
	payments := paymentRepo.NewRepository(wrappedDB)
	reports := reportRepo.NewRepository(wrappedDB)

	// Инфраструктура
	images, err := filestore.NewOnDisk(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix, cfg.Uploads.MaxImageBytes)
	if err != nil {
		log.Error("Failed to initialize uploads storage: %v", err)
		return err
	}
	generator := numbers.NewGenerator()
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	googleClient := googleauth.NewClient(
		cfg.Google.TokenInfoURL,
		cfg.Google.ClientID,
		time.Duration(cfg.Google.Timeout)*time.Second,
		log,
	)
	log.Info("Uploads stored in %s (public prefix %s)", cfg.Uploads.Dir, images.PublicPrefix())

	// Инициализируем сервисы
	activitySvc := activitiesService.NewService(activitiesRepository, log)
	sessionSvc := sessionsService.NewService(
		sessionsRepository,
		users,
		activitySvc,
		cfg.Auth.SessionTTL(),
		cfg.Auth.TouchInterval(),
		log,
	)
	authSvc := authService.NewService(users, hasher, googleClient, sessionSvc, images, activitySvc, authMetrics, log)
	carSvc := carsService.NewService(cars, generator, images, activitySvc, log)
	packageSvc := packagesService.NewService(packages, payments, txMgr, generator, activitySvc, log)
	recordSvc := serviceRecordsService.NewService(records, payments, cars, packages, txMgr, activitySvc, log)
	paymentSvc := paymentsService.NewService(payments, records, txMgr, activitySvc, log)
	reportSvc := reportsService.NewService(reports, log)
	userSvc := usersService.NewService(users, carSvc, packageSvc, recordSvc, paymentSvc, sessionSvc, log)

	// Инициализируем use cases
	createServiceRecordUseCase := createServiceRecordUC.NewUseCase(
		records,
		cars,
		packages,
		generator,
		txMgr,
		activitySvc,
		log,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		payments,
		records,
		generator,
		txMgr,
		activitySvc,
		log,
	)

	// Middleware
	cookie := middleware.NewSessionCookie(
		cfg.Auth.SessionSecret,
		cfg.Auth.CookieName,
		cfg.Auth.CookieSecure,
		cfg.Auth.SessionTTL(),
	)
	auth := middleware.NewAuth(sessionSvc, cookie, log)
	loginLimiter := middleware.NewRateLimiter(cfg.Auth.LoginRatePerMinute, cfg.Auth.LoginBurst, log)
	cors := middleware.NewCORS(cfg.CORS.AllowedOrigins)
	realIP, err := middleware.NewRealIP(cfg.Server.TrustedProxies)
	if err != nil {
		log.Error("Failed to configure trusted proxies: %v", err)
		return err
	}

	// Инициализируем handlers
	authH := authHandler.NewHandler(authSvc, cookie, log)
	sessionsH := sessionsHandler.NewHandler(sessionSvc, cookie, log)
	usersH := usersHandler.NewHandler(userSvc, log)
	carsH := carsHandler.NewHandler(carSvc, log)
	packagesH := packagesHandler.NewHandler(packageSvc, log)
	recordsH := serviceRecordsHandler.NewHandler(createServiceRecordUseCase, recordSvc, log)
	paymentsH := paymentsHandler.NewHandler(recordPaymentUseCase, paymentSvc, log)
	activitiesH := activitiesHandler.NewHandler(activitySvc, log)
	reportsH := reportsHandler.NewHandler(reportSvc, log)
	healthH := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/health", healthH.Handle).Methods(http.MethodGet)
	r.PathPrefix(images.PublicPrefix() + "/").Handler(images.Handler()).Methods(http.MethodGet)

	// Вход и регистрация ограничены по частоте для каждого IP
	r.Handle("/auth/register", loginLimiter.Handler(http.HandlerFunc(authH.Register))).Methods(http.MethodPost)
	r.Handle("/auth/login", loginLimiter.Handler(http.HandlerFunc(authH.Login))).Methods(http.MethodPost)
	r.Handle("/auth/login/google", loginLimiter.Handler(http.HandlerFunc(authH.LoginGoogle))).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют cookie сессии)
	// ============================================================

	protected := r.PathPrefix("").Subrouter()
	protected.Use(auth.RequireAuth)

	// --- Аккаунт и сессии ---
	protected.HandleFunc("/auth/logout", authH.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/me", authH.Me).Methods(http.MethodGet)
	protected.HandleFunc("/auth/edit-profile", authH.EditProfile).Methods(http.MethodPut)
	protected.HandleFunc("/auth/sessions", sessionsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/auth/sessions", sessionsH.RevokeAll).Methods(http.MethodDelete)
	protected.HandleFunc("/auth/sessions/{sessionId}", sessionsH.Revoke).Methods(http.MethodDelete)

	// --- Автомобили ---
	protected.HandleFunc("/car", carsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/car", carsH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/car/{id}", carsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/car/{id}", carsH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/car/{id}", carsH.Delete).Methods(http.MethodDelete)

	// --- Пакеты мойки ---
	protected.HandleFunc("/package", packagesH.List).Methods(http.MethodGet)
	protected.HandleFunc("/package", packagesH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/package/{id}", packagesH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/package/{id}", packagesH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/package/{id}", packagesH.Delete).Methods(http.MethodDelete)

	// --- Записи обслуживания ---
	protected.HandleFunc("/service-package", recordsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/service-package", recordsH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/service-package/{id}", recordsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/service-package/{id}", recordsH.Update).Methods(http.MethodPut)
	protected.HandleFunc("/service-package/{id}", recordsH.Delete).Methods(http.MethodDelete)

	// --- Платежи ---
	protected.HandleFunc("/payment", paymentsH.List).Methods(http.MethodGet)
	protected.HandleFunc("/payment", paymentsH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/payment/{id}", paymentsH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/payment/{id}", paymentsH.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/payment/{id}/status", paymentsH.UpdateStatus).Methods(http.MethodPatch)

	// --- Журнал и отчеты ---
	protected.HandleFunc("/activities", activitiesH.List).Methods(http.MethodGet)
	protected.HandleFunc("/reports/daily", reportsH.Daily).Methods(http.MethodGet)
	protected.HandleFunc("/reports/summary", reportsH.Summary).Methods(http.MethodGet)

	// --- Администрирование ---
	admin := protected.PathPrefix("/auth").Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/admin/users", usersH.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{userId}/details", usersH.Details).Methods(http.MethodGet)

	// Фоновые задачи
	scheduler := jobs.NewScheduler(log)
	if err := scheduler.Add(jobs.NameSessionPurge, cfg.Jobs.SessionPurgeSchedule, jobs.PurgeSessions(sessionSvc, log)); err != nil {
		log.Error("%v", err)
		return err
	}
	if err := scheduler.Add(jobs.NameActivityPrune, cfg.Jobs.ActivityPruneSchedule,
		jobs.PruneActivities(activitySvc, cfg.Jobs.ActivityRetentionDays, log)); err != nil {
		log.Error("%v", err)
		return err
	}
	if err := scheduler.Add(jobs.NameVisitorCleanup, visitorCleanupSchedule,
		jobs.CleanupVisitors(loginLimiter, visitorIdleTimeout)); err != nil {
		log.Error("%v", err)
		return err
	}
	scheduler.Start()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      realIP.Handler(cors.Handler(r)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed to start: %v", err)
		scheduler.Stop(context.Background())
		return err
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	scheduler.Stop(shutdownCtx)

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
	return nil
}
