package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_booking"
	getBookingAuditHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_booking_audit"
	getUserBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/get_venue_bookings"
	rescheduleBookingHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/reschedule_booking"
	updateBookingNotesHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/update_booking_notes"
	updateBookingStatusHandler "github.com/m04kA/SMC-BookingEngine/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-BookingEngine/internal/api/middleware"
	"github.com/m04kA/SMC-BookingEngine/internal/config"
	"github.com/m04kA/SMC-BookingEngine/internal/domain"
	"github.com/m04kA/SMC-BookingEngine/internal/infra/events"
	auditRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/audit"
	availabilityRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/booking"
	policyRepo "github.com/m04kA/SMC-BookingEngine/internal/infra/storage/policy"
	customerServiceClient "github.com/m04kA/SMC-BookingEngine/internal/integrations/customerservice"
	auditService "github.com/m04kA/SMC-BookingEngine/internal/service/audit"
	bookingsService "github.com/m04kA/SMC-BookingEngine/internal/service/bookings"
	cancelBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/reschedule_booking"
	updateBookingStatusUC "github.com/m04kA/SMC-BookingEngine/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-BookingEngine/pkg/dbmetrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/logger"
	"github.com/m04kA/SMC-BookingEngine/pkg/metrics"
	"github.com/m04kA/SMC-BookingEngine/pkg/simpletxmanager"
	"github.com/m04kA/SMC-BookingEngine/pkg/token"
	"github.com/m04kA/SMC-BookingEngine/pkg/txmanager"
)

// EventPublisher объединяет события жизненного цикла бронирования
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *domain.Booking)
	BookingCancelled(ctx context.Context, booking *domain.Booking, reason string)
	BookingCompleted(ctx context.Context, booking *domain.Booking)
}

// TxManager интерфейс для transaction manager (используется в usecases и сервисах)
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingEngine...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционного клиента
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	log.Info("CustomerService client initialized (url=%s, timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout)

	// Публикация доменных событий (если включена)
	var eventPublisher EventPublisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		publisher, err := events.NewPublisher(cfg.Events.URL, cfg.Events.Exchange, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		eventPublisher = publisher
		log.Info("Event publisher connected (exchange=%s)", cfg.Events.Exchange)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		auditRepository        *auditRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		policyRepository       *policyRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(
			db,
			metricsCollector,
			time.Duration(cfg.Metrics.CollectInterval)*time.Second,
			stopMetricsCh,
		)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		auditRepository = auditRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		auditRepository = auditRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, auditRepository, txMgr, log)
	auditSvc := auditService.NewService(auditRepository, bookingRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		policyRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		auditRepository,
		availabilityRepository,
		policyRepository,
		customerClient,
		eventPublisher,
		txMgr,
		token.Generate,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		auditRepository,
		policyRepository,
		eventPublisher,
		txMgr,
		log,
	)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		auditRepository,
		availabilityRepository,
		policyRepository,
		txMgr,
		log,
	)
	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		auditRepository,
		eventPublisher,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	updateBookingNotes := updateBookingNotesHandler.NewHandler(bookingSvc, log)
	getBookingAudit := getBookingAuditHandler.NewHandler(auditSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка доступных слотов на день
	api.HandleFunc("/venues/{venueId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Управление бронированием по токену
	api.HandleFunc("/bookings/token/{token}", getBooking.HandleByToken).Methods(http.MethodGet)
	api.HandleFunc("/bookings/token/{token}/cancel", cancelBooking.HandleByToken).Methods(http.MethodPost)
	api.HandleFunc("/bookings/token/{token}/reschedule", rescheduleBooking.HandleByToken).Methods(http.MethodPost)
	api.HandleFunc("/bookings/token/{token}/notes", updateBookingNotes.HandleByToken).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.HandleByID).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/cancel", cancelBooking.HandleByID).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/reschedule", rescheduleBooking.HandleByID).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/notes", updateBookingNotes.HandleByID).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/audit", getBookingAudit.Handle).Methods(http.MethodGet)

	// --- Списки ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
