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

	addBlockHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/add_block"
	cancelBookingHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/create_booking"
	deleteBlockHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/delete_block"
	escalateDisputeHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/escalate_dispute"
	finalizePaymentHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/finalize_payment"
	getAvailableSlotsHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_available_slots"
	getBlocksHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_blocks"
	getBookingHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_booking"
	getDisputeLogHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_dispute_log"
	getProBookingsHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_pro_bookings"
	getScheduleHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_schedule"
	getSettingsHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_settings"
	getUserBookingsHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/get_user_bookings"
	openDisputeHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/open_dispute"
	requestRefundHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/request_refund"
	resolveDisputeHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/resolve_dispute"
	respondDisputeHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/respond_dispute"
	updateScheduleHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/update_schedule"
	updateSettingsHandler "github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers/update_settings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/config"
	availabilityRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/availability"
	bookingRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/booking"
	calendarLinkRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/calendarlink"
	disputeLogRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/disputelog"
	settingsRepo "github.com/golfpro-saas/GolfPro-BookingService/internal/infra/storage/settings"
	gcalClient "github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/gcal"
	notifierClient "github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	stripeClient "github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/stripegw"
	bookingsService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings"
	disputesService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes"
	scheduleService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule"
	settingsService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/settings"
	createBookingUC "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/create_booking"
	finalizePaymentUC "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/finalize_payment"
	getAvailableSlotsUC "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/get_available_slots"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/dbmetrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/logger"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/metrics"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/simpletxmanager"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/txmanager"
)

// TxManager интерфейс менеджера транзакций, общий для обеих реализаций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

	log.Info("Starting GolfPro-BookingService...")
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

	// Инициализируем интеграционных клиентов
	payments := stripeClient.NewClient(stripeClient.Config{
		SecretKey:  cfg.Stripe.SecretKey,
		SuccessURL: cfg.Stripe.SuccessURL,
		CancelURL:  cfg.Stripe.CancelURL,
	}, log)

	calendar := gcalClient.NewClient(gcalClient.Config{
		ClientID:     cfg.Calendar.ClientID,
		ClientSecret: cfg.Calendar.ClientSecret,
		Timeout:      time.Duration(cfg.Calendar.Timeout) * time.Second,
	}, log)

	notify := notifierClient.NewClient(notifierClient.Config{
		URL:     cfg.Notification.URL,
		Timeout: time.Duration(cfg.Notification.Timeout) * time.Second,
	}, log)

	log.Info("Integration clients initialized (calendar_enabled=%v, notification_url=%s)",
		cfg.Calendar.Enabled, cfg.Notification.URL)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		availabilityRepository *availabilityRepo.Repository
		settingsRepository     *settingsRepo.Repository
		calendarLinkRepository *calendarLinkRepo.Repository
		disputeLogRepository   *disputeLogRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		availabilityRepository = availabilityRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		calendarLinkRepository = calendarLinkRepo.NewRepository(wrappedDB)
		disputeLogRepository = disputeLogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		availabilityRepository = availabilityRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		calendarLinkRepository = calendarLinkRepo.NewRepository(db)
		disputeLogRepository = disputeLogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, payments, notify, txMgr, log)
	disputeSvc := disputesService.NewService(bookingRepository, disputeLogRepository, payments, notify, txMgr, log)
	scheduleSvc := scheduleService.NewService(availabilityRepository, txMgr, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		settingsRepository,
		calendarLinkRepository,
		calendar,
		txMgr,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilityRepository,
		settingsRepository,
		payments,
		notify,
		txMgr,
		log,
	)

	finalizePaymentUseCase := finalizePaymentUC.NewUseCase(
		bookingRepository,
		payments,
		notify,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	finalizePayment := finalizePaymentHandler.NewHandler(finalizePaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	requestRefund := requestRefundHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getProBookings := getProBookingsHandler.NewHandler(bookingSvc, log)
	openDispute := openDisputeHandler.NewHandler(disputeSvc, log)
	respondDispute := respondDisputeHandler.NewHandler(disputeSvc, log)
	escalateDispute := escalateDisputeHandler.NewHandler(disputeSvc, log)
	resolveDispute := resolveDisputeHandler.NewHandler(disputeSvc, log)
	getDisputeLog := getDisputeLogHandler.NewHandler(disputeSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	getBlocks := getBlocksHandler.NewHandler(scheduleSvc, log)
	addBlock := addBlockHandler.NewHandler(scheduleSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(scheduleSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Аутентификация по заголовкам, анонимные запросы пропускаются:
	// доступ решается на уровне сервисов
	r.Use(middleware.Auth)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Слоты и бронирования ---
	api.HandleFunc("/pros/{proId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/payment/finalize", finalizePayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/complete", completeBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/refund", requestRefund.Handle).Methods(http.MethodPost)
	api.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/bookings", getProBookings.Handle).Methods(http.MethodGet)

	// --- Споры ---
	api.HandleFunc("/bookings/{id}/dispute", openDispute.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/dispute/respond", respondDispute.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/dispute/escalate", escalateDispute.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/dispute/resolve", resolveDispute.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}/dispute/log", getDisputeLog.Handle).Methods(http.MethodGet)

	// --- Расписание и настройки преподавателя ---
	api.HandleFunc("/pros/{proId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	api.HandleFunc("/pros/{proId}/blocks", getBlocks.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/blocks", addBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/pros/{proId}/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/pros/{proId}/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/pros/{proId}/settings", updateSettings.Handle).Methods(http.MethodPut)

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

	log.Info("Server stopped gracefully")
}
