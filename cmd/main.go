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

	cancelBookingHandler "github.com/meetlane/booking-service/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/meetlane/booking-service/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/meetlane/booking-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/meetlane/booking-service/internal/api/handlers/get_booking"
	getScheduleConfigHandler "github.com/meetlane/booking-service/internal/api/handlers/get_schedule_config"
	listBookingsHandler "github.com/meetlane/booking-service/internal/api/handlers/list_bookings"
	listServicesHandler "github.com/meetlane/booking-service/internal/api/handlers/list_services"
	updateScheduleConfigHandler "github.com/meetlane/booking-service/internal/api/handlers/update_schedule_config"
	upsertServiceHandler "github.com/meetlane/booking-service/internal/api/handlers/upsert_service"
	"github.com/meetlane/booking-service/internal/api/middleware"
	"github.com/meetlane/booking-service/internal/busy"
	"github.com/meetlane/booking-service/internal/config"
	"github.com/meetlane/booking-service/internal/domain"
	bookingRepo "github.com/meetlane/booking-service/internal/infra/storage/booking"
	"github.com/meetlane/booking-service/internal/infra/storage/lock"
	serviceRepo "github.com/meetlane/booking-service/internal/infra/storage/service"
	settingsRepo "github.com/meetlane/booking-service/internal/infra/storage/settings"
	"github.com/meetlane/booking-service/internal/integrations/googlecalendar"
	"github.com/meetlane/booking-service/internal/jobs"
	"github.com/meetlane/booking-service/internal/notify"
	"github.com/meetlane/booking-service/internal/notify/email"
	availabilityService "github.com/meetlane/booking-service/internal/service/availability"
	bookingsService "github.com/meetlane/booking-service/internal/service/bookings"
	servicesService "github.com/meetlane/booking-service/internal/service/services"
	cancelBookingUC "github.com/meetlane/booking-service/internal/usecase/cancel_booking"
	createBookingUC "github.com/meetlane/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/meetlane/booking-service/internal/usecase/get_available_slots"
	"github.com/meetlane/booking-service/pkg/dbmetrics"
	"github.com/meetlane/booking-service/pkg/logger"
	"github.com/meetlane/booking-service/pkg/metrics"
	"github.com/meetlane/booking-service/pkg/ratelimit"
)

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

	log.Info("Starting MeetLane booking service...")

	// Часовой пояс провайдера: все расписания считаются в нём
	location, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Fatal("Invalid booking.timezone %q: %v", cfg.Booking.Timezone, err)
	}
	log.Info("Provider timezone: %s", location)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории: с обёрткой метрик или без
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.Wrap(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	serviceRepository := serviceRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)

	// Распределённая блокировка поверх того же пула
	pgLock := lock.NewPGLock(db)

	// Адаптер внешнего календаря. Без подключенных токенов деградирует
	// в пустую занятость и несёт бронирования только по локальным данным.
	gcal := googlecalendar.New(googlecalendar.Config{
		ClientID:     cfg.Calendar.ClientID,
		ClientSecret: cfg.Calendar.ClientSecret,
		CalendarID:   cfg.Calendar.CalendarID,
		AppSecret:    cfg.Booking.AppSecret,
		Location:     location,
	}, settingsRepository, log, metricsCollector)

	// Источники занятости: локальные бронирования всегда, календарь по конфигу
	busySources := []getAvailableSlotsUC.BusySource{
		busy.NewLocalProvider(bookingRepository, location),
	}
	if cfg.Calendar.Enabled {
		busySources = append(busySources, busy.NewCalendarProvider(gcal))
		log.Info("External calendar busy source enabled")
	}

	// Сервисы
	availabilitySvc := availabilityService.NewService(settingsRepository, log)
	registry := servicesService.NewRegistry(serviceRepository, log)
	bookingReader := bookingsService.NewReader(bookingRepository, log)

	// Уведомления
	var notifier createBookingUC.Notifier = notify.Noop{}
	var cancelNotifier cancelBookingUC.Notifier = notify.Noop{}
	if cfg.Notifications.Enabled && cfg.Notifications.SendGridAPIKey != "" {
		emailNotifier := email.New(email.Config{
			FromName:   cfg.Notifications.FromName,
			FromEmail:  cfg.Notifications.FromEmail,
			AdminEmail: cfg.Notifications.AdminEmail,
		}, email.NewSendGridSender(cfg.Notifications.SendGridAPIKey), log)
		notifier = emailNotifier
		cancelNotifier = emailNotifier
		log.Info("Email notifications enabled (from=%s)", cfg.Notifications.FromEmail)
	} else {
		log.Info("Email notifications disabled")
	}

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		registry,
		availabilitySvc,
		busySources,
		location,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		registry,
		getAvailableSlotsUseCase,
		gcal,
		pgLock,
		notifier,
		location,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		gcal,
		cancelNotifier,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, metricsCollector, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, metricsCollector, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, metricsCollector, log)
	getBooking := getBookingHandler.NewHandler(bookingReader, log)
	listBookings := listBookingsHandler.NewHandler(bookingReader, location, log)
	listServices := listServicesHandler.NewHandler(registry, log)
	upsertService := upsertServiceHandler.NewHandler(registry, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(availabilitySvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(availabilitySvc, log)

	// Лимит попыток бронирования: фиксированное окно на IP прямого соединения
	limiter := ratelimit.New(domain.RateLimitMaxAttempts, domain.RateLimitWindowSeconds*time.Second)
	rateLimitMW := middleware.RateLimit(limiter, metricsCollector, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Публичные ручки
	api.HandleFunc("/services", listServices.Handle).Methods(http.MethodGet)
	api.HandleFunc("/services/{serviceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Лимит применяется только к созданию бронирования, до валидации
	api.Handle("/bookings", rateLimitMW(http.HandlerFunc(createBooking.Handle))).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Админские ручки
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/services", upsertService.HandleCreate).Methods(http.MethodPost)
	admin.HandleFunc("/services/{serviceId}", upsertService.HandleUpdate).Methods(http.MethodPut)
	admin.HandleFunc("/services/{serviceId}", upsertService.HandleDeactivate).Methods(http.MethodDelete)
	admin.HandleFunc("/schedule", getScheduleConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule", updateScheduleConfig.Handle).Methods(http.MethodPut)

	// Прогрев кэша календаря
	var prewarmer *jobs.Prewarmer
	if cfg.Jobs.PrewarmEnabled && cfg.Calendar.Enabled {
		prewarmer = jobs.NewPrewarmer(gcal, location, cfg.Jobs.PrewarmSchedule, log)
		if err := prewarmer.Start(); err != nil {
			log.Fatal("Failed to start prewarm job: %v", err)
		}
	}

	// HTTP-сервер
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if prewarmer != nil {
		prewarmer.Stop()
		log.Info("Prewarm job stopped")
	}

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
