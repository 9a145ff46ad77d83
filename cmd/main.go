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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createAppointmentHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/get_available_slots"
	getBarberScheduleHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/get_barber_schedule"
	rescheduleAppointmentHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/reschedule_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/update_appointment_status"
	updateBarberScheduleHandler "github.com/m04kA/SMC-BarbershopService/internal/api/handlers/update_barber_schedule"
	"github.com/m04kA/SMC-BarbershopService/internal/api/middleware"
	"github.com/m04kA/SMC-BarbershopService/internal/config"
	scheduleCache "github.com/m04kA/SMC-BarbershopService/internal/infra/cache/schedule"
	appointmentRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/appointment"
	barberRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/barber"
	"github.com/m04kA/SMC-BarbershopService/internal/infra/storage/migrations"
	serviceRepo "github.com/m04kA/SMC-BarbershopService/internal/infra/storage/service"
	"github.com/m04kA/SMC-BarbershopService/internal/integrations/dispatcher"
	"github.com/m04kA/SMC-BarbershopService/internal/integrations/eventbus"
	notificationServiceClient "github.com/m04kA/SMC-BarbershopService/internal/integrations/notificationservice"
	"github.com/m04kA/SMC-BarbershopService/internal/scheduling"
	appointmentsService "github.com/m04kA/SMC-BarbershopService/internal/service/appointments"
	"github.com/m04kA/SMC-BarbershopService/internal/service/availability"
	barbersService "github.com/m04kA/SMC-BarbershopService/internal/service/barbers"
	createAppointmentUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/get_available_slots"
	rescheduleAppointmentUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/reschedule_appointment"
	updateAppointmentStatusUC "github.com/m04kA/SMC-BarbershopService/internal/usecase/update_appointment_status"
	"github.com/m04kA/SMC-BarbershopService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/logger"
	"github.com/m04kA/SMC-BarbershopService/pkg/metrics"
	"github.com/m04kA/SMC-BarbershopService/pkg/txmanager"
)

const configPath = "config.toml"

func main() {
	// Переменные окружения из .env (если файл есть) подставляются в config.toml
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-BarbershopService...")
	log.Info("Configuration loaded from %s", configPath)

	// Параметры расписания: зона бизнеса, шаг слотов, минимальное время до начала записи
	settings, err := scheduling.NewSettings(
		cfg.Scheduling.TimeZone,
		cfg.Scheduling.SlotStrideMinutes,
		cfg.Scheduling.LeadTimeMinutes,
	)
	if err != nil {
		log.Fatal("Invalid scheduling settings: %v", err)
	}
	log.Info("Scheduling: time_zone=%s, stride=%dm, lead_time=%dm, completed_is_busy=%t",
		cfg.Scheduling.TimeZone, cfg.Scheduling.SlotStrideMinutes, cfg.Scheduling.LeadTimeMinutes,
		cfg.Scheduling.CompletedIsBusy())

	// Инициализируем метрики (если включены). nil-коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
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

	// Применяем миграции схемы
	if err := migrations.Up(context.Background(), db, log); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	barberRepository := barberRepo.NewRepository(wrappedDB)
	serviceRepository := serviceRepo.NewRepository(wrappedDB)

	// Кэш расписаний (Redis опционален)
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, schedules will be read from database: %v", cfg.Redis.Address, err)
		} else {
			log.Info("Schedule cache enabled (redis=%s, ttl=%s)", cfg.Redis.Address, cfg.Redis.TTL())
		}
		cancel()
	}
	schedules := scheduleCache.NewCache(barberRepository, redisClient, cfg.Redis.TTL(), metricsCollector, log)

	// Получатели событий по записям
	var sinks []dispatcher.Sink
	if cfg.NotificationService.URL != "" {
		sinks = append(sinks, notificationServiceClient.NewClient(
			cfg.NotificationService.URL,
			time.Duration(cfg.NotificationService.Timeout)*time.Second,
			log,
		))
		log.Info("Notification service client initialized (url=%s, timeout=%ds)",
			cfg.NotificationService.URL, cfg.NotificationService.Timeout)
	}
	var publisher *eventbus.Publisher
	if cfg.Kafka.Enabled() {
		publisher = eventbus.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		sinks = append(sinks, publisher)
		log.Info("Kafka publisher initialized (brokers=%s, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	notifier := dispatcher.New(log.With("component", "dispatcher"), metricsCollector, cfg.Events.DeliveryTimeout(), sinks...)

	// Калькулятор доступности
	calculator := availability.NewCalculator(schedules, appointmentRepository, settings, cfg.Scheduling.CompletedIsBusy())

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(appointmentRepository, serviceRepository, settings.Location, log)
	barberSvc := barbersService.NewService(barberRepository, schedules, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		serviceRepository,
		barberRepository,
		calculator,
		metricsCollector,
		cfg.Scheduling.AdvanceBookingDays,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		barberRepository,
		calculator,
		notifier,
		metricsCollector,
		txMgr,
		cfg.Scheduling.AdvanceBookingDays,
		log,
	)

	updateStatusUseCase := updateAppointmentStatusUC.NewUseCase(
		appointmentRepository,
		calculator,
		notifier,
		metricsCollector,
		txMgr,
		log,
	)

	rescheduleUseCase := rescheduleAppointmentUC.NewUseCase(
		appointmentRepository,
		serviceRepository,
		calculator,
		notifier,
		metricsCollector,
		txMgr,
		cfg.Scheduling.AdvanceBookingDays,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(updateStatusUseCase, log)
	rescheduleAppointment := rescheduleAppointmentHandler.NewHandler(rescheduleUseCase, log)
	getBarberSchedule := getBarberScheduleHandler.NewHandler(barberSvc, log)
	updateBarberSchedule := updateBarberScheduleHandler.NewHandler(barberSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты по услуге (barberId=<id> или any)
	api.HandleFunc("/services/{serviceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание барбера
	api.HandleFunc("/barbers/{barberId}/schedule", getBarberSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/reschedule", rescheduleAppointment.Handle).Methods(http.MethodPatch)

	// --- Управление барберами ---
	protected.HandleFunc("/barbers/{barberId}/schedule", updateBarberSchedule.Handle).Methods(http.MethodPut)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close kafka publisher: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
