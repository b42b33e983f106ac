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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_booking"
	cancelSeriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/cancel_series"
	checkAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/check_availability"
	checkInHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/check_in"
	createSeriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_series"
	editBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/edit_booking"
	extendSeriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/extend_series"
	getBookingHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_booking"
	getCatalogHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_catalog"
	getRoomBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_room_bookings"
	getSeriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_series"
	getUserBookingsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_user_bookings"
	planSeriesHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/plan_series"
	releaseSweepHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/release_sweep"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/config"
	"github.com/m04kA/SMC-RoomBookingService/internal/infra/lock"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/catalog"
	userServiceClient "github.com/m04kA/SMC-RoomBookingService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RoomBookingService/internal/scheduling"
	bookingsService "github.com/m04kA/SMC-RoomBookingService/internal/service/bookings"
	catalogService "github.com/m04kA/SMC-RoomBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/snapshot"
	checkAvailabilityUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_availability"
	checkInUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/check_in"
	createSeriesUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_series"
	editBookingUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/edit_booking"
	extendSeriesUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/extend_series"
	planSeriesUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/plan_series"
	releaseNoShowsUC "github.com/m04kA/SMC-RoomBookingService/internal/usecase/release_no_shows"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
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

	log.Info("Starting SMC-RoomBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	// Метрики; при выключенных метриках методы nil-коллектора ничего не делают
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
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, metricsCollector)
	}

	// Блокировка очистки неявок: Redis, если настроен, иначе только локальная
	var sweepGuard releaseNoShowsUC.Guard = lock.NoopGuard{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis %s is unavailable, sweeps will run without distributed lock: %v", cfg.Redis.Addr, err)
		}
		sweepGuard = lock.NewRedisGuard(redisClient, lock.SweepLockKey, cfg.Booking.SweepLockTTL())
		log.Info("Release sweep lock backed by Redis at %s", cfg.Redis.Addr)
	}

	// Интеграционные клиенты
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	).WithPrivilegeCache(time.Duration(cfg.UserService.CacheTTLSeconds) * time.Second)
	log.Info("UserService client initialized (url=%s, timeout=%ds, role cache=%ds)",
		cfg.UserService.URL, cfg.UserService.Timeout, cfg.UserService.CacheTTLSeconds)

	// Репозитории и инфраструктура
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	txManager := txmanager.NewTransactionManager(wrappedDB)
	snapshotLoader := snapshot.NewLoader(catalogRepository, bookingRepository)

	policy := scheduling.NewLifecyclePolicy(
		cfg.Booking.CheckInLeadMinutes,
		cfg.Booking.ReleaseThresholdMinutes,
		location,
	)
	maxOccurrences := cfg.Booking.MaxSeriesOccurrences

	// Use cases
	releaseNoShowsUseCase := releaseNoShowsUC.NewUseCase(
		bookingRepository,
		sweepGuard,
		policy,
		metricsCollector,
		log,
	)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		catalogRepository,
		snapshotLoader,
		releaseNoShowsUseCase,
		log,
	)

	planSeriesUseCase := planSeriesUC.NewUseCase(
		catalogRepository,
		snapshotLoader,
		releaseNoShowsUseCase,
		maxOccurrences,
		location,
		log,
	)

	createSeriesUseCase := createSeriesUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		snapshotLoader,
		releaseNoShowsUseCase,
		txManager,
		metricsCollector,
		maxOccurrences,
		location,
		log,
	)

	extendSeriesUseCase := extendSeriesUC.NewUseCase(
		bookingRepository,
		snapshotLoader,
		releaseNoShowsUseCase,
		userClient,
		txManager,
		metricsCollector,
		maxOccurrences,
		log,
	)

	editBookingUseCase := editBookingUC.NewUseCase(
		bookingRepository,
		catalogRepository,
		snapshotLoader,
		releaseNoShowsUseCase,
		userClient,
		txManager,
		metricsCollector,
		location,
		log,
	)

	checkInUseCase := checkInUC.NewUseCase(
		bookingRepository,
		releaseNoShowsUseCase,
		userClient,
		policy,
		metricsCollector,
		log,
	)

	// Сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogRepository,
		userClient,
		releaseNoShowsUseCase,
		txManager,
		location,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Handlers
	getCatalog := getCatalogHandler.NewHandler(catalogSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getRoomBookings := getRoomBookingsHandler.NewHandler(bookingSvc, log)
	planSeries := planSeriesHandler.NewHandler(planSeriesUseCase, log)
	createSeries := createSeriesHandler.NewHandler(createSeriesUseCase, log)
	getSeries := getSeriesHandler.NewHandler(bookingSvc, log)
	extendSeries := extendSeriesHandler.NewHandler(extendSeriesUseCase, log)
	cancelSeries := cancelSeriesHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, policy, log)
	editBooking := editBookingHandler.NewHandler(editBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkIn := checkInHandler.NewHandler(checkInUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	releaseSweep := releaseSweepHandler.NewHandler(releaseNoShowsUseCase, userClient, log)

	// Роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочники
	api.HandleFunc("/rooms", getCatalog.HandleRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}", getCatalog.HandleRoom).Methods(http.MethodGet)
	api.HandleFunc("/buildings", getCatalog.HandleBuildings).Methods(http.MethodGet)
	api.HandleFunc("/equipment", getCatalog.HandleEquipment).Methods(http.MethodGet)

	// Занятость комнаты и расписание с учетом комбинаций
	api.HandleFunc("/rooms/{roomId}/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{roomId}/bookings", getRoomBookings.Handle).Methods(http.MethodGet)

	// Предварительный план серии
	api.HandleFunc("/series/plan", planSeries.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Серии ---
	protected.HandleFunc("/series", createSeries.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/series/{seriesCode}", getSeries.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/series/{seriesCode}/extend", extendSeries.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/series/{seriesCode}/cancel", cancelSeries.Handle).Methods(http.MethodPatch)

	// --- Отдельные бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", editBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	protected.HandleFunc("/admin/release-sweep", releaseSweep.Handle).Methods(http.MethodPost)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	close(stopMetricsCh)

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
