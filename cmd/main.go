package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	advanceStatusesHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/advance_statuses"
	cancelBookingHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/check_availability"
	confirmPaymentHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/confirm_payment"
	createApartmentHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/create_apartment"
	createHoldHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/create_hold"
	getApartmentHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/get_apartment"
	getBookingHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/get_user_bookings"
	listApartmentsHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/list_apartments"
	listBookingsHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/list_bookings"
	reviewDocumentHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/review_document"
	setApartmentAvailabilityHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/set_apartment_availability"
	setBookingStatusHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/set_booking_status"
	submitDocumentHandler "github.com/m04kA/SMC-ApartmentBooking/internal/api/handlers/submit_document"
	"github.com/m04kA/SMC-ApartmentBooking/internal/api/middleware"
	"github.com/m04kA/SMC-ApartmentBooking/internal/config"
	"github.com/m04kA/SMC-ApartmentBooking/internal/infra/ratelimit"
	apartmentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/apartment"
	bookingRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/booking"
	documentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/document"
	notificationRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/notification"
	paymentRepo "github.com/m04kA/SMC-ApartmentBooking/internal/infra/storage/payment"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/broker"
	"github.com/m04kA/SMC-ApartmentBooking/internal/integrations/paymentgateway"
	apartmentsService "github.com/m04kA/SMC-ApartmentBooking/internal/service/apartments"
	bookingsService "github.com/m04kA/SMC-ApartmentBooking/internal/service/bookings"
	documentsService "github.com/m04kA/SMC-ApartmentBooking/internal/service/documents"
	notificationsService "github.com/m04kA/SMC-ApartmentBooking/internal/service/notifications"
	advanceStatusesUC "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/advance_statuses"
	checkAvailabilityUC "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/check_availability"
	confirmPaymentUC "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/confirm_payment"
	createHoldUC "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/create_hold"
	setBookingStatusUC "github.com/m04kA/SMC-ApartmentBooking/internal/usecase/set_booking_status"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/logger"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/metrics"
	"github.com/m04kA/SMC-ApartmentBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithOptions(logger.Options{
		File:    cfg.Logs.File,
		Level:   cfg.Logs.Level,
		Console: cfg.Logs.Console,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ApartmentBooking...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Invalid booking timezone %q: %v", cfg.Booking.Timezone, err)
	}

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет.
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	apartmentRepository := apartmentRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	paymentRepository := paymentRepo.NewRepository(wrappedDB)
	documentRepository := documentRepo.NewRepository(wrappedDB)
	notificationRepository := notificationRepo.NewRepository(wrappedDB)

	// Инициализируем интеграционных клиентов
	gatewayClient := paymentgateway.NewClient(paymentgateway.Options{
		BaseURL:   cfg.Gateway.URL,
		KeyID:     cfg.Gateway.KeyID,
		KeySecret: cfg.Gateway.KeySecret,
		Timeout:   time.Duration(cfg.Gateway.Timeout) * time.Second,
		RPS:       cfg.Gateway.RPS,
		Metrics:   metricsCollector,
		Service:   cfg.Metrics.ServiceName,
	}, log)
	log.Info("Payment gateway client initialized (url=%s, timeout=%ds, rps=%d)",
		cfg.Gateway.URL, cfg.Gateway.Timeout, cfg.Gateway.RPS)

	// Брокер необязателен: без него уведомления только пишутся в БД
	var publisher notificationsService.Publisher
	if cfg.Broker.Enabled {
		brokerPublisher, err := broker.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange, cfg.Broker.Queue, log)
		if err != nil {
			log.Warn("Broker unavailable, admin events will be stored only: %v", err)
		} else {
			defer brokerPublisher.Close()
			publisher = brokerPublisher
			log.Info("Broker publisher connected (exchange=%s, queue=%s)", cfg.Broker.Exchange, cfg.Broker.Queue)
		}
	}

	// Хранилище счётчиков для ограничения частоты запросов
	var limiterStore ratelimit.Store = ratelimit.NewMemoryStore()
	if cfg.Redis.Enabled {
		redisClient := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s), rate limiting fails open until it is back: %v", cfg.Redis.Addr, err)
		}
		limiterStore = ratelimit.NewRedisStore(redisClient)
		log.Info("Rate limit store: redis (addr=%s)", cfg.Redis.Addr)
	}

	// Инициализируем use cases
	advanceStatusesUseCase := advanceStatusesUC.NewUseCase(
		bookingRepository,
		txMgr,
		metricsCollector,
		location,
		log,
	)

	notifier := notificationsService.NewService(notificationRepository, publisher, log)

	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		apartmentRepository,
		bookingRepository,
		txMgr,
		advanceStatusesUseCase,
		log,
	)

	createHoldUseCase := createHoldUC.NewUseCase(
		apartmentRepository,
		bookingRepository,
		txMgr,
		metricsCollector,
		createHoldUC.Settings{
			HoldDuration: cfg.Booking.HoldDuration(),
			MaxNights:    cfg.Booking.MaxNights,
			Location:     location,
		},
		log,
	)

	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		gatewayClient,
		bookingRepository,
		apartmentRepository,
		paymentRepository,
		txMgr,
		notifier,
		metricsCollector,
		confirmPaymentUC.Settings{
			Currency: cfg.Gateway.Currency,
			Location: location,
		},
		log,
	)

	setBookingStatusUseCase := setBookingStatusUC.NewUseCase(
		bookingRepository,
		apartmentRepository,
		documentRepository,
		paymentRepository,
		txMgr,
		advanceStatusesUseCase,
		notifier,
		location,
		log,
	)

	// Инициализируем сервисы
	apartmentSvc := apartmentsService.NewService(apartmentRepository, log)
	bookingSvc := bookingsService.NewService(bookingRepository, advanceStatusesUseCase, log)
	documentSvc := documentsService.NewService(documentRepository, bookingRepository, log)

	// Инициализируем handlers
	listApartments := listApartmentsHandler.NewHandler(apartmentSvc, log)
	getApartment := getApartmentHandler.NewHandler(apartmentSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createHold := createHoldHandler.NewHandler(createHoldUseCase, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(setBookingStatusUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	submitDocument := submitDocumentHandler.NewHandler(documentSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	setBookingStatus := setBookingStatusHandler.NewHandler(setBookingStatusUseCase, log)
	createApartment := createApartmentHandler.NewHandler(apartmentSvc, log)
	setApartmentAvailability := setApartmentAvailabilityHandler.NewHandler(apartmentSvc, log)
	reviewDocument := reviewDocumentHandler.NewHandler(documentSvc, log)
	advanceStatuses := advanceStatusesHandler.NewHandler(advanceStatusesUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
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

	api.HandleFunc("/apartments", listApartments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/apartments/{apartmentId}", getApartment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/apartments/{apartmentId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.Handle("/bookings",
		throttle(limiterStore, cfg.RateLimit, "holds", cfg.RateLimit.HoldLimit, metricsCollector, log)(http.HandlerFunc(createHold.Handle)),
	).Methods(http.MethodPost)

	protected.Handle("/bookings/{bookingId}/payment/confirm",
		throttle(limiterStore, cfg.RateLimit, "payments", cfg.RateLimit.PaymentLimit, metricsCollector, log)(http.HandlerFunc(confirmPayment.Handle)),
	).Methods(http.MethodPost)

	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Документы гостя ---
	protected.HandleFunc("/documents", submitDocument.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (X-User-Role: admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", setBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/apartments", createApartment.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/apartments/{apartmentId}/availability", setApartmentAvailability.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/documents/{documentId}/review", reviewDocument.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/statuses/advance", advanceStatuses.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	// Фоновый перевод статусов (необязателен: истечение удержаний работает и без него)
	if cfg.Sweeper.Enabled {
		g.Go(func() error {
			return advanceStatusesUseCase.Run(gCtx, time.Duration(cfg.Sweeper.Interval)*time.Second)
		})
	}

	// Ожидаем сигнал завершения или падение сервера
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("Service stopped with error: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// throttle ограничение частоты для группы маршрутов; выключенный лимит пропускает всё
func throttle(
	store ratelimit.Store,
	cfg config.RateLimitConfig,
	scope string,
	limit int,
	m *metrics.Metrics,
	log *logger.Logger,
) func(http.Handler) http.Handler {
	if !cfg.Enabled || limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(store, middleware.RateLimitRule{
		Scope:  scope,
		Limit:  limit,
		Window: cfg.Window(),
	}, m, log)
}
