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
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	createBookingHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/get_booking"
	getBookingTicketHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/get_booking_ticket"
	getDayStatsHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/get_day_stats"
	getSlotCatalogHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/get_slot_catalog"
	listBookingsHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/update_booking"
	verifyTicketHandler "github.com/m04kA/SMC-TruckQueueService/internal/api/handlers/verify_ticket"
	"github.com/m04kA/SMC-TruckQueueService/internal/api/middleware"
	"github.com/m04kA/SMC-TruckQueueService/internal/config"
	bookingRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/booking"
	memoryRepo "github.com/m04kA/SMC-TruckQueueService/internal/infra/storage/memory"
	masterDataClient "github.com/m04kA/SMC-TruckQueueService/internal/integrations/masterdata"
	"github.com/m04kA/SMC-TruckQueueService/internal/integrations/notifier"
	bookingsService "github.com/m04kA/SMC-TruckQueueService/internal/service/bookings"
	"github.com/m04kA/SMC-TruckQueueService/internal/service/schedule"
	ticketService "github.com/m04kA/SMC-TruckQueueService/internal/service/ticket"
	createBookingUC "github.com/m04kA/SMC-TruckQueueService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-TruckQueueService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-TruckQueueService/internal/worker/occupancy"
	"github.com/m04kA/SMC-TruckQueueService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TruckQueueService/pkg/logger"
	"github.com/m04kA/SMC-TruckQueueService/pkg/metrics"
	"github.com/m04kA/SMC-TruckQueueService/pkg/telemetry"
	"github.com/m04kA/SMC-TruckQueueService/pkg/txmanager"
)

// bookingStore хранилище, общее для use cases и сервисов
type bookingStore interface {
	createBookingUC.BookingRepository
	bookingsService.BookingRepository
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(config.DefaultPath)
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

	log.Info("Starting SMC-TruckQueueService...")

	ctx := context.Background()

	// Трейсинг (если задан endpoint)
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: cfg.Metrics.ServiceName,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		log.Fatal("Failed to initialize telemetry: %v", err)
	}

	// Инициализируем метрики (если включены); nil коллектор ничего не пишет
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Часовой пояс площадки
	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Каталог слотов
	slots, rules, err := cfg.Schedule.ToDomain()
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	catalog, err := schedule.NewCatalog(slots, rules)
	if err != nil {
		log.Fatal("Invalid schedule: %v", err)
	}
	log.Info("Slot catalog loaded: %d slots, %d weekday rules", len(catalog.All()), len(catalog.Rules()))

	// Хранилище и менеджер транзакций
	var (
		store bookingStore
		txMgr createBookingUC.TransactionManager
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		store = memoryRepo.NewRepository()
		txMgr = txmanager.Passthrough{}
		log.Warn("Using in-memory storage: bookings are lost on restart")

	default:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		var wrappedDB *dbmetrics.DB
		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}

		store = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	}

	// Справочники (опционально); выключенный клиент передается как nil интерфейс
	var masterData createBookingUC.MasterDataClient
	if cfg.MasterData.Enabled {
		masterData = masterDataClient.NewClient(
			cfg.MasterData.URL,
			time.Duration(cfg.MasterData.Timeout)*time.Second,
			log,
		)
		log.Info("Master data client initialized (url=%s timeout=%ds)", cfg.MasterData.URL, cfg.MasterData.Timeout)
	}

	// Публикация событий (опционально)
	var publisher notifier.Publisher = notifier.Noop{}
	if cfg.Notifier.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Notifier.Addr,
			Password: cfg.Notifier.Password,
			DB:       cfg.Notifier.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			// события не критичны для выдачи номеров, сервис стартует без них
			log.Warn("Redis is unreachable, booking events will be dropped until it recovers: %v", err)
		}
		publisher = notifier.NewRedisPublisher(redisClient, cfg.Notifier.Channel)
		log.Info("Booking events published to redis channel %q", cfg.Notifier.Channel)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(store, catalog, publisher, log)
	ticketSvc := ticketService.NewService(store, cfg.Ticket.Secret, cfg.Ticket.QRSize, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		store,
		catalog,
		masterData,
		publisher,
		txMgr,
		metricsCollector,
		cfg.Booking.Retries(),
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(store, catalog, loc, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSlotCatalog := getSlotCatalogHandler.NewHandler(catalog, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	getDayStats := getDayStatsHandler.NewHandler(bookingSvc, log)
	getBookingTicket := getBookingTicketHandler.NewHandler(ticketSvc, log)
	verifyTicket := verifyTicketHandler.NewHandler(ticketSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	stopRateLimitCh := make(chan struct{})
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxyHeader)
		go rateLimiter.RunSweeper(middleware.DefaultSweepInterval, stopRateLimitCh)
		r.Use(rateLimiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d per client, trust_proxy_header=%t",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxyHeader)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Таблица слотов и правила по дням недели
	api.HandleFunc("/slots/catalog", getSlotCatalog.Handle).Methods(http.MethodGet)

	// Доска слотов на дату: окно, занятость, следующий номер
	api.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Список и статистика (stats регистрируется раньше {bookingId})
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/stats/{date}", getDayStats.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/ticket", getBookingTicket.Handle).Methods(http.MethodGet)

	// Проверка талона на въезде
	api.HandleFunc("/tickets/verify", verifyTicket.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-Name header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// CORS для настольного клиента площадки и трейсинг входящих запросов
	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderUserName, middleware.HeaderRequestID},
	}).Handler(r)
	handler = otelhttp.NewHandler(handler, cfg.Metrics.ServiceName)

	// Воркер заполненности слотов
	var occupancyWorker *occupancy.Worker
	if cfg.Metrics.Enabled {
		occupancyWorker = occupancy.NewWorker(bookingSvc, metricsCollector, loc, log)
		if err := occupancyWorker.Start(cfg.Metrics.OccupancySchedule); err != nil {
			log.Fatal("Failed to start occupancy worker: %v", err)
		}
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	if occupancyWorker != nil {
		occupancyWorker.Stop()
	}

	// Останавливаем сбор метрик connection pool и очистку rate limiter
	close(stopMetricsCh)
	close(stopRateLimitCh)

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces: %v", err)
	}

	log.Info("Server stopped gracefully")
}
