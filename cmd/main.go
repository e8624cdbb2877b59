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

	chatMessageHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/chat_message"
	getForecastHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_forecast"
	getRegistryHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_registry"
	getStatsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_stats"
	getThemeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_theme"
	resizeLotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/resize_lot"
	searchSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/search_slots"
	setSlotTypeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/set_slot_type"
	toggleSlotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/toggle_slot"
	updateThemeHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_theme"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	registryStore "github.com/m04kA/SMC-ParkingService/internal/infra/storage/registry"
	sessionlogRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/sessionlog"
	forecastService "github.com/m04kA/SMC-ParkingService/internal/service/forecast"
	occupancyService "github.com/m04kA/SMC-ParkingService/internal/service/occupancy"
	queryService "github.com/m04kA/SMC-ParkingService/internal/service/query"
	registryService "github.com/m04kA/SMC-ParkingService/internal/service/registry"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к Redis (snapshot реестра + уведомления об изменениях)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping Redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	snapshotStore := registryStore.NewStore(rdb)

	// Подключаемся к базе данных журнала сессий (если включена).
	// Без неё сервис продолжает работать: запись сессий и прогноз
	// деградируют, локальные операции не затронуты.
	var (
		sessionLog    occupancyService.SessionLog
		sessionSource forecastService.SessionSource
	)

	if cfg.Database.Enabled {
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

		sessionRepository := sessionlogRepo.NewRepository(db)
		sessionLog = sessionRepository
		sessionSource = sessionRepository
	} else {
		log.Warn("Session log disabled: occupancy history and forecast are unavailable")
	}

	// Инициализируем сервисы
	registrySvc := registryService.NewService(snapshotStore, log)
	occupancySvc := occupancyService.NewService(registrySvc, sessionLog, log)
	forecastSvc := forecastService.NewService(
		sessionSource,
		cfg.Forecast.LookbackDays,
		time.Duration(cfg.Forecast.CacheTTLSeconds)*time.Second,
		log,
	)
	querySvc := queryService.NewService(registrySvc, log)

	if cfg.Metrics.Enabled {
		registrySvc.WithCounters(metricsCollector.RegistryRepairsTotal, metricsCollector.ChangeEventsPublished)
		occupancySvc.WithCounters(
			metricsCollector.SlotTogglesTotal.WithLabelValues("occupied"),
			metricsCollector.SlotTogglesTotal.WithLabelValues("empty"),
			metricsCollector.SessionWriteFailures,
		)
		forecastSvc.WithCounters(
			metricsCollector.ForecastCacheHits,
			metricsCollector.ForecastCacheMisses,
			metricsCollector.ForecastErrors,
		)
	}

	// Прогреваем snapshot: отсутствующий или испорченный блоб
	// ремонтируется до приёма первого запроса
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if reg, err := registrySvc.Load(warmCtx); err != nil {
		warmCancel()
		log.Fatal("Failed to load registry snapshot: %v", err)
	} else {
		log.Info("Registry snapshot ready (total=%d slots)", reg.Total)
	}
	warmCancel()

	// Подписываемся на уведомления об изменениях от других экземпляров
	subCtx, subCancel := context.WithCancel(context.Background())
	defer subCancel()

	go func() {
		for key := range snapshotStore.SubscribeChanges(subCtx) {
			if key != domain.RegistryKey {
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if _, err := registrySvc.Load(ctx); err != nil {
				log.Warn("Change notification: failed to reload snapshot: %v", err)
			}
			cancel()
		}
	}()

	// Инициализируем handlers
	getRegistry := getRegistryHandler.NewHandler(registrySvc, log)
	getStats := getStatsHandler.NewHandler(registrySvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(occupancySvc, log)
	setSlotType := setSlotTypeHandler.NewHandler(occupancySvc, log)
	resizeLot := resizeLotHandler.NewHandler(registrySvc, forecastSvc, log)
	getForecast := getForecastHandler.NewHandler(registrySvc, forecastSvc, log)
	searchSlots := searchSlotsHandler.NewHandler(querySvc, log)
	chatMessage := chatMessageHandler.NewHandler(querySvc, log)
	getTheme := getThemeHandler.NewHandler(snapshotStore, log)
	updateTheme := updateThemeHandler.NewHandler(snapshotStore, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Текущее состояние реестра слотов
	api.HandleFunc("/registry", getRegistry.Handle).Methods(http.MethodGet)

	// Сводная статистика занятости
	api.HandleFunc("/stats", getStats.Handle).Methods(http.MethodGet)

	// Прогноз rush hours
	api.HandleFunc("/forecast", getForecast.Handle).Methods(http.MethodGet)

	// Поиск слотов текстовым запросом
	api.HandleFunc("/search", searchSlots.Handle).Methods(http.MethodGet)

	// Вопрос парковочному ассистенту
	api.HandleFunc("/chat", chatMessage.Handle).Methods(http.MethodPost)

	// Тема оформления
	api.HandleFunc("/theme", getTheme.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Переключение занятости слота
	protected.HandleFunc("/slots/{slotIndex}/toggle", toggleSlot.Handle).Methods(http.MethodPost)

	// Смена категории слота
	protected.HandleFunc("/slots/{slotIndex}/type", setSlotType.Handle).Methods(http.MethodPut)

	// Изменение вместимости парковки
	protected.HandleFunc("/registry/total", resizeLot.Handle).Methods(http.MethodPut)

	// Смена темы оформления
	protected.HandleFunc("/theme", updateTheme.Handle).Methods(http.MethodPut)

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

	subCancel()

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
