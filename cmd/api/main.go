package main

// @title AdSpace Discovery API
// @version 1.0.0
// @description Сервис геопространственного поиска рекламных площадок. Ведёт discovery-сессии: загрузка каталога properties, текстовый фильтр, ранжирование по удалённости от центра viewport и двухуровневая навигация property -> advertising areas.
// @description
// @description Основные возможности:
// @description - Discovery-сессии с фильтрацией и ранжированием по близости
// @description - Детализация property до списка его рекламных зон
// @description - Геолокация клиента по IP для начального центра карты
// @description - Статистика discovery-событий

// @contact.name API Support
// @contact.email support@adspace-discovery.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/adspace-discovery/docs/swagger"
	"github.com/adspace-discovery/internal/config"
	httpDelivery "github.com/adspace-discovery/internal/delivery/http"
	"github.com/adspace-discovery/internal/delivery/http/handler"
	"github.com/adspace-discovery/internal/domain/repository"
	"github.com/adspace-discovery/internal/infrastructure/ipgeo"
	"github.com/adspace-discovery/internal/pkg/logger"
	"github.com/adspace-discovery/internal/repository/cache"
	"github.com/adspace-discovery/internal/repository/postgres"
	redisRepo "github.com/adspace-discovery/internal/repository/redis"
	"github.com/adspace-discovery/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting AdSpace Discovery Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize repositories
	propertyRepo := postgres.NewPropertyRepository(db)
	statsRepo := postgres.NewStatsRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	var geoProvider repository.GeolocationProvider
	if cfg.Geo.Enabled {
		geoProvider = ipgeo.NewClient(&cfg.Geo, log)
	}

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	discoveryUC := usecase.NewDiscoveryUseCase(
		propertyRepo,
		cacheRepo,
		streamRepo,
		geoProvider,
		log,
		cfg.Discovery,
		cfg.Cache,
	)

	catalogUC := usecase.NewCatalogUseCase(propertyRepo, log)

	statsUC := usecase.NewStatsUseCase(statsRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers
	discoveryHandler := handler.NewDiscoveryHandler(discoveryUC, log)
	catalogHandler := handler.NewCatalogHandler(catalogUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		discoveryHandler,
		catalogHandler,
		statsHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start janitor and server
	janitorCtx, janitorCancel := context.WithCancel(context.Background())
	defer janitorCancel()
	go discoveryUC.RunJanitor(janitorCtx)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	janitorCancel()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Failed to close PostgreSQL", zap.Error(err))
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Failed to close Redis", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
