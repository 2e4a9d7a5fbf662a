package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"ad-metrics-service/internal/config"
	devicesApi "ad-metrics-service/internal/devices/adapters/adsapi"
	devicesHttp "ad-metrics-service/internal/devices/adapters/http/fiber"
	devicesRepoPg "ad-metrics-service/internal/devices/adapters/postgres"
	devicesCache "ad-metrics-service/internal/devices/adapters/redis"
	devicesPorts "ad-metrics-service/internal/devices/core/ports"
	devicesUsecase "ad-metrics-service/internal/devices/core/usecase"
	"ad-metrics-service/internal/logging"
	"ad-metrics-service/internal/pgdb"
	rowsHttp "ad-metrics-service/internal/rows/adapters/http/fiber"
	rowsRepoPg "ad-metrics-service/internal/rows/adapters/postgres"
	rowsUsecase "ad-metrics-service/internal/rows/core/usecase"
	"ad-metrics-service/internal/server"

	_ "ad-metrics-service/docs"
)

var version = "dev"

// @title Ad Metrics Service API
// @version 1.0
// @description Device-segmented ad report aggregation.
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}

	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	if err := cfg.ValidateServer(); err != nil {
		logging.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()

	// DB connection
	sqlDB, err := pgdb.Open(ctx, cfg.Postgres)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer sqlDB.Close()

	db := pgdb.New(sqlDB)

	if err := rowsRepoPg.EnsureSchema(ctx, db); err != nil {
		logging.Fatal().Err(err).Msg("failed to prepare schema")
	}

	// Optional row cache
	var rowCache devicesPorts.RowCachePort
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			// serve uncached
			logging.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, row cache disabled")
		} else {
			rowCache = devicesCache.NewRowCache(rdb, cfg.Redis.TTL)
			logging.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("row cache enabled")
		}
	}

	// Repositories
	rowRepository := rowsRepoPg.NewRowRepository(db)
	storedRowsRepository := devicesRepoPg.NewStoredRowsRepository(db)

	// Usecases
	storeRowUC := rowsUsecase.NewStoreRowUseCase(rowRepository)
	summarizeUC := devicesUsecase.NewSummarizeRowsUseCase()
	storedReportUC := devicesUsecase.NewGetStoredReportUseCase(storedRowsRepository)

	// Ads API relay, off unless a base URL is configured
	var deviceReportUC devicesHttp.ReportUseCase
	if cfg.AdsAPIEnabled() {
		adsClient := devicesApi.New(&http.Client{Timeout: cfg.AdsAPI.Timeout}, devicesApi.Config{
			BaseURL:        cfg.AdsAPI.BaseURL,
			DeveloperToken: cfg.AdsAPI.DeveloperToken,
			AccessToken:    cfg.AdsAPI.AccessToken,
			RatePerSecond:  cfg.AdsAPI.RatePerSecond,
			Burst:          cfg.AdsAPI.Burst,
			BreakerTimeout: cfg.AdsAPI.BreakerTimeout,
		})
		deviceReportUC = devicesUsecase.NewGetDeviceReportUseCase(adsClient, rowCache)
	} else {
		logging.Warn().Msg("ADS_API_BASE_URL not set, /api/v1/reports/devices disabled")
	}

	// HTTP (Fiber) app + handlers
	app := server.New(server.Config{
		Name:        "ad-metrics-service",
		Version:     version,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})
	api := server.API(app)

	devicesHttp.NewDeviceReportHandler(summarizeUC, deviceReportUC, storedReportUC).Register(api)
	rowsHttp.NewRowHandler(storeRowUC).Register(api)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTP.Addr); err != nil {
			logging.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logging.Info().Str("addr", cfg.HTTP.Addr).Str("version", version).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logging.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("fiber shutdown error")
	}

	logging.Info().Msg("server exiting")
}
