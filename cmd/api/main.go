package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/kyungmin-dev/taskbell/internal/config"
	"github.com/kyungmin-dev/taskbell/internal/handler"
	"github.com/kyungmin-dev/taskbell/internal/infra/postgresql"
	"github.com/kyungmin-dev/taskbell/internal/infra/postgresql/migrations"
	infraredis "github.com/kyungmin-dev/taskbell/internal/infra/redis"
	"github.com/kyungmin-dev/taskbell/internal/observability"
	"github.com/kyungmin-dev/taskbell/internal/provider"
	"github.com/kyungmin-dev/taskbell/internal/repository"
	"github.com/kyungmin-dev/taskbell/internal/service"
	"github.com/kyungmin-dev/taskbell/internal/transport"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	db, err := postgresql.NewPostgres(cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("postgres initialization failed", zap.Error(err))
	}

	if err := migrations.Migrate(db); err != nil {
		logger.Fatal("database migrations failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("postgres underlying db init failed", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := infraredis.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("redis initialization failed", zap.Error(err))
	}
	defer rdb.Close()

	limiter, err := infraredis.NewRedisRateLimiter(rdb, cfg.KakaoSendLimitPerSec)
	if err != nil {
		logger.Fatal("rate limiter initialization failed", zap.Error(err))
	}

	metrics := observability.NewMetrics()

	taskRepo := repository.NewGormTaskRepo(db)
	contactRepo := repository.NewGormContactRepo(db)
	memoRepo := repository.NewGormMemoRepo(db)
	channelRepo := repository.NewGormChannelRepo(db)
	logRepo := repository.NewGormDeliveryLogRepo(db)

	kakao := provider.NewKakaoClient(provider.Credentials{
		ClientID:     cfg.KakaoClientID,
		ClientSecret: cfg.KakaoClientSecret,
		RedirectURI:  cfg.KakaoRedirectURI,
		AppURL:       cfg.AppURL,
	}, logger)

	deliverySvc := service.NewDeliveryService(kakao, channelRepo, limiter, metrics, logger)
	reminderSvc := service.NewReminderService(taskRepo, channelRepo, logRepo, deliverySvc, metrics, logger)
	channelSvc := service.NewChannelService(kakao, channelRepo, logger)
	taskSvc := service.NewTaskService(taskRepo, logger)
	contactSvc := service.NewContactService(contactRepo, logger)
	memoSvc := service.NewMemoService(memoRepo, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: transport.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMiddleware())

	handler.RegisterHealthRoutes(app, sqlDB, rdb)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group("/api")
	if err := handler.RegisterTaskRoutes(api, taskSvc); err != nil {
		logger.Fatal("task routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterContactRoutes(api, contactSvc); err != nil {
		logger.Fatal("contact routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterMemoRoutes(api, memoSvc); err != nil {
		logger.Fatal("memo routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterNotificationRoutes(api, channelSvc, reminderSvc, cfg.AppURL); err != nil {
		logger.Fatal("notification routes registration failed", zap.Error(err))
	}
	if err := handler.RegisterCronRoutes(api, reminderSvc, cfg.CronSecret); err != nil {
		logger.Fatal("cron routes registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("taskbell api started", zap.Int("port", cfg.APIPort))
		return app.Listen(fmt.Sprintf(":%d", cfg.APIPort))
	})

	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
}
