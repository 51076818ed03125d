package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ryus-backoffice/ryus-backoffice/internal/app"
	"github.com/ryus-backoffice/ryus-backoffice/internal/cache"
	"github.com/ryus-backoffice/ryus-backoffice/internal/finance"
	"github.com/ryus-backoffice/ryus-backoffice/internal/orders"
	"github.com/ryus-backoffice/ryus-backoffice/internal/platform/db"
	"github.com/ryus-backoffice/ryus-backoffice/internal/shared"
	"github.com/ryus-backoffice/ryus-backoffice/internal/stock"
	"github.com/ryus-backoffice/ryus-backoffice/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	snapshotCache := cache.New(redisClient, cfg.CacheTTL)
	if err := snapshotCache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}

	ordersService := orders.NewService(orders.NewRepository(pool), shared.NewAuditLogger(pool), snapshotCache)
	stockService := stock.NewService(stock.NewRepository(pool), ordersService, snapshotCache)
	financeService := finance.NewService(finance.NewRepository(pool), ordersService, snapshotCache)

	dedup := shared.NewDedupStore(redisClient, "alerts", cfg.LowStockDedupWindow)

	client, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn("queue client close", slog.Any("error", err))
		}
	}()

	scanJob := jobs.NewLowStockScanJob(stockService, dedup, client, logger, nil)
	warmupJob := jobs.NewMetricsWarmupJob(financeService, stockService, logger, nil)

	scanTask, err := jobs.NewLowStockScanTask(jobs.LowStockScanPayload{IncludeOutOfStock: true})
	if err != nil {
		logger.Error("build scan task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLowStockScan, Handler: scanJob.Handle},
			{Type: jobs.TaskMetricsWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LowStockCron, Task: scanTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.WarmupCron, Task: jobs.NewMetricsWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
