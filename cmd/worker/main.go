package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentd/internal/config"
	"talentd/internal/database"
	"talentd/internal/metrics"
	"talentd/internal/storage"
	"talentd/internal/tasks"
	"talentd/internal/worker"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	logger.Info("database ready for worker")

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("close redis client failed", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	server := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()}, asynq.Config{
		Concurrency: 10,
	})

	exportHandler := worker.NewPortfolioExportHandler(db, storageClient, redisClient, logger)
	previewHandler := worker.NewTemplatePreviewHandler(
		db,
		storageClient,
		logger,
		cfg.API.InternalSecret,
		cfg.API.InternalBaseURL,
	)

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMetricsMiddleware())
	mux.Handle(tasks.TypePortfolioExport, exportHandler)
	mux.Handle(tasks.TypeTemplatePreview, previewHandler)

	logger.Info("worker service started", slog.String("redis_addr", cfg.Redis.Addr()))
	if err := server.Run(mux); err != nil {
		logger.Error("worker server stopped", slog.Any("error", err))
	}
}
