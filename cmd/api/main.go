package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"talentd/internal/ai"
	"talentd/internal/api"
	"talentd/internal/auth"
	"talentd/internal/config"
	"talentd/internal/database"
	"talentd/internal/storage"
	"talentd/internal/templates"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}
	logger.Info("storage ready", slog.String("bucket", cfg.MinIO.Bucket))

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer asynqClient.Close()

	authService, err := buildAuthService(cfg.Auth)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	model, err := ai.NewGeminiModel(context.Background(), cfg.Gemini)
	if err != nil {
		log.Fatalf("init gemini model: %v", err)
	}
	aiService := ai.NewService(model, cfg.Gemini.RequestTimeout)

	templateService := templates.NewService(cfg.Templates.Root, templates.Limits{
		MaxArchiveBytes: cfg.Templates.MaxArchiveBytes,
		MaxEntries:      cfg.Templates.MaxEntries,
		MaxEntryBytes:   cfg.Templates.MaxEntryBytes,
	})

	router := api.NewRouter(cfg)
	api.RegisterRoutes(router, api.Deps{
		DB:          db,
		AsynqClient: asynqClient,
		AuthService: authService,
		RedisClient: redisClient,
		Logger:      logger,
		Storage:     storageClient,
		AI:          aiService,
		Templates:   templateService,
		Config:      cfg,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("start api server: %v", err)
	}
}

func buildAuthService(cfg config.AuthConfig) (*auth.AuthService, error) {
	privatePEM, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	publicPEM, err := os.ReadFile(cfg.PublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return auth.NewAuthService(privatePEM, publicPEM, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
}
