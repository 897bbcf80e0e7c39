package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"talentd/internal/ai"
	"talentd/internal/database"
	"talentd/internal/errcode"
	"talentd/internal/storage"
	"talentd/internal/tasks"
	"talentd/internal/templates"
)

// PortfolioExportHandler consumes portfolio:export tasks: it renders the
// portfolio into a project tree, zips it, uploads the archive and notifies
// the owner.
type PortfolioExportHandler struct {
	db          *gorm.DB
	storage     *storage.Client
	redisClient *redis.Client
	logger      *slog.Logger
}

func NewPortfolioExportHandler(
	db *gorm.DB,
	storageClient *storage.Client,
	redisClient *redis.Client,
	logger *slog.Logger,
) *PortfolioExportHandler {
	return &PortfolioExportHandler{
		db:          db,
		storage:     storageClient,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ProcessTask implements asynq.Handler.
func (h *PortfolioExportHandler) ProcessTask(ctx context.Context, t *asynq.Task) (retErr error) {
	log := h.logger

	var payload tasks.PortfolioExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Error("unmarshal export payload failed", slog.Any("error", err))
		return err
	}

	log = log.With(
		slog.String("correlation_id", payload.CorrelationID),
		slog.Int("portfolio_id", int(payload.PortfolioID)),
	)
	log.Info("starting portfolio export task")

	var portfolio database.Portfolio
	if err := h.db.WithContext(ctx).First(&portfolio, payload.PortfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("portfolio not found, skipping task")
			return nil
		}
		log.Error("query portfolio failed", slog.Any("error", err))
		return err
	}

	log = log.With(slog.Uint64("user_id", uint64(portfolio.UserID)))

	defer func() {
		if retErr == nil {
			return
		}
		if !isFinalAsynqAttempt(ctx) {
			return
		}

		_ = h.db.WithContext(ctx).Model(&portfolio).
			Update("export_status", "failed").Error

		notify := ExportNotifyMessage{
			Status:        "error",
			PortfolioID:   portfolio.ID,
			CorrelationID: payload.CorrelationID,
			ErrorCode:     errcode.SystemError,
			ErrorMessage:  strings.TrimSpace(retErr.Error()),
		}
		if err := h.publishExportNotify(ctx, portfolio.UserID, notify); err != nil {
			log.Error("publish export error notification failed", slog.Any("error", err))
		}
	}()

	var data ai.PortfolioData
	if len(portfolio.Data) > 0 {
		if err := json.Unmarshal(portfolio.Data, &data); err != nil {
			log.Error("decode portfolio data failed", slog.Any("error", err))
			return fmt.Errorf("decode portfolio data: %w", err)
		}
	}

	files := templates.BuildPortfolioProject(data, portfolio.TemplateID)
	var buf bytes.Buffer
	if err := templates.WriteZipTo(&buf, files); err != nil {
		log.Error("package portfolio failed", slog.Any("error", err))
		return err
	}

	objectKey := fmt.Sprintf("exports/%d/%s.zip", portfolio.UserID, uuid.NewString())
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "application/zip"); err != nil {
		log.Error("upload export failed", slog.Any("error", err))
		return err
	}

	// Drop the previous export so orphaned archives do not pile up.
	if portfolio.ExportObjectKey != "" && portfolio.ExportObjectKey != objectKey {
		if err := h.storage.DeleteObject(ctx, portfolio.ExportObjectKey); err != nil {
			log.Warn("delete previous export failed",
				slog.String("key", portfolio.ExportObjectKey),
				slog.Any("error", err),
			)
		}
	}

	update := map[string]any{
		"export_object_key": objectKey,
		"export_status":     "completed",
	}
	if err := h.db.WithContext(ctx).Model(&portfolio).Updates(update).Error; err != nil {
		log.Error("update portfolio failed", slog.Any("error", err))
		return err
	}

	notify := ExportNotifyMessage{
		Status:        "completed",
		PortfolioID:   portfolio.ID,
		ObjectKey:     objectKey,
		CorrelationID: payload.CorrelationID,
		ErrorCode:     errcode.OK,
	}
	if err := h.publishExportNotify(ctx, portfolio.UserID, notify); err != nil {
		log.Error("publish export notification failed", slog.Any("error", err))
		return err
	}

	log.Info("portfolio export task completed", slog.String("object_key", objectKey))
	return nil
}

func (h *PortfolioExportHandler) publishExportNotify(ctx context.Context, userID uint, notify ExportNotifyMessage) error {
	data, err := json.Marshal(notify)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}
	channel := fmt.Sprintf("user_notify:%d", userID)
	if err := h.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		return fmt.Errorf("publish redis notification to %q: %w", channel, err)
	}
	return nil
}

func isFinalAsynqAttempt(ctx context.Context) bool {
	retryCount, ok1 := asynq.GetRetryCount(ctx)
	maxRetry, ok2 := asynq.GetMaxRetry(ctx)
	if !ok1 || !ok2 {
		return false
	}
	return retryCount >= maxRetry
}
