package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentd/internal/api/middleware"
	"talentd/internal/database"
	"talentd/internal/storage"
	"talentd/internal/tasks"
)

// Export lifecycle values stored on database.Portfolio.ExportStatus.
const (
	ExportStatusPending   = "pending"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// PortfolioHandler serves portfolio CRUD, zip export and public sharing.
type PortfolioHandler struct {
	db      *gorm.DB
	asynq   *asynq.Client
	storage *storage.Client
}

func NewPortfolioHandler(db *gorm.DB, asynqClient *asynq.Client, storageClient *storage.Client) *PortfolioHandler {
	return &PortfolioHandler{db: db, asynq: asynqClient, storage: storageClient}
}

type portfolioRequest struct {
	Title      string         `json:"title" binding:"required"`
	TemplateID string         `json:"templateId"`
	Data       datatypes.JSON `json:"data" binding:"required"`
}

// POST /v1/portfolios (authenticated)
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	portfolio := database.Portfolio{
		Title:      req.Title,
		TemplateID: req.TemplateID,
		Data:       req.Data,
		UserID:     userID,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&portfolio).Error; err != nil {
		Internal(c, "failed to create portfolio")
		return
	}
	c.JSON(http.StatusCreated, portfolio)
}

// GET /v1/portfolios (authenticated)
func (h *PortfolioHandler) ListPortfolios(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var portfolios []database.Portfolio
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&portfolios).Error; err != nil {
		Internal(c, "failed to list portfolios")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": portfolios})
}

// GET /v1/portfolios/:id (authenticated, owner only)
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// PUT /v1/portfolios/:id (authenticated, owner only)
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}

	var req portfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	portfolio.Title = req.Title
	portfolio.TemplateID = req.TemplateID
	portfolio.Data = req.Data
	if err := h.db.WithContext(c.Request.Context()).Save(portfolio).Error; err != nil {
		Internal(c, "failed to update portfolio")
		return
	}
	c.JSON(http.StatusOK, portfolio)
}

// DELETE /v1/portfolios/:id (authenticated, owner only)
func (h *PortfolioHandler) DeletePortfolio(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if portfolio.ExportObjectKey != "" {
		if err := h.storage.DeleteObject(ctx, portfolio.ExportObjectKey); err != nil {
			middleware.LoggerFromContext(c).Warn("delete export object failed",
				slog.String("key", portfolio.ExportObjectKey),
				slog.Any("error", err),
			)
		}
	}
	if err := h.db.WithContext(ctx).Delete(portfolio).Error; err != nil {
		Internal(c, "failed to delete portfolio")
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /v1/portfolios/:id/export (authenticated, owner only)
// Queues zip packaging in the worker. The client learns about completion over
// the websocket channel or by polling the portfolio.
func (h *PortfolioHandler) ExportPortfolio(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	task, err := tasks.NewPortfolioExportTask(portfolio.ID, middleware.GetCorrelationID(c))
	if err != nil {
		Internal(c, "failed to build export task")
		return
	}
	if _, err := h.asynq.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		logger.Error("enqueue portfolio export failed", slog.Any("error", err))
		Internal(c, "failed to queue export")
		return
	}

	if err := h.db.WithContext(ctx).Model(portfolio).
		Update("export_status", ExportStatusPending).Error; err != nil {
		Internal(c, "failed to mark export pending")
		return
	}

	logger.Info("portfolio export queued", slog.Uint64("portfolio_id", uint64(portfolio.ID)))
	c.JSON(http.StatusAccepted, gin.H{"status": ExportStatusPending})
}

// GET /v1/portfolios/:id/download (authenticated, owner only)
func (h *PortfolioHandler) GetDownloadLink(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}

	if portfolio.ExportStatus != ExportStatusCompleted || portfolio.ExportObjectKey == "" {
		NotFound(c, "export not ready")
		return
	}

	url, err := h.storage.GeneratePresignedURL(c.Request.Context(), portfolio.ExportObjectKey, 15*time.Minute)
	if err != nil {
		Internal(c, "failed to generate download link")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "expiresIn": int((15 * time.Minute).Seconds())})
}

// POST /v1/portfolios/:id/share (authenticated, owner only)
// Creates (or returns) the public slug for a portfolio.
func (h *PortfolioHandler) SharePortfolio(c *gin.Context) {
	portfolio, ok := h.ownedPortfolio(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var share database.PortfolioShare
	err := h.db.WithContext(ctx).
		Where("portfolio_id = ? AND is_active = ?", portfolio.ID, true).
		First(&share).Error
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		share = database.PortfolioShare{
			PortfolioID: portfolio.ID,
			Slug:        strings.ReplaceAll(uuid.NewString(), "-", "")[:12],
			IsActive:    true,
		}
		if err := h.db.WithContext(ctx).Create(&share).Error; err != nil {
			Internal(c, "failed to create share link")
			return
		}
	default:
		Internal(c, "failed to query share link")
		return
	}

	c.JSON(http.StatusOK, gin.H{"slug": share.Slug})
}

// GET /v1/p/:slug (public)
func (h *PortfolioHandler) GetSharedPortfolio(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		BadRequest(c, "missing slug")
		return
	}

	ctx := c.Request.Context()
	var share database.PortfolioShare
	if err := h.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "portfolio not found")
			return
		}
		Internal(c, "failed to query share link")
		return
	}

	var portfolio database.Portfolio
	if err := h.db.WithContext(ctx).First(&portfolio, share.PortfolioID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "portfolio not found")
			return
		}
		Internal(c, "failed to query portfolio")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":      portfolio.Title,
		"templateId": portfolio.TemplateID,
		"data":       portfolio.Data,
	})
}

// ownedPortfolio loads the :id portfolio and enforces ownership.
func (h *PortfolioHandler) ownedPortfolio(c *gin.Context) (*database.Portfolio, bool) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return nil, false
	}
	id, ok := idParam(c)
	if !ok {
		return nil, false
	}

	var portfolio database.Portfolio
	if err := h.db.WithContext(c.Request.Context()).First(&portfolio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "portfolio not found")
			return nil, false
		}
		Internal(c, "failed to query portfolio")
		return nil, false
	}
	if portfolio.UserID != userID {
		Forbidden(c, "access denied")
		return nil, false
	}
	return &portfolio, true
}
