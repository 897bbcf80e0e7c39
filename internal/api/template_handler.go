package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"talentd/internal/api/middleware"
	"talentd/internal/database"
	"talentd/internal/tasks"
	"talentd/internal/templates"
)

// TemplateHandler manages portfolio template archives: upload/install,
// listing and removal.
type TemplateHandler struct {
	db        *gorm.DB
	templates *templates.Service
	asynq     *asynq.Client
	clamdAddr string
}

func NewTemplateHandler(db *gorm.DB, templateService *templates.Service, asynqClient *asynq.Client, clamdAddr string) *TemplateHandler {
	return &TemplateHandler{
		db:        db,
		templates: templateService,
		asynq:     asynqClient,
		clamdAddr: clamdAddr,
	}
}

// GET /v1/templates
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	var models []database.Template
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").Find(&models).Error; err != nil {
		Internal(c, "failed to list templates")
		return
	}

	items := make([]gin.H, 0, len(models))
	for _, t := range models {
		items = append(items, gin.H{
			"id":              t.ID,
			"templateId":      t.TemplateID,
			"name":            t.Name,
			"description":     t.Description,
			"version":         t.Version,
			"category":        t.Category,
			"isPremium":       t.IsPremium,
			"previewImageUrl": t.PreviewImageURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /v1/templates/:id
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var model database.Template
	if err := h.db.WithContext(c.Request.Context()).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "template not found")
			return
		}
		Internal(c, "failed to query template")
		return
	}
	c.JSON(http.StatusOK, model)
}

// POST /v1/templates (admin, multipart)
// Accepts a zip archive, validates its manifest, installs it under the
// templates root and records the manifest metadata. Re-uploading an archive
// with the same manifest id replaces the previous install.
func (h *TemplateHandler) UploadTemplate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		BadRequest(c, "missing file")
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	if file.Size > h.templates.MaxArchiveBytes() {
		BadRequest(c, fmt.Sprintf("archive exceeds the %d byte limit", h.templates.MaxArchiveBytes()))
		return
	}

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}

	if err := scanWithClamd(h.clamdAddr, data); err != nil {
		logger.Warn("template archive rejected by scanner", slog.Any("error", err))
		BadRequest(c, "malicious file detected")
		return
	}

	archivePath, cleanup, err := writeTempArchive(data)
	if err != nil {
		logger.Error("stage template archive failed", slog.Any("error", err))
		Internal(c, "failed to stage archive")
		return
	}
	defer cleanup()

	manifest, err := h.templates.ExtractManifest(archivePath)
	if err != nil {
		logger.Info("template manifest rejected", slog.Any("error", err))
		BadRequest(c, err.Error())
		return
	}

	if _, err := h.templates.Install(archivePath, manifest); err != nil {
		logger.Error("template install failed", slog.String("template_id", manifest.ID), slog.Any("error", err))
		Internal(c, "failed to install template")
		return
	}

	features, err := json.Marshal(manifest.Features)
	if err != nil {
		features = []byte("[]")
	}
	model := database.Template{
		TemplateID:  manifest.ID,
		Name:        manifest.Name,
		Description: manifest.Description,
		Version:     manifest.Version,
		Category:    manifest.Category,
		EntryFile:   manifest.EntryFile,
		Features:    features,
		IsPremium:   manifest.IsPremium,
		UserID:      userID,
	}

	// Same manifest id means the row is updated in place, mirroring the
	// full-replace install on disk.
	var existing database.Template
	err = h.db.WithContext(ctx).Where("template_id = ?", manifest.ID).First(&existing).Error
	switch {
	case err == nil:
		model.ID = existing.ID
		model.CreatedAt = existing.CreatedAt
		if err := h.db.WithContext(ctx).Save(&model).Error; err != nil {
			Internal(c, "failed to update template record")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := h.db.WithContext(ctx).Create(&model).Error; err != nil {
			Internal(c, "failed to create template record")
			return
		}
	default:
		Internal(c, "failed to query template record")
		return
	}

	if task, err := tasks.NewTemplatePreviewTask(model.ID, middleware.GetCorrelationID(c)); err == nil {
		if _, err := h.asynq.EnqueueContext(ctx, task); err != nil {
			logger.Warn("enqueue template preview failed", slog.Any("error", err))
		}
	}

	logger.Info("template installed",
		slog.String("template_id", manifest.ID),
		slog.String("version", manifest.Version),
	)
	c.JSON(http.StatusCreated, gin.H{
		"id":         model.ID,
		"templateId": manifest.ID,
		"version":    manifest.Version,
	})
}

// DELETE /v1/templates/:id (admin)
// Removes the install directory and the record. Deleting a template that is
// already gone from disk still succeeds.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var model database.Template
	if err := h.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "template not found")
			return
		}
		Internal(c, "failed to query template")
		return
	}

	if err := h.templates.Delete(model.TemplateID); err != nil {
		Internal(c, "failed to remove template files")
		return
	}
	if err := h.db.WithContext(ctx).Delete(&model).Error; err != nil {
		Internal(c, "failed to delete template record")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /internal/templates/:id/entry
// Serves the installed template's entry file so the preview renderer can load
// it in a headless browser.
func (h *TemplateHandler) ServeEntry(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var model database.Template
	if err := h.db.WithContext(c.Request.Context()).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "template not found")
			return
		}
		Internal(c, "failed to query template")
		return
	}

	entryPath := filepath.Join(h.templates.InstalledPath(model.TemplateID), filepath.FromSlash(model.EntryFile))
	if _, err := os.Stat(entryPath); err != nil {
		NotFound(c, "entry file missing on disk")
		return
	}
	c.File(entryPath)
}

func writeTempArchive(data []byte) (string, func(), error) {
	tmp, err := os.CreateTemp("", "template-*.zip")
	if err != nil {
		return "", nil, fmt.Errorf("create temp archive: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("write temp archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", nil, fmt.Errorf("close temp archive: %w", err)
	}
	name := tmp.Name()
	return name, func() { os.Remove(name) }, nil
}
