package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentd/internal/ai"
	"talentd/internal/api/middleware"
	"talentd/internal/database"
	"talentd/internal/storage"
)

// ResumeHandler handles resume upload, ATS analysis and AI-assisted rewrite.
type ResumeHandler struct {
	db             *gorm.DB
	ai             *ai.Service
	storage        *storage.Client
	clamdAddr      string
	maxResumeBytes int64
}

func NewResumeHandler(db *gorm.DB, aiService *ai.Service, storageClient *storage.Client, clamdAddr string, maxResumeBytes int64) *ResumeHandler {
	if maxResumeBytes <= 0 {
		maxResumeBytes = 10 << 20
	}
	return &ResumeHandler{
		db:             db,
		ai:             aiService,
		storage:        storageClient,
		clamdAddr:      clamdAddr,
		maxResumeBytes: maxResumeBytes,
	}
}

// POST /v1/resume/analyze (authenticated, multipart)
// Accepts a resume file plus an optional job description, scans it, extracts
// the text, runs the ATS analysis and persists the report.
func (h *ResumeHandler) AnalyzeResume(c *gin.Context) {
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
	if file.Size > h.maxResumeBytes {
		BadRequest(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxResumeBytes))
		return
	}
	jobDescription := c.PostForm("jobDescription")

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	reader, err := file.Open()
	if err != nil {
		Internal(c, "failed to open file")
		return
	}
	data, err := io.ReadAll(io.LimitReader(reader, h.maxResumeBytes+1))
	reader.Close()
	if err != nil {
		Internal(c, "failed to read file")
		return
	}
	if int64(len(data)) > h.maxResumeBytes {
		BadRequest(c, fmt.Sprintf("file exceeds the %d byte limit", h.maxResumeBytes))
		return
	}

	if err := scanWithClamd(h.clamdAddr, data); err != nil {
		logger.Warn("resume rejected by scanner", slog.Any("error", err))
		BadRequest(c, "malicious file detected")
		return
	}

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("resumes/%d/%s%s", userID, uuid.NewString(), filepath.Ext(file.Filename))
	if _, err := h.storage.UploadFile(ctx, objectKey, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		logger.Error("store resume failed", slog.Any("error", err))
		Internal(c, "failed to store resume")
		return
	}

	resumeText, err := h.ai.ExtractText(ctx, data, contentType)
	if err != nil {
		logger.Error("extract resume text failed", slog.Any("error", err))
		Internal(c, "failed to extract resume text")
		return
	}
	if strings.TrimSpace(resumeText) == "" {
		BadRequest(c, "resume appears to be empty")
		return
	}

	report, err := h.ai.AnalyzeResume(ctx, resumeText, jobDescription)
	if err != nil {
		logger.Error("resume analysis failed", slog.Any("error", err))
		Internal(c, "resume analysis failed")
		return
	}

	reportJSON, err := json.Marshal(report)
	if err != nil {
		Internal(c, "failed to encode report")
		return
	}
	analysis := database.ResumeAnalysis{
		UserID:         userID,
		FileName:       filepath.Base(file.Filename),
		ResumeText:     resumeText,
		JobDescription: jobDescription,
		AtsScore:       report.AtsScore,
		Report:         reportJSON,
	}
	if err := h.db.WithContext(ctx).Create(&analysis).Error; err != nil {
		logger.Error("persist analysis failed", slog.Any("error", err))
		Internal(c, "failed to save analysis")
		return
	}

	logger.Info("resume analyzed", slog.Int("ats_score", report.AtsScore))
	c.JSON(http.StatusOK, gin.H{
		"id":     analysis.ID,
		"report": report,
	})
}

// GET /v1/resume/analyses (authenticated)
func (h *ResumeHandler) ListAnalyses(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var analyses []database.ResumeAnalysis
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").Limit(20).
		Find(&analyses).Error; err != nil {
		Internal(c, "failed to list analyses")
		return
	}

	items := make([]gin.H, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, gin.H{
			"id":        a.ID,
			"fileName":  a.FileName,
			"atsScore":  a.AtsScore,
			"createdAt": a.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GET /v1/resume/analyses/:id (authenticated)
func (h *ResumeHandler) GetAnalysis(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var analysis database.ResumeAnalysis
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND user_id = ?", id, userID).
		First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "analysis not found")
			return
		}
		Internal(c, "failed to query analysis")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

type improveRequest struct {
	AnalysisID  uint     `json:"analysisId"`
	ResumeText  string   `json:"resumeText"`
	Suggestions []string `json:"suggestions"`
	Keywords    []string `json:"keywords"`
}

// POST /v1/resume/improve (authenticated)
// Rewrites the resume with the model. When the model fails, the caller still
// gets the original text back with the fallback flag set.
func (h *ResumeHandler) ImproveResume(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.Uint64("user_id", uint64(userID)))

	resumeText := req.ResumeText
	if resumeText == "" && req.AnalysisID != 0 {
		var analysis database.ResumeAnalysis
		if err := h.db.WithContext(ctx).
			Where("id = ? AND user_id = ?", req.AnalysisID, userID).
			First(&analysis).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				NotFound(c, "analysis not found")
				return
			}
			Internal(c, "failed to query analysis")
			return
		}
		resumeText = analysis.ResumeText
		if len(req.Suggestions) == 0 {
			var report ai.AnalysisReport
			if err := json.Unmarshal(analysis.Report, &report); err == nil {
				req.Suggestions = report.Suggestions
			}
		}
	}
	if strings.TrimSpace(resumeText) == "" {
		BadRequest(c, "resume text is required")
		return
	}

	result, err := h.ai.ImproveResume(ctx, resumeText, req.Suggestions, req.Keywords)
	if err != nil {
		logger.Warn("resume improvement fell back to original", slog.Any("error", err))
	}

	c.JSON(http.StatusOK, gin.H{
		"improvedText": result.Text,
		"fallback":     result.Fallback,
	})
}
