package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentd/internal/ai"
	"talentd/internal/api/middleware"
	"talentd/internal/database"
)

// RoadmapHandler serves learning roadmaps, their reviews and on-demand
// flowchart generation.
type RoadmapHandler struct {
	db *gorm.DB
	ai *ai.Service
}

func NewRoadmapHandler(db *gorm.DB, aiService *ai.Service) *RoadmapHandler {
	return &RoadmapHandler{db: db, ai: aiService}
}

type roadmapRequest struct {
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	Content        string         `json:"content"`
	Difficulty     string         `json:"difficulty"`
	EstimatedTime  string         `json:"estimatedTime"`
	EducationLevel string         `json:"educationLevel"`
	Technologies   datatypes.JSON `json:"technologies"`
	Steps          datatypes.JSON `json:"steps"`
	Image          string         `json:"image"`
}

// GET /v1/roadmaps
func (h *RoadmapHandler) ListRoadmaps(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context())
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	page, size := paginationParams(c)
	var roadmaps []database.Roadmap
	if err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&roadmaps).Error; err != nil {
		Internal(c, "failed to list roadmaps")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": roadmaps, "page": page})
}

// GET /v1/roadmaps/:id
func (h *RoadmapHandler) GetRoadmap(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var roadmap database.Roadmap
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Reviews").First(&roadmap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "roadmap not found")
			return
		}
		Internal(c, "failed to query roadmap")
		return
	}
	c.JSON(http.StatusOK, roadmap)
}

// POST /v1/roadmaps (admin)
func (h *RoadmapHandler) CreateRoadmap(c *gin.Context) {
	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	roadmap := database.Roadmap{
		Title:          req.Title,
		Description:    req.Description,
		Content:        req.Content,
		Difficulty:     req.Difficulty,
		EstimatedTime:  req.EstimatedTime,
		EducationLevel: req.EducationLevel,
		Technologies:   req.Technologies,
		Steps:          req.Steps,
		Image:          req.Image,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&roadmap).Error; err != nil {
		Internal(c, "failed to create roadmap")
		return
	}
	c.JSON(http.StatusCreated, roadmap)
}

// PUT /v1/roadmaps/:id (admin)
func (h *RoadmapHandler) UpdateRoadmap(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req roadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var roadmap database.Roadmap
	if err := h.db.WithContext(c.Request.Context()).First(&roadmap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "roadmap not found")
			return
		}
		Internal(c, "failed to query roadmap")
		return
	}

	roadmap.Title = req.Title
	roadmap.Description = req.Description
	roadmap.Content = req.Content
	roadmap.Difficulty = req.Difficulty
	roadmap.EstimatedTime = req.EstimatedTime
	roadmap.EducationLevel = req.EducationLevel
	roadmap.Technologies = req.Technologies
	roadmap.Steps = req.Steps
	roadmap.Image = req.Image
	if err := h.db.WithContext(c.Request.Context()).Save(&roadmap).Error; err != nil {
		Internal(c, "failed to update roadmap")
		return
	}
	c.JSON(http.StatusOK, roadmap)
}

// DELETE /v1/roadmaps/:id (admin)
func (h *RoadmapHandler) DeleteRoadmap(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.Roadmap{}, id).Error; err != nil {
		Internal(c, "failed to delete roadmap")
		return
	}
	c.Status(http.StatusNoContent)
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2048"`
}

// POST /v1/roadmaps/:id/reviews (authenticated)
func (h *RoadmapHandler) CreateReview(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	var roadmap database.Roadmap
	if err := h.db.WithContext(ctx).First(&roadmap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "roadmap not found")
			return
		}
		Internal(c, "failed to query roadmap")
		return
	}

	review := database.RoadmapReview{
		RoadmapID: roadmap.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.db.WithContext(ctx).Create(&review).Error; err != nil {
		Internal(c, "failed to create review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// POST /v1/roadmaps/:id/flowchart (admin)
// Generates a node/edge flowchart from the roadmap metadata and stores it.
func (h *RoadmapHandler) GenerateFlowchart(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c)

	var roadmap database.Roadmap
	if err := h.db.WithContext(ctx).First(&roadmap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "roadmap not found")
			return
		}
		Internal(c, "failed to query roadmap")
		return
	}

	var technologies []string
	if len(roadmap.Technologies) > 0 {
		_ = json.Unmarshal(roadmap.Technologies, &technologies)
	}

	chart, err := h.ai.GenerateFlowchart(ctx, ai.RoadmapInfo{
		Title:          roadmap.Title,
		Description:    roadmap.Description,
		Difficulty:     roadmap.Difficulty,
		EstimatedTime:  roadmap.EstimatedTime,
		EducationLevel: roadmap.EducationLevel,
		Technologies:   technologies,
	})
	if err != nil {
		logger.Error("generate flowchart failed", slog.Uint64("roadmap_id", uint64(roadmap.ID)), slog.Any("error", err))
		Internal(c, "failed to generate flowchart")
		return
	}
	if chart.DroppedEdges > 0 {
		logger.Warn("flowchart had dangling edges",
			slog.Uint64("roadmap_id", uint64(roadmap.ID)),
			slog.Int("dropped", chart.DroppedEdges),
		)
	}

	data, err := json.Marshal(chart)
	if err != nil {
		Internal(c, "failed to encode flowchart")
		return
	}
	if err := h.db.WithContext(ctx).Model(&roadmap).
		Update("flowchart_data", datatypes.JSON(data)).Error; err != nil {
		Internal(c, "failed to store flowchart")
		return
	}

	c.JSON(http.StatusOK, chart)
}
