package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentd/internal/database"
)

// ScholarshipHandler serves scholarship listings.
type ScholarshipHandler struct {
	db *gorm.DB
}

func NewScholarshipHandler(db *gorm.DB) *ScholarshipHandler {
	return &ScholarshipHandler{db: db}
}

type scholarshipRequest struct {
	Title          string         `json:"title" binding:"required"`
	Description    string         `json:"description"`
	Provider       string         `json:"provider"`
	Amount         string         `json:"amount"`
	EducationLevel string         `json:"educationLevel"`
	Eligibility    string         `json:"eligibility"`
	Deadline       *time.Time     `json:"deadline"`
	ApplicationURL string         `json:"applicationUrl"`
	Category       string         `json:"category"`
	Tags           datatypes.JSON `json:"tags"`
	Benefits       string         `json:"benefits"`
	Requirements   string         `json:"requirements"`
	HowToApply     string         `json:"howToApply"`
	Featured       bool           `json:"featured"`
}

// GET /v1/scholarships
func (h *ScholarshipHandler) ListScholarships(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("is_active = ?", true)
	if level := c.Query("educationLevel"); level != "" {
		query = query.Where("education_level = ?", level)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if c.Query("upcoming") == "true" {
		query = query.Where("deadline IS NULL OR deadline >= ?", time.Now())
	}

	page, size := paginationParams(c)
	var scholarships []database.Scholarship
	if err := query.Order("deadline ASC NULLS LAST").
		Offset((page - 1) * size).Limit(size).
		Find(&scholarships).Error; err != nil {
		Internal(c, "failed to list scholarships")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": scholarships, "page": page})
}

// GET /v1/scholarships/:id
func (h *ScholarshipHandler) GetScholarship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var scholarship database.Scholarship
	if err := h.db.WithContext(c.Request.Context()).First(&scholarship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "scholarship not found")
			return
		}
		Internal(c, "failed to query scholarship")
		return
	}
	c.JSON(http.StatusOK, scholarship)
}

// POST /v1/scholarships (admin)
func (h *ScholarshipHandler) CreateScholarship(c *gin.Context) {
	var req scholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	scholarship := scholarshipFromRequest(req)
	if err := h.db.WithContext(c.Request.Context()).Create(&scholarship).Error; err != nil {
		Internal(c, "failed to create scholarship")
		return
	}
	c.JSON(http.StatusCreated, scholarship)
}

// PUT /v1/scholarships/:id (admin)
func (h *ScholarshipHandler) UpdateScholarship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req scholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var scholarship database.Scholarship
	if err := h.db.WithContext(c.Request.Context()).First(&scholarship, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "scholarship not found")
			return
		}
		Internal(c, "failed to query scholarship")
		return
	}

	updated := scholarshipFromRequest(req)
	updated.ID = scholarship.ID
	updated.CreatedAt = scholarship.CreatedAt
	updated.IsAIGenerated = scholarship.IsAIGenerated
	if err := h.db.WithContext(c.Request.Context()).Save(&updated).Error; err != nil {
		Internal(c, "failed to update scholarship")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /v1/scholarships/:id (admin)
func (h *ScholarshipHandler) DeleteScholarship(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.Scholarship{}, id).Error; err != nil {
		Internal(c, "failed to delete scholarship")
		return
	}
	c.Status(http.StatusNoContent)
}

func scholarshipFromRequest(req scholarshipRequest) database.Scholarship {
	return database.Scholarship{
		Title:          req.Title,
		Description:    req.Description,
		Provider:       req.Provider,
		Amount:         req.Amount,
		EducationLevel: req.EducationLevel,
		Eligibility:    req.Eligibility,
		Deadline:       req.Deadline,
		ApplicationURL: req.ApplicationURL,
		Category:       req.Category,
		Tags:           req.Tags,
		Benefits:       req.Benefits,
		Requirements:   req.Requirements,
		HowToApply:     req.HowToApply,
		Featured:       req.Featured,
		IsActive:       true,
	}
}
