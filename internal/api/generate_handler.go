package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"talentd/internal/ai"
	"talentd/internal/api/middleware"
	"talentd/internal/database"
	"talentd/internal/metrics"
)

const generateRateLimitPerHour = 30

// GenerateHandler runs AI content generation for admins and optionally
// persists the result as a listing row.
type GenerateHandler struct {
	db        *gorm.DB
	ai        *ai.Service
	redis     redis.UniversalClient
	sanitizer *bluemonday.Policy
}

func NewGenerateHandler(db *gorm.DB, aiService *ai.Service, redisClient redis.UniversalClient) *GenerateHandler {
	return &GenerateHandler{
		db:        db,
		ai:        aiService,
		redis:     redisClient,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

type generateRequest struct {
	Type    ai.ContentType     `json:"type" binding:"required"`
	Prompt  string             `json:"prompt" binding:"required"`
	Options ai.GenerateOptions `json:"options"`
	Save    bool               `json:"save"`
}

// POST /v1/ai/generate (admin)
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	logger := middleware.LoggerFromContext(c).With(slog.String("content_type", string(req.Type)))

	rateKey := fmt.Sprintf("rate:ai:generate:%d:%s", userID, time.Now().UTC().Format("2006010215"))
	count, err := incrWithTTL(ctx, h.redis, rateKey, time.Hour)
	if err != nil {
		count = 0
	}
	if count > generateRateLimitPerHour {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "generation rate limit exceeded"})
		return
	}

	result, err := h.ai.GenerateContent(ctx, ai.ContentRequest{
		Type:    req.Type,
		Prompt:  req.Prompt,
		Options: req.Options,
	})
	metrics.ObserveGeneration(string(req.Type), err)
	if err != nil {
		logger.Error("content generation failed", slog.Any("error", err))
		Internal(c, "content generation failed")
		return
	}

	h.sanitizeMarkup(result)

	response := gin.H{"content": result, "saved": false}
	if req.Save {
		id, saved, err := h.persist(ctx, req.Type, result)
		if err != nil {
			logger.Error("persist generated content failed", slog.Any("error", err))
			Internal(c, "failed to save generated content")
			return
		}
		response["saved"] = saved
		if saved {
			response["id"] = id
			logger.Info("generated content saved", slog.Uint64("id", uint64(id)))
		}
	}

	c.JSON(http.StatusOK, response)
}

// sanitizeMarkup strips dangerous HTML from the string fields the frontend
// renders as rich content.
func (h *GenerateHandler) sanitizeMarkup(result map[string]any) {
	for _, key := range []string{"content", "description", "solution", "htmlCode"} {
		if raw, ok := result[key].(string); ok {
			result[key] = h.sanitizer.Sanitize(raw)
		}
	}
}

// persist stores the generated object as a typed row. Content types without a
// listing table (portfolio-website, advertising-template) are returned to the
// caller only.
func (h *GenerateHandler) persist(ctx context.Context, contentType ai.ContentType, result map[string]any) (uint, bool, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return 0, false, fmt.Errorf("encode generated content: %w", err)
	}

	switch contentType {
	case ai.TypeJob, ai.TypeInternship:
		var req jobRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return 0, false, fmt.Errorf("decode generated job: %w", err)
		}
		job := jobFromRequest(req)
		job.IsInternship = contentType == ai.TypeInternship
		job.IsAIGenerated = true
		if err := h.db.WithContext(ctx).Create(&job).Error; err != nil {
			return 0, false, err
		}
		return job.ID, true, nil

	case ai.TypeArticle:
		var req articleRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return 0, false, fmt.Errorf("decode generated article: %w", err)
		}
		article := database.Article{
			Title:         req.Title,
			Content:       req.Content,
			Excerpt:       req.Excerpt,
			Author:        req.Author,
			Category:      req.Category,
			Tags:          req.Tags,
			ReadTime:      req.ReadTime,
			FeaturedImage: req.FeaturedImage,
			IsAIGenerated: true,
		}
		if err := h.db.WithContext(ctx).Create(&article).Error; err != nil {
			return 0, false, err
		}
		return article.ID, true, nil

	case ai.TypeRoadmap:
		var req struct {
			roadmapRequest
			FlowchartData json.RawMessage `json:"flowchartData"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return 0, false, fmt.Errorf("decode generated roadmap: %w", err)
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
			FlowchartData:  []byte(req.FlowchartData),
			IsAIGenerated:  true,
		}
		if err := h.db.WithContext(ctx).Create(&roadmap).Error; err != nil {
			return 0, false, err
		}
		return roadmap.ID, true, nil

	case ai.TypeDsaProblem:
		var problem database.DsaProblem
		if err := json.Unmarshal(raw, &problem); err != nil {
			return 0, false, fmt.Errorf("decode generated problem: %w", err)
		}
		problem.IsAIGenerated = true
		if err := h.db.WithContext(ctx).Create(&problem).Error; err != nil {
			return 0, false, err
		}
		return problem.ID, true, nil

	case ai.TypeDsaTopic:
		var topic database.DsaTopic
		if err := json.Unmarshal(raw, &topic); err != nil {
			return 0, false, fmt.Errorf("decode generated topic: %w", err)
		}
		if err := h.db.WithContext(ctx).Create(&topic).Error; err != nil {
			return 0, false, err
		}
		return topic.ID, true, nil

	case ai.TypeDsaCompany:
		var company database.DsaCompany
		if err := json.Unmarshal(raw, &company); err != nil {
			return 0, false, fmt.Errorf("decode generated company: %w", err)
		}
		if err := h.db.WithContext(ctx).Create(&company).Error; err != nil {
			return 0, false, err
		}
		return company.ID, true, nil

	case ai.TypeDsaSheet:
		var sheet database.DsaSheet
		if err := json.Unmarshal(raw, &sheet); err != nil {
			return 0, false, fmt.Errorf("decode generated sheet: %w", err)
		}
		if err := h.db.WithContext(ctx).Create(&sheet).Error; err != nil {
			return 0, false, err
		}
		return sheet.ID, true, nil

	case ai.TypeScholarship:
		var req struct {
			scholarshipRequest
			Deadline string `json:"deadline"`
		}
		if err := json.Unmarshal(raw, &req); err != nil {
			return 0, false, fmt.Errorf("decode generated scholarship: %w", err)
		}
		scholarship := scholarshipFromRequest(req.scholarshipRequest)
		if req.Deadline != "" {
			if parsed, err := time.Parse(time.RFC3339, req.Deadline); err == nil {
				scholarship.Deadline = &parsed
			} else if parsed, err := time.Parse("2006-01-02", req.Deadline); err == nil {
				scholarship.Deadline = &parsed
			}
		}
		scholarship.IsAIGenerated = true
		if err := h.db.WithContext(ctx).Create(&scholarship).Error; err != nil {
			return 0, false, err
		}
		return scholarship.ID, true, nil
	}

	return 0, false, nil
}
