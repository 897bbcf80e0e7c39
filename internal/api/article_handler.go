package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentd/internal/database"
)

// ArticleHandler serves career-advice articles.
type ArticleHandler struct {
	db *gorm.DB
}

func NewArticleHandler(db *gorm.DB) *ArticleHandler {
	return &ArticleHandler{db: db}
}

type articleRequest struct {
	Title         string         `json:"title" binding:"required"`
	Content       string         `json:"content" binding:"required"`
	Excerpt       string         `json:"excerpt"`
	Author        string         `json:"author"`
	Category      string         `json:"category"`
	Tags          datatypes.JSON `json:"tags"`
	ReadTime      string         `json:"readTime"`
	FeaturedImage string         `json:"featuredImage"`
}

// GET /v1/articles
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context())
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}

	page, size := paginationParams(c)
	var articles []database.Article
	if err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&articles).Error; err != nil {
		Internal(c, "failed to list articles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": articles, "page": page})
}

// GET /v1/articles/:id
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var article database.Article
	if err := h.db.WithContext(c.Request.Context()).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "article not found")
			return
		}
		Internal(c, "failed to query article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// POST /v1/articles (admin)
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
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
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&article).Error; err != nil {
		Internal(c, "failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// PUT /v1/articles/:id (admin)
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var article database.Article
	if err := h.db.WithContext(c.Request.Context()).First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "article not found")
			return
		}
		Internal(c, "failed to query article")
		return
	}

	article.Title = req.Title
	article.Content = req.Content
	article.Excerpt = req.Excerpt
	article.Author = req.Author
	article.Category = req.Category
	article.Tags = req.Tags
	article.ReadTime = req.ReadTime
	article.FeaturedImage = req.FeaturedImage
	if err := h.db.WithContext(c.Request.Context()).Save(&article).Error; err != nil {
		Internal(c, "failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// DELETE /v1/articles/:id (admin)
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.Article{}, id).Error; err != nil {
		Internal(c, "failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}
