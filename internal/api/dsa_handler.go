package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"talentd/internal/database"
)

// DsaHandler serves the DSA corner: problems, topics, companies, sheets and
// per-user solved tracking.
type DsaHandler struct {
	db *gorm.DB
}

func NewDsaHandler(db *gorm.DB) *DsaHandler {
	return &DsaHandler{db: db}
}

// GET /v1/dsa/problems
func (h *DsaHandler) ListProblems(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context())
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	page, size := paginationParams(c)
	var problems []database.DsaProblem
	if err := query.Order("id ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&problems).Error; err != nil {
		Internal(c, "failed to list problems")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": problems, "page": page})
}

// GET /v1/dsa/problems/:id
func (h *DsaHandler) GetProblem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var problem database.DsaProblem
	if err := h.db.WithContext(c.Request.Context()).First(&problem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "problem not found")
			return
		}
		Internal(c, "failed to query problem")
		return
	}
	c.JSON(http.StatusOK, problem)
}

// GET /v1/dsa/topics
func (h *DsaHandler) ListTopics(c *gin.Context) {
	var topics []database.DsaTopic
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").Find(&topics).Error; err != nil {
		Internal(c, "failed to list topics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": topics})
}

// GET /v1/dsa/companies
func (h *DsaHandler) ListCompanies(c *gin.Context) {
	var companies []database.DsaCompany
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").Find(&companies).Error; err != nil {
		Internal(c, "failed to list companies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": companies})
}

// GET /v1/dsa/sheets
func (h *DsaHandler) ListSheets(c *gin.Context) {
	var sheets []database.DsaSheet
	if err := h.db.WithContext(c.Request.Context()).
		Order("id ASC").Find(&sheets).Error; err != nil {
		Internal(c, "failed to list sheets")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": sheets})
}

// POST /v1/dsa/problems/:id/solved (authenticated)
// Marks a problem solved for the current user. Repeat calls are no-ops.
func (h *DsaHandler) MarkSolved(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	var problem database.DsaProblem
	if err := h.db.WithContext(ctx).First(&problem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "problem not found")
			return
		}
		Internal(c, "failed to query problem")
		return
	}

	record := database.SolvedProblem{UserID: userID, ProblemID: problem.ID}
	if err := h.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error; err != nil {
		Internal(c, "failed to mark solved")
		return
	}
	c.Status(http.StatusNoContent)
}

// DELETE /v1/dsa/problems/:id/solved (authenticated)
func (h *DsaHandler) UnmarkSolved(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND problem_id = ?", userID, id).
		Delete(&database.SolvedProblem{}).Error; err != nil {
		Internal(c, "failed to unmark solved")
		return
	}
	c.Status(http.StatusNoContent)
}

type dsaProblemRequest struct {
	Title           string         `json:"title" binding:"required"`
	Description     string         `json:"description"`
	Difficulty      string         `json:"difficulty"`
	Category        string         `json:"category"`
	Solution        string         `json:"solution"`
	Hints           datatypes.JSON `json:"hints"`
	TimeComplexity  string         `json:"timeComplexity"`
	SpaceComplexity string         `json:"spaceComplexity"`
	Tags            datatypes.JSON `json:"tags"`
	Companies       datatypes.JSON `json:"companies"`
}

func dsaProblemFromRequest(req dsaProblemRequest) database.DsaProblem {
	return database.DsaProblem{
		Title:           req.Title,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		Category:        req.Category,
		Solution:        req.Solution,
		Hints:           req.Hints,
		TimeComplexity:  req.TimeComplexity,
		SpaceComplexity: req.SpaceComplexity,
		Tags:            req.Tags,
		Companies:       req.Companies,
	}
}

// POST /v1/dsa/problems (admin)
func (h *DsaHandler) CreateProblem(c *gin.Context) {
	var req dsaProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	problem := dsaProblemFromRequest(req)
	if err := h.db.WithContext(c.Request.Context()).Create(&problem).Error; err != nil {
		Internal(c, "failed to create problem")
		return
	}
	c.JSON(http.StatusCreated, problem)
}

// PUT /v1/dsa/problems/:id (admin)
func (h *DsaHandler) UpdateProblem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dsaProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var problem database.DsaProblem
	if err := h.db.WithContext(c.Request.Context()).First(&problem, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "problem not found")
			return
		}
		Internal(c, "failed to query problem")
		return
	}

	updated := dsaProblemFromRequest(req)
	updated.ID = problem.ID
	updated.CreatedAt = problem.CreatedAt
	updated.IsAIGenerated = problem.IsAIGenerated
	if err := h.db.WithContext(c.Request.Context()).Save(&updated).Error; err != nil {
		Internal(c, "failed to update problem")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /v1/dsa/problems/:id (admin)
func (h *DsaHandler) DeleteProblem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.DsaProblem{}, id).Error; err != nil {
		Internal(c, "failed to delete problem")
		return
	}
	c.Status(http.StatusNoContent)
}

type dsaTopicRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	ProblemCount int    `json:"problemCount"`
	Icon         string `json:"icon"`
}

// POST /v1/dsa/topics (admin)
func (h *DsaHandler) CreateTopic(c *gin.Context) {
	var req dsaTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	topic := database.DsaTopic{
		Name:         req.Name,
		Description:  req.Description,
		Difficulty:   req.Difficulty,
		ProblemCount: req.ProblemCount,
		Icon:         req.Icon,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&topic).Error; err != nil {
		Internal(c, "failed to create topic")
		return
	}
	c.JSON(http.StatusCreated, topic)
}

// PUT /v1/dsa/topics/:id (admin)
func (h *DsaHandler) UpdateTopic(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dsaTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var topic database.DsaTopic
	if err := h.db.WithContext(c.Request.Context()).First(&topic, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "topic not found")
			return
		}
		Internal(c, "failed to query topic")
		return
	}

	topic.Name = req.Name
	topic.Description = req.Description
	topic.Difficulty = req.Difficulty
	topic.ProblemCount = req.ProblemCount
	topic.Icon = req.Icon
	if err := h.db.WithContext(c.Request.Context()).Save(&topic).Error; err != nil {
		Internal(c, "failed to update topic")
		return
	}
	c.JSON(http.StatusOK, topic)
}

// DELETE /v1/dsa/topics/:id (admin)
func (h *DsaHandler) DeleteTopic(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.DsaTopic{}, id).Error; err != nil {
		Internal(c, "failed to delete topic")
		return
	}
	c.Status(http.StatusNoContent)
}

type dsaCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Logo         string `json:"logo"`
	ProblemCount int    `json:"problemCount"`
}

// POST /v1/dsa/companies (admin)
func (h *DsaHandler) CreateCompany(c *gin.Context) {
	var req dsaCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	company := database.DsaCompany{
		Name:         req.Name,
		Description:  req.Description,
		Logo:         req.Logo,
		ProblemCount: req.ProblemCount,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&company).Error; err != nil {
		Internal(c, "failed to create company")
		return
	}
	c.JSON(http.StatusCreated, company)
}

// PUT /v1/dsa/companies/:id (admin)
func (h *DsaHandler) UpdateCompany(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dsaCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var company database.DsaCompany
	if err := h.db.WithContext(c.Request.Context()).First(&company, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "company not found")
			return
		}
		Internal(c, "failed to query company")
		return
	}

	company.Name = req.Name
	company.Description = req.Description
	company.Logo = req.Logo
	company.ProblemCount = req.ProblemCount
	if err := h.db.WithContext(c.Request.Context()).Save(&company).Error; err != nil {
		Internal(c, "failed to update company")
		return
	}
	c.JSON(http.StatusOK, company)
}

// DELETE /v1/dsa/companies/:id (admin)
func (h *DsaHandler) DeleteCompany(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.DsaCompany{}, id).Error; err != nil {
		Internal(c, "failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}

type dsaSheetRequest struct {
	Name         string         `json:"name" binding:"required"`
	Description  string         `json:"description"`
	Creator      string         `json:"creator"`
	ProblemCount int            `json:"problemCount"`
	Difficulty   string         `json:"difficulty"`
	Topics       datatypes.JSON `json:"topics"`
}

// POST /v1/dsa/sheets (admin)
func (h *DsaHandler) CreateSheet(c *gin.Context) {
	var req dsaSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	sheet := database.DsaSheet{
		Name:         req.Name,
		Description:  req.Description,
		Creator:      req.Creator,
		ProblemCount: req.ProblemCount,
		Difficulty:   req.Difficulty,
		Topics:       req.Topics,
	}
	if err := h.db.WithContext(c.Request.Context()).Create(&sheet).Error; err != nil {
		Internal(c, "failed to create sheet")
		return
	}
	c.JSON(http.StatusCreated, sheet)
}

// PUT /v1/dsa/sheets/:id (admin)
func (h *DsaHandler) UpdateSheet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req dsaSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var sheet database.DsaSheet
	if err := h.db.WithContext(c.Request.Context()).First(&sheet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "sheet not found")
			return
		}
		Internal(c, "failed to query sheet")
		return
	}

	sheet.Name = req.Name
	sheet.Description = req.Description
	sheet.Creator = req.Creator
	sheet.ProblemCount = req.ProblemCount
	sheet.Difficulty = req.Difficulty
	sheet.Topics = req.Topics
	if err := h.db.WithContext(c.Request.Context()).Save(&sheet).Error; err != nil {
		Internal(c, "failed to update sheet")
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// DELETE /v1/dsa/sheets/:id (admin)
func (h *DsaHandler) DeleteSheet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.DsaSheet{}, id).Error; err != nil {
		Internal(c, "failed to delete sheet")
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /v1/dsa/solved (authenticated)
func (h *DsaHandler) ListSolved(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}

	var solved []database.SolvedProblem
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).Find(&solved).Error; err != nil {
		Internal(c, "failed to list solved problems")
		return
	}

	ids := make([]uint, 0, len(solved))
	for _, s := range solved {
		ids = append(ids, s.ProblemID)
	}
	c.JSON(http.StatusOK, gin.H{"problemIds": ids})
}
