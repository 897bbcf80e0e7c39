package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"talentd/internal/database"
)

// JobHandler serves job and internship listings. Reads are public; writes are
// admin-only and wired behind the admin middleware in routes.
type JobHandler struct {
	db *gorm.DB
}

func NewJobHandler(db *gorm.DB) *JobHandler {
	return &JobHandler{db: db}
}

type jobRequest struct {
	Title            string         `json:"title" binding:"required"`
	Company          string         `json:"company" binding:"required"`
	Location         string         `json:"location"`
	SalaryRange      string         `json:"salaryRange"`
	JobType          string         `json:"jobType"`
	ExperienceLevel  string         `json:"experienceLevel"`
	Description      string         `json:"description"`
	Requirements     string         `json:"requirements"`
	Responsibilities string         `json:"responsibilities"`
	Benefits         string         `json:"benefits"`
	Skills           datatypes.JSON `json:"skills"`
	CompanyWebsite   string         `json:"companyWebsite"`
	ApplicationURL   string         `json:"applicationUrl"`
	CompanyLogo      string         `json:"companyLogo"`
	IsInternship     bool           `json:"isInternship"`
}

// GET /v1/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	h.list(c, false)
}

// GET /v1/internships
func (h *JobHandler) ListInternships(c *gin.Context) {
	h.list(c, true)
}

func (h *JobHandler) list(c *gin.Context, internships bool) {
	query := h.db.WithContext(c.Request.Context()).
		Where("is_internship = ? AND is_active = ?", internships, true)

	if location := c.Query("location"); location != "" {
		query = query.Where("location ILIKE ?", "%"+location+"%")
	}
	if level := c.Query("experienceLevel"); level != "" {
		query = query.Where("experience_level = ?", level)
	}
	if jobType := c.Query("jobType"); jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR company ILIKE ?", like, like)
	}

	page, size := paginationParams(c)
	var jobs []database.Job
	if err := query.Order("created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&jobs).Error; err != nil {
		Internal(c, "failed to list jobs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": jobs, "page": page})
}

// GET /v1/jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var job database.Job
	if err := h.db.WithContext(c.Request.Context()).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "job not found")
			return
		}
		Internal(c, "failed to query job")
		return
	}
	c.JSON(http.StatusOK, job)
}

// POST /v1/jobs (admin)
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	job := jobFromRequest(req)
	if err := h.db.WithContext(c.Request.Context()).Create(&job).Error; err != nil {
		Internal(c, "failed to create job")
		return
	}
	c.JSON(http.StatusCreated, job)
}

// PUT /v1/jobs/:id (admin)
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req jobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	var job database.Job
	if err := h.db.WithContext(c.Request.Context()).First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c, "job not found")
			return
		}
		Internal(c, "failed to query job")
		return
	}

	updated := jobFromRequest(req)
	updated.ID = job.ID
	updated.CreatedAt = job.CreatedAt
	updated.IsAIGenerated = job.IsAIGenerated
	if err := h.db.WithContext(c.Request.Context()).Save(&updated).Error; err != nil {
		Internal(c, "failed to update job")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /v1/jobs/:id (admin)
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&database.Job{}, id).Error; err != nil {
		Internal(c, "failed to delete job")
		return
	}
	c.Status(http.StatusNoContent)
}

func jobFromRequest(req jobRequest) database.Job {
	return database.Job{
		Title:            req.Title,
		Company:          req.Company,
		Location:         req.Location,
		SalaryRange:      req.SalaryRange,
		JobType:          req.JobType,
		ExperienceLevel:  req.ExperienceLevel,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Skills:           req.Skills,
		CompanyWebsite:   req.CompanyWebsite,
		ApplicationURL:   req.ApplicationURL,
		CompanyLogo:      req.CompanyLogo,
		IsInternship:     req.IsInternship,
		IsActive:         true,
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func paginationParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	if size < 1 || size > 100 {
		size = 20
	}
	return page, size
}
