package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"talentd/internal/ai"
	"talentd/internal/api/middleware"
	"talentd/internal/auth"
	"talentd/internal/config"
	"talentd/internal/storage"
	"talentd/internal/templates"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	DB          *gorm.DB
	AsynqClient *asynq.Client
	AuthService *auth.AuthService
	RedisClient *redis.Client
	Logger      *slog.Logger
	Storage     *storage.Client
	AI          *ai.Service
	Templates   *templates.Service
	Config      *config.Config
}

// RegisterRoutes registers every API route under /v1.
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.Use(middleware.CorrelationIDMiddleware(), middleware.SlogLoggerMiddleware(deps.Logger))

	authHandler := NewAuthHandler(deps.DB, deps.AuthService, deps.RedisClient, deps.Logger)
	jobHandler := NewJobHandler(deps.DB)
	articleHandler := NewArticleHandler(deps.DB)
	roadmapHandler := NewRoadmapHandler(deps.DB, deps.AI)
	dsaHandler := NewDsaHandler(deps.DB)
	scholarshipHandler := NewScholarshipHandler(deps.DB)
	generateHandler := NewGenerateHandler(deps.DB, deps.AI, deps.RedisClient)
	resumeHandler := NewResumeHandler(deps.DB, deps.AI, deps.Storage, deps.Config.Uploads.ClamdAddr, deps.Config.Uploads.MaxResumeBytes)
	templateHandler := NewTemplateHandler(deps.DB, deps.Templates, deps.AsynqClient, deps.Config.Uploads.ClamdAddr)
	portfolioHandler := NewPortfolioHandler(deps.DB, deps.AsynqClient, deps.Storage)
	wsHandler := NewWsHandler(deps.RedisClient, deps.AuthService, deps.Logger)

	authRequired := middleware.AuthMiddleware(deps.AuthService)
	adminOnly := middleware.AdminOnly()

	// Service-to-service surface: the worker loads installed template pages
	// through here when rendering previews.
	internalGroup := router.Group("/internal", middleware.InternalSecretMiddleware(deps.Config.API.InternalSecret))
	{
		internalGroup.GET("/templates/:id/entry", templateHandler.ServeEntry)
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authRequired, authHandler.Logout)
		}

		// Public catalog reads.
		v1.GET("/jobs", jobHandler.ListJobs)
		v1.GET("/jobs/:id", jobHandler.GetJob)
		v1.GET("/internships", jobHandler.ListInternships)
		v1.GET("/articles", articleHandler.ListArticles)
		v1.GET("/articles/:id", articleHandler.GetArticle)
		v1.GET("/roadmaps", roadmapHandler.ListRoadmaps)
		v1.GET("/roadmaps/:id", roadmapHandler.GetRoadmap)
		v1.GET("/scholarships", scholarshipHandler.ListScholarships)
		v1.GET("/scholarships/:id", scholarshipHandler.GetScholarship)
		v1.GET("/templates", templateHandler.ListTemplates)
		v1.GET("/templates/:id", templateHandler.GetTemplate)
		v1.GET("/p/:slug", portfolioHandler.GetSharedPortfolio)

		dsaGroup := v1.Group("/dsa")
		{
			dsaGroup.GET("/problems", dsaHandler.ListProblems)
			dsaGroup.GET("/problems/:id", dsaHandler.GetProblem)
			dsaGroup.GET("/topics", dsaHandler.ListTopics)
			dsaGroup.GET("/companies", dsaHandler.ListCompanies)
			dsaGroup.GET("/sheets", dsaHandler.ListSheets)
			dsaGroup.POST("/problems/:id/solved", authRequired, dsaHandler.MarkSolved)
			dsaGroup.DELETE("/problems/:id/solved", authRequired, dsaHandler.UnmarkSolved)
			dsaGroup.GET("/solved", authRequired, dsaHandler.ListSolved)
		}

		v1.POST("/roadmaps/:id/reviews", authRequired, roadmapHandler.CreateReview)

		// Admin curation.
		adminGroup := v1.Group("", authRequired, adminOnly)
		{
			adminGroup.POST("/jobs", jobHandler.CreateJob)
			adminGroup.PUT("/jobs/:id", jobHandler.UpdateJob)
			adminGroup.DELETE("/jobs/:id", jobHandler.DeleteJob)
			adminGroup.POST("/articles", articleHandler.CreateArticle)
			adminGroup.PUT("/articles/:id", articleHandler.UpdateArticle)
			adminGroup.DELETE("/articles/:id", articleHandler.DeleteArticle)
			adminGroup.POST("/roadmaps", roadmapHandler.CreateRoadmap)
			adminGroup.PUT("/roadmaps/:id", roadmapHandler.UpdateRoadmap)
			adminGroup.DELETE("/roadmaps/:id", roadmapHandler.DeleteRoadmap)
			adminGroup.POST("/roadmaps/:id/flowchart", roadmapHandler.GenerateFlowchart)
			adminGroup.POST("/dsa/problems", dsaHandler.CreateProblem)
			adminGroup.PUT("/dsa/problems/:id", dsaHandler.UpdateProblem)
			adminGroup.DELETE("/dsa/problems/:id", dsaHandler.DeleteProblem)
			adminGroup.POST("/dsa/topics", dsaHandler.CreateTopic)
			adminGroup.PUT("/dsa/topics/:id", dsaHandler.UpdateTopic)
			adminGroup.DELETE("/dsa/topics/:id", dsaHandler.DeleteTopic)
			adminGroup.POST("/dsa/companies", dsaHandler.CreateCompany)
			adminGroup.PUT("/dsa/companies/:id", dsaHandler.UpdateCompany)
			adminGroup.DELETE("/dsa/companies/:id", dsaHandler.DeleteCompany)
			adminGroup.POST("/dsa/sheets", dsaHandler.CreateSheet)
			adminGroup.PUT("/dsa/sheets/:id", dsaHandler.UpdateSheet)
			adminGroup.DELETE("/dsa/sheets/:id", dsaHandler.DeleteSheet)
			adminGroup.POST("/scholarships", scholarshipHandler.CreateScholarship)
			adminGroup.PUT("/scholarships/:id", scholarshipHandler.UpdateScholarship)
			adminGroup.DELETE("/scholarships/:id", scholarshipHandler.DeleteScholarship)
			adminGroup.POST("/ai/generate", generateHandler.Generate)
			adminGroup.POST("/templates", templateHandler.UploadTemplate)
			adminGroup.DELETE("/templates/:id", templateHandler.DeleteTemplate)
		}

		resumeGroup := v1.Group("/resume", authRequired)
		{
			resumeGroup.POST("/analyze", resumeHandler.AnalyzeResume)
			resumeGroup.GET("/analyses", resumeHandler.ListAnalyses)
			resumeGroup.GET("/analyses/:id", resumeHandler.GetAnalysis)
			resumeGroup.POST("/improve", resumeHandler.ImproveResume)
		}

		portfolioGroup := v1.Group("/portfolios", authRequired)
		{
			portfolioGroup.POST("", portfolioHandler.CreatePortfolio)
			portfolioGroup.GET("", portfolioHandler.ListPortfolios)
			portfolioGroup.GET("/:id", portfolioHandler.GetPortfolio)
			portfolioGroup.PUT("/:id", portfolioHandler.UpdatePortfolio)
			portfolioGroup.DELETE("/:id", portfolioHandler.DeletePortfolio)
			portfolioGroup.POST("/:id/export", portfolioHandler.ExportPortfolio)
			portfolioGroup.GET("/:id/download", portfolioHandler.GetDownloadLink)
			portfolioGroup.POST("/:id/share", portfolioHandler.SharePortfolio)
		}
	}
}
