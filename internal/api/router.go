package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"talentd/internal/config"
	"talentd/internal/metrics"
)

// NewRouter builds the Gin engine with the base middleware chain, the health
// endpoint and the Prometheus scrape endpoint.
func NewRouter(_ *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
