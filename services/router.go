package services

import (
	"net/http"

	"github.com/SaiNageswarS/mentor-boot/metrics"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the HTTP surface: the mentor API plus health and metrics.
func NewRouter(m Mentor) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	ProvideMentorService(m).MountRoutes(r)
	return r
}
