package router

import (
	"github.com/gin-gonic/gin"

	"invext/internal/handler"
	"invext/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	parseH *handler.ParseHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/parse", parseH.Parse)
	v1.POST("/parse/batch", parseH.ParseBatch)
	v1.POST("/export", parseH.Export)

	return r
}
