package router

import (
	"github.com/gin-gonic/gin"

	"schedo/internal/config"
	"schedo/internal/handler"
	"schedo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	appointmentH *handler.AppointmentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")
	v1.POST("/parse", appointmentH.Parse)
	v1.POST("/extract", appointmentH.Extract)
	v1.POST("/normalize", appointmentH.Normalize)
	v1.POST("/appointment", appointmentH.Schedule)

	return r
}
