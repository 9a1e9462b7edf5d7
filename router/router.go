package router

import (
	"net/http"

	"github.com/TravelTales/travel-claims-backend/config"
	"github.com/TravelTales/travel-claims-backend/handlers"
	"github.com/TravelTales/travel-claims-backend/middleware"
	"github.com/TravelTales/travel-claims-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies struct holds all dependencies required for setting up routes.
type Dependencies struct {
	Config            *config.Config
	SubmissionHandler *handlers.SubmissionHandler
	HealthHandler     *handlers.HealthHandler
}

// SetupRouter configures and returns the main Gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()

	// Global middleware: request ID first, then the error boundary wrapping
	// everything downstream.
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config))
	r.Use(middleware.CORSMiddleware(&deps.Config.Server))

	r.GET("/", deps.HealthHandler.Welcome)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", deps.HealthHandler.HealthCheck)
		api.POST("/submit-form", deps.SubmissionHandler.SubmitForm)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "Route not found"})
	})

	return r
}
