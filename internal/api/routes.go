package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trishulai/trishul-api/internal/middleware"
	"github.com/trishulai/trishul-api/internal/models"
	"github.com/trishulai/trishul-api/internal/utils"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "github.com/trishulai/trishul-api/docs" // Import generated docs
)

// RegisterRoutes registers all API routes
func (s *Server) RegisterRoutes() {
	router := s.router

	s.logger.Debug("Registering API routes")

	apiV1 := router.Group("/api/v1")

	apiV1.GET("/health", s.healthCheck)
	apiV1.HEAD("/health", s.healthCheck)

	var scanMW []gin.HandlerFunc
	if s.limiter != nil {
		scanMW = append(scanMW, middleware.RateLimit(s.limiter, s.logger))
	}

	s.kavachController.RegisterRoutes(apiV1, scanMW...)
	s.rudraController.RegisterRoutes(apiV1)
	s.trinetraController.RegisterRoutes(apiV1)
	s.jobsController.RegisterRoutes(apiV1, scanMW...)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/swagger/doc.json"),
		ginSwagger.DocExpansion("list"),
		ginSwagger.DeepLinking(true),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	router.NoRoute(s.handleNotFound)

	s.logger.Info("API routes registered")
}

// healthCheck handles the health check endpoint
// @Summary      Health Check
// @Description  Reports server status, version and the history storage backend. Returns 503 when the database does not answer.
// @Tags         System
// @Produce      json
// @Success      200  {object}  utils.Response{data=models.HealthResponse}  "Server status information"
// @Failure      503  {object}  utils.Response{data=models.HealthResponse}  "Database unavailable"
// @Router       /health [get]
// @Router       /health [head]
func (s *Server) healthCheck(c *gin.Context) {
	health := models.HealthResponse{
		Status:    "ok",
		Version:   s.config.Version,
		ServerID:  s.config.ServerID,
		Storage:   s.config.Storage.Backend,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}

	if s.db != nil {
		if err := s.db.Ping(); err != nil {
			s.logger.WithError(err).Warn("Health check database ping failed")
			health.Status = "degraded"
			c.JSON(http.StatusServiceUnavailable, utils.Response{
				Success: false,
				Data:    health,
				Error:   "database unavailable",
				Code:    utils.CodeServiceUnavailable,
			})
			return
		}
	}

	utils.SuccessResponse(c, health, "")
}

func (s *Server) handleNotFound(c *gin.Context) {
	utils.NotFound(c, "Route not found: "+c.Request.Method+" "+c.Request.URL.Path)
}
