package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glucolog/backend/config"
	"github.com/glucolog/backend/internal/database"
	"github.com/glucolog/backend/internal/middleware"
	"github.com/glucolog/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Glucolog API is running",
		"version": "v1.0.0",
	})
}

// currentUserID pulls the authenticated user's ID out of the gin context.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, authService service.IAuthService, adviceService service.IAdviceService, exportService service.IExportService, cfg *config.Config) {
	// Health check endpoint (no auth required)
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	// Initialize Redis for rate limiting
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis for rate limiting: %v", err)
		// Continue without rate limiting if Redis is not available
		redisClient = nil
	}

	var adviceLimiter, exportLimiter *middleware.RateLimiter
	if redisClient != nil {
		adviceLimiter = middleware.NewAdviceRateLimiter(redisClient)
		exportLimiter = middleware.NewExportRateLimiter(redisClient)
	}

	profileService := service.NewProfileService(db)
	entryService := service.NewEntryService(db)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, authService)
	entryHandler := NewEntryHandler(entryService, profileService, adviceService, authService)
	adviceHandler := NewAdviceHandler(adviceService, entryService, profileService, authService, adviceLimiter)
	dashboardHandler := NewDashboardHandler(entryService, profileService, exportService, authService, exportLimiter)

	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	profileHandler.RegisterRoutes(v1)
	entryHandler.RegisterRoutes(v1)
	adviceHandler.RegisterRoutes(v1)
	dashboardHandler.RegisterRoutes(v1)
}
