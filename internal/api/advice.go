package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/middleware"
	"github.com/glucolog/backend/internal/service"
	"github.com/glucolog/backend/internal/types"
)

// AdviceHandler serves recommendation endpoints
type AdviceHandler struct {
	adviceService  service.IAdviceService
	entryService   service.IEntryService
	profileService service.IProfileService
	authService    service.IAuthService
	rateLimiter    *middleware.RateLimiter
}

func NewAdviceHandler(adviceService service.IAdviceService, entryService service.IEntryService, profileService service.IProfileService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *AdviceHandler {
	return &AdviceHandler{
		adviceService:  adviceService,
		entryService:   entryService,
		profileService: profileService,
		authService:    authService,
		rateLimiter:    rateLimiter,
	}
}

func (h *AdviceHandler) RegisterRoutes(router *gin.RouterGroup) {
	adviceGroup := router.Group("/advice")
	adviceGroup.Use(middleware.AuthMiddleware(h.authService))
	if h.rateLimiter != nil {
		adviceGroup.Use(h.rateLimiter.RateLimitMiddleware())
	}
	{
		adviceGroup.GET("/recommendation", h.GetRecommendation)
		adviceGroup.POST("/meal-suggestions", h.GetMealSuggestions)
		adviceGroup.POST("/exercise-recommendations", h.GetExerciseRecommendations)
	}
}

// GetRecommendation generates advice from the user's latest reading.
func (h *AdviceHandler) GetRecommendation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recent, err := h.entryService.RecentEntries(c.Request.Context(), userID, 1)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recent entries"})
		return
	}

	if len(recent) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"recommendation": "Start logging your daily data to receive personalized recommendations!",
		})
		return
	}

	latest := recent[0]
	username := c.GetString(middleware.ContextUsername)
	recommendation := h.adviceService.Recommendation(c.Request.Context(), username, latest.BloodSugar, latest.Meal, latest.Exercise)

	c.JSON(http.StatusOK, gin.H{"recommendation": recommendation})
}

// toMgDl converts the request's reading into the canonical unit the advice
// engine expects.
func toMgDl(value float64, unitToken string) (float64, error) {
	if unitToken == "" {
		return value, nil
	}
	unit, err := glucose.ParseUnit(unitToken)
	if err != nil {
		return 0, err
	}
	return glucose.Convert(value, unit, glucose.UnitMgDl)
}

func (h *AdviceHandler) GetMealSuggestions(c *gin.Context) {
	var req types.MealSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mgdl, err := toMgDl(req.BloodSugar, req.Unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit must be either mg/dL or mmol/L"})
		return
	}

	suggestions := h.adviceService.MealSuggestions(c.Request.Context(), mgdl, req.Preferences)
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *AdviceHandler) GetExerciseRecommendations(c *gin.Context) {
	var req types.ExerciseRecommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mgdl, err := toMgDl(req.BloodSugar, req.Unit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit must be either mg/dL or mmol/L"})
		return
	}

	recommendations := h.adviceService.ExerciseRecommendations(c.Request.Context(), mgdl, req.CurrentExercise)
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}
