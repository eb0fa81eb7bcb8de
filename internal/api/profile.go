package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/middleware"
	"github.com/glucolog/backend/internal/service"
	"github.com/glucolog/backend/internal/types"
)

// ProfileHandler serves profile and preference endpoints
type ProfileHandler struct {
	profileService service.IProfileService
	authService    service.IAuthService
}

func NewProfileHandler(profileService service.IProfileService, authService service.IAuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profileGroup := router.Group("/profile")
	profileGroup.Use(middleware.AuthMiddleware(h.authService))
	{
		profileGroup.GET("", h.GetProfile)
		profileGroup.PUT("/preferences", h.UpdatePreferences)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":        profile.UserID,
		"username":       profile.Username,
		"bio":            profile.Bio,
		"preferred_unit": profile.PreferredUnit,
	})
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.UpdatePreferences(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, glucose.ErrInvalidUnit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "preferred_unit must be either mg/dL or mmol/L"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "preferences updated",
		"preferred_unit": profile.PreferredUnit,
	})
}
