package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/middleware"
	"github.com/glucolog/backend/internal/models"
	"github.com/glucolog/backend/internal/service"
	"github.com/glucolog/backend/internal/types"
)

// EntryHandler handles glucose entry CRUD and history
type EntryHandler struct {
	entryService   service.IEntryService
	profileService service.IProfileService
	adviceService  service.IAdviceService
	authService    service.IAuthService
}

func NewEntryHandler(entryService service.IEntryService, profileService service.IProfileService, adviceService service.IAdviceService, authService service.IAuthService) *EntryHandler {
	return &EntryHandler{
		entryService:   entryService,
		profileService: profileService,
		adviceService:  adviceService,
		authService:    authService,
	}
}

func (h *EntryHandler) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	entries.Use(middleware.AuthMiddleware(h.authService))
	{
		entries.POST("", h.CreateEntry)
		entries.GET("", h.ListEntries)
		entries.GET("/:id", h.GetEntry)
		entries.PUT("/:id", h.UpdateEntry)
		entries.DELETE("/:id", h.DeleteEntry)
	}
}

// toEntryResponse converts a stored mg/dL entry into the caller's unit.
func toEntryResponse(e *models.GlucoseEntry, unit glucose.Unit) types.EntryResponse {
	value, err := glucose.Convert(e.BloodSugar, glucose.UnitMgDl, unit)
	if err != nil {
		value, unit = e.BloodSugar, glucose.UnitMgDl
	}
	return types.EntryResponse{
		ID:         e.ID,
		BloodSugar: value,
		Unit:       unit,
		Meal:       e.Meal,
		Exercise:   e.Exercise,
		ReadingAt:  e.ReadingAt,
		CreatedAt:  e.CreatedAt,
	}
}

func (h *EntryHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req types.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrOutOfRange) || errors.Is(err, glucose.ErrInvalidUnit) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save entry"})
		return
	}

	// Advice never fails: the rule engine is the terminal branch when the
	// model is unreachable.
	username := c.GetString(middleware.ContextUsername)
	recommendation := h.adviceService.Recommendation(c.Request.Context(), username, entry.BloodSugar, entry.Meal, entry.Exercise)

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	c.JSON(http.StatusCreated, gin.H{
		"message":        "entry logged successfully",
		"entry":          toEntryResponse(entry, unit),
		"recommendation": recommendation,
	})
}

func (h *EntryHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entries, err := h.entryService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	history := make([]types.EntryResponse, 0, len(entries))
	for i := range entries {
		history = append(history, toEntryResponse(&entries[i], unit))
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"unit":    unit,
	})
}

func (h *EntryHandler) GetEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	entry, err := h.entryService.GetEntry(c.Request.Context(), userID, entryID)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch entry"})
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	c.JSON(http.StatusOK, toEntryResponse(entry, unit))
}

func (h *EntryHandler) UpdateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req types.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), userID, entryID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		case errors.Is(err, service.ErrOutOfRange), errors.Is(err, glucose.ErrInvalidUnit):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update entry"})
		}
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	c.JSON(http.StatusOK, toEntryResponse(entry, unit))
}

func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "entry deleted successfully",
		"id":      entryID,
	})
}
