package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/middleware"
	"github.com/glucolog/backend/internal/service"
)

// DashboardHandler serves aggregate views over a user's readings
type DashboardHandler struct {
	entryService   service.IEntryService
	profileService service.IProfileService
	exportService  service.IExportService
	authService    service.IAuthService
	exportLimiter  *middleware.RateLimiter
}

func NewDashboardHandler(entryService service.IEntryService, profileService service.IProfileService, exportService service.IExportService, authService service.IAuthService, exportLimiter *middleware.RateLimiter) *DashboardHandler {
	return &DashboardHandler{
		entryService:   entryService,
		profileService: profileService,
		exportService:  exportService,
		authService:    authService,
		exportLimiter:  exportLimiter,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboardGroup := router.Group("/dashboard")
	dashboardGroup.Use(middleware.AuthMiddleware(h.authService))
	{
		dashboardGroup.GET("/stats", h.GetStats)
		dashboardGroup.GET("/chart-data", h.GetChartData)

		if h.exportLimiter != nil {
			dashboardGroup.POST("/export", h.exportLimiter.RateLimitMiddleware(), h.ExportHistory)
		} else {
			dashboardGroup.POST("/export", h.ExportHistory)
		}
	}
}

// GetStats returns entry counts and the average reading in the caller's
// preferred unit.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.entryService.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute stats"})
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	if unit == glucose.UnitMmolL && stats.TotalEntries > 0 {
		stats.AvgBloodSugar = glucose.MgDlToMmolL(stats.AvgBloodSugar)
	}
	stats.Unit = unit

	c.JSON(http.StatusOK, stats)
}

// GetChartData returns the reading series converted to the caller's
// preferred unit, oldest first.
func (h *DashboardHandler) GetChartData(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	chart, err := h.entryService.ChartData(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build chart data"})
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	if unit == glucose.UnitMmolL {
		for i, v := range chart.Data {
			chart.Data[i] = glucose.MgDlToMmolL(v)
		}
	}
	chart.Unit = unit

	c.JSON(http.StatusOK, chart)
}

// ExportHistory writes the user's history to object storage as CSV and
// returns a time-limited download URL.
func (h *DashboardHandler) ExportHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if h.exportService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "export is not available"})
		return
	}

	unit := h.profileService.PreferredUnit(c.Request.Context(), userID)
	url, err := h.exportService.ExportHistory(c.Request.Context(), userID, unit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"download_url": url})
}
