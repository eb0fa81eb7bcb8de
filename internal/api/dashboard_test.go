package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/glucolog/backend/internal/api"
	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/testhelpers"
	"github.com/glucolog/backend/internal/types"
)

type dashboardTestEnv struct {
	router     *gin.Engine
	authSvc    *testhelpers.MockAuthService
	entrySvc   *testhelpers.MockEntryService
	profileSvc *testhelpers.MockProfileService
	exportSvc  *testhelpers.MockExportService
	userID     uuid.UUID
}

func setupDashboardRouter(t *testing.T) *dashboardTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &dashboardTestEnv{
		authSvc:    new(testhelpers.MockAuthService),
		entrySvc:   new(testhelpers.MockEntryService),
		profileSvc: new(testhelpers.MockProfileService),
		exportSvc:  new(testhelpers.MockExportService),
		userID:     uuid.New(),
	}

	env.authSvc.On("ValidateToken", "test-token").Return(&types.TokenClaims{
		UserID:   env.userID,
		Username: "alice",
	}, nil)

	env.router = gin.New()
	handler := api.NewDashboardHandler(env.entrySvc, env.profileSvc, env.exportSvc, env.authSvc, nil)
	handler.RegisterRoutes(env.router.Group("/api/v1"))
	return env
}

func TestDashboardHandler_GetStats(t *testing.T) {
	t.Run("mg/dL preference passes values through", func(t *testing.T) {
		env := setupDashboardRouter(t)

		env.entrySvc.On("Stats", mock.Anything, env.userID).Return(&types.StatsResponse{
			TotalEntries:    10,
			AvgBloodSugar:   120,
			EntriesThisWeek: 3,
			Unit:            glucose.UnitMgDl,
		}, nil)
		env.profileSvc.On("PreferredUnit", mock.Anything, env.userID).Return(glucose.UnitMgDl)

		w := performJSON(t, env.router, http.MethodGet, "/api/v1/dashboard/stats", nil, "test-token")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, 120.0, body["avg_blood_sugar"])
		assert.Equal(t, "mg/dL", body["unit"])
	})

	t.Run("mmol/L preference converts the average", func(t *testing.T) {
		env := setupDashboardRouter(t)

		env.entrySvc.On("Stats", mock.Anything, env.userID).Return(&types.StatsResponse{
			TotalEntries:    10,
			AvgBloodSugar:   120,
			EntriesThisWeek: 3,
			Unit:            glucose.UnitMgDl,
		}, nil)
		env.profileSvc.On("PreferredUnit", mock.Anything, env.userID).Return(glucose.UnitMmolL)

		w := performJSON(t, env.router, http.MethodGet, "/api/v1/dashboard/stats", nil, "test-token")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, 6.7, body["avg_blood_sugar"])
		assert.Equal(t, "mmol/L", body["unit"])
	})
}

func TestDashboardHandler_GetChartData(t *testing.T) {
	env := setupDashboardRouter(t)

	env.entrySvc.On("ChartData", mock.Anything, env.userID).Return(&types.ChartDataResponse{
		Labels: []string{"02/10", "02/11"},
		Data:   []float64{90, 180},
		Dates:  []string{"2026-02-10", "2026-02-11"},
		Unit:   glucose.UnitMgDl,
	}, nil)
	env.profileSvc.On("PreferredUnit", mock.Anything, env.userID).Return(glucose.UnitMmolL)

	w := performJSON(t, env.router, http.MethodGet, "/api/v1/dashboard/chart-data", nil, "test-token")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].([]interface{})
	assert.Equal(t, 5.0, data[0])
	assert.Equal(t, 10.0, data[1])
	assert.Equal(t, "mmol/L", body["unit"])
}

func TestDashboardHandler_ExportHistory(t *testing.T) {
	t.Run("returns download URL", func(t *testing.T) {
		env := setupDashboardRouter(t)

		env.profileSvc.On("PreferredUnit", mock.Anything, env.userID).Return(glucose.UnitMgDl)
		env.exportSvc.On("ExportHistory", mock.Anything, env.userID, glucose.UnitMgDl).
			Return("https://example.com/exports/file.csv", nil)

		w := performJSON(t, env.router, http.MethodPost, "/api/v1/dashboard/export", nil, "test-token")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "https://example.com/exports/file.csv", body["download_url"])
	})

	t.Run("upstream failure maps to 500", func(t *testing.T) {
		env := setupDashboardRouter(t)

		env.profileSvc.On("PreferredUnit", mock.Anything, env.userID).Return(glucose.UnitMgDl)
		env.exportSvc.On("ExportHistory", mock.Anything, env.userID, glucose.UnitMgDl).
			Return("", errors.New("bucket unavailable"))

		w := performJSON(t, env.router, http.MethodPost, "/api/v1/dashboard/export", nil, "test-token")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
