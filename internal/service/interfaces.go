package service

import (
	"context"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/models"
	"github.com/glucolog/backend/internal/types"
	"github.com/google/uuid"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password, username string, unit glucose.Unit) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *models.UserProfile, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserProfile, error)
	PreferredUnit(ctx context.Context, userID uuid.UUID) glucose.Unit
}

// IEntryService defines the interface for glucose entry operations
type IEntryService interface {
	CreateEntry(ctx context.Context, userID uuid.UUID, req *types.CreateEntryRequest) (*models.GlucoseEntry, error)
	GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*models.GlucoseEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.GlucoseEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error
	ListEntries(ctx context.Context, userID uuid.UUID) ([]models.GlucoseEntry, error)
	RecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]models.GlucoseEntry, error)
	Stats(ctx context.Context, userID uuid.UUID) (*types.StatsResponse, error)
	ChartData(ctx context.Context, userID uuid.UUID) (*types.ChartDataResponse, error)
}

// IAdviceService produces recommendation text. Implementations must always
// return a usable string: the LLM path falls back to the rule engine.
type IAdviceService interface {
	Recommendation(ctx context.Context, username string, mgdl float64, meal, exercise string) string
	MealSuggestions(ctx context.Context, mgdl float64, preferences string) string
	ExerciseRecommendations(ctx context.Context, mgdl float64, currentExercise string) string
	LatestRecommendation(ctx context.Context, username string) (string, error)
}

// IExportService exports a user's history to object storage
type IExportService interface {
	ExportHistory(ctx context.Context, userID uuid.UUID, unit glucose.Unit) (string, error)
}
