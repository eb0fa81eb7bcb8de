package testhelpers

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/models"
	"github.com/glucolog/backend/internal/service"
	"github.com/glucolog/backend/internal/types"
)

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

var _ service.IAuthService = (*MockAuthService)(nil)

func (m *MockAuthService) Register(ctx context.Context, email, password, username string, unit glucose.Unit) (*models.User, error) {
	args := m.Called(ctx, email, password, username, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, *models.UserProfile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*models.UserProfile), args.Error(2)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	args := m.Called(ctx, userID, oldPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

var _ service.IProfileService = (*MockProfileService)(nil)

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) PreferredUnit(ctx context.Context, userID uuid.UUID) glucose.Unit {
	args := m.Called(ctx, userID)
	return args.Get(0).(glucose.Unit)
}

// MockEntryService is a mock implementation of service.IEntryService
type MockEntryService struct {
	mock.Mock
}

var _ service.IEntryService = (*MockEntryService)(nil)

func (m *MockEntryService) CreateEntry(ctx context.Context, userID uuid.UUID, req *types.CreateEntryRequest) (*models.GlucoseEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlucoseEntry), args.Error(1)
}

func (m *MockEntryService) GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*models.GlucoseEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlucoseEntry), args.Error(1)
}

func (m *MockEntryService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.GlucoseEntry, error) {
	args := m.Called(ctx, userID, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GlucoseEntry), args.Error(1)
}

func (m *MockEntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockEntryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.GlucoseEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GlucoseEntry), args.Error(1)
}

func (m *MockEntryService) RecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]models.GlucoseEntry, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.GlucoseEntry), args.Error(1)
}

func (m *MockEntryService) Stats(ctx context.Context, userID uuid.UUID) (*types.StatsResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.StatsResponse), args.Error(1)
}

func (m *MockEntryService) ChartData(ctx context.Context, userID uuid.UUID) (*types.ChartDataResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ChartDataResponse), args.Error(1)
}

// MockAdviceService is a mock implementation of service.IAdviceService
type MockAdviceService struct {
	mock.Mock
}

var _ service.IAdviceService = (*MockAdviceService)(nil)

func (m *MockAdviceService) Recommendation(ctx context.Context, username string, mgdl float64, meal, exercise string) string {
	args := m.Called(ctx, username, mgdl, meal, exercise)
	return args.String(0)
}

func (m *MockAdviceService) MealSuggestions(ctx context.Context, mgdl float64, preferences string) string {
	args := m.Called(ctx, mgdl, preferences)
	return args.String(0)
}

func (m *MockAdviceService) ExerciseRecommendations(ctx context.Context, mgdl float64, currentExercise string) string {
	args := m.Called(ctx, mgdl, currentExercise)
	return args.String(0)
}

func (m *MockAdviceService) LatestRecommendation(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

// MockExportService is a mock implementation of service.IExportService
type MockExportService struct {
	mock.Mock
}

var _ service.IExportService = (*MockExportService)(nil)

func (m *MockExportService) ExportHistory(ctx context.Context, userID uuid.UUID, unit glucose.Unit) (string, error) {
	args := m.Called(ctx, userID, unit)
	return args.String(0), args.Error(1)
}
