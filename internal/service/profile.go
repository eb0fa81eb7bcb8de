package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/models"
	"github.com/glucolog/backend/internal/types"
)

// ErrProfileNotFound is returned when no profile exists for the user
var ErrProfileNotFound = errors.New("profile not found")

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		db: db,
	}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdatePreferences updates a user's display preferences
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserProfile, error) {
	unit, err := glucose.ParseUnit(req.PreferredUnit)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.PreferredUnit = unit
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// PreferredUnit returns the user's display unit, defaulting to mg/dL when
// the profile cannot be loaded.
func (s *ProfileService) PreferredUnit(ctx context.Context, userID uuid.UUID) glucose.Unit {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil || !profile.PreferredUnit.Valid() {
		return glucose.UnitMgDl
	}
	return profile.PreferredUnit
}
