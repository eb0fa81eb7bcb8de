package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/models"
	"github.com/glucolog/backend/internal/types"
)

var (
	ErrOutOfRange    = errors.New("blood sugar value out of range")
	ErrEntryNotFound = errors.New("entry not found")
)

// EntryService handles glucose entry CRUD. Values are normalized to mg/dL
// before they hit storage; reads stay in mg/dL and the API layer converts
// to the caller's preferred unit.
type EntryService struct {
	db *gorm.DB
}

// Ensure EntryService implements IEntryService
var _ IEntryService = (*EntryService)(nil)

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

// normalize validates a reading against its own unit's range, then
// converts it to mg/dL. Validation happens before conversion so boundary
// values like 27.8 mmol/L are not lost to rounding.
func normalize(value float64, unitToken string) (float64, error) {
	unit := glucose.UnitMgDl
	if unitToken != "" {
		parsed, err := glucose.ParseUnit(unitToken)
		if err != nil {
			return 0, err
		}
		unit = parsed
	}

	if !glucose.InRange(value, unit) {
		min, max := glucose.ValidationRange(unit)
		return 0, fmt.Errorf("%w: blood sugar should be between %.1f and %.1f %s", ErrOutOfRange, min, max, unit)
	}

	return glucose.Convert(value, unit, glucose.UnitMgDl)
}

func (s *EntryService) CreateEntry(ctx context.Context, userID uuid.UUID, req *types.CreateEntryRequest) (*models.GlucoseEntry, error) {
	mgdl, err := normalize(req.BloodSugar, req.Unit)
	if err != nil {
		return nil, err
	}

	entry := models.GlucoseEntry{
		UserID:     userID,
		BloodSugar: mgdl,
		Meal:       req.Meal,
		Exercise:   req.Exercise,
		ReadingAt:  req.ReadingAt,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

func (s *EntryService) GetEntry(ctx context.Context, userID, entryID uuid.UUID) (*models.GlucoseEntry, error) {
	var entry models.GlucoseEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *EntryService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, req *types.UpdateEntryRequest) (*models.GlucoseEntry, error) {
	entry, err := s.GetEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	if req.BloodSugar != nil {
		mgdl, err := normalize(*req.BloodSugar, req.Unit)
		if err != nil {
			return nil, err
		}
		entry.BloodSugar = mgdl
	}
	if req.Meal != nil {
		entry.Meal = *req.Meal
	}
	if req.Exercise != nil {
		entry.Exercise = *req.Exercise
	}
	if req.ReadingAt != nil {
		entry.ReadingAt = *req.ReadingAt
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *EntryService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", entryID, userID).Delete(&models.GlucoseEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListEntries returns the user's full history, newest reading first.
func (s *EntryService) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.GlucoseEntry, error) {
	var entries []models.GlucoseEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *EntryService) RecentEntries(ctx context.Context, userID uuid.UUID, limit int) ([]models.GlucoseEntry, error) {
	var entries []models.GlucoseEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Stats summarizes the user's readings. The average is computed in mg/dL;
// unit conversion for display belongs to the API layer.
func (s *EntryService) Stats(ctx context.Context, userID uuid.UUID) (*types.StatsResponse, error) {
	stats := &types.StatsResponse{Unit: glucose.UnitMgDl}

	if err := s.db.WithContext(ctx).Model(&models.GlucoseEntry{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalEntries).Error; err != nil {
		return nil, err
	}

	if stats.TotalEntries == 0 {
		return stats, nil
	}

	var avg float64
	if err := s.db.WithContext(ctx).Model(&models.GlucoseEntry{}).
		Where("user_id = ?", userID).
		Select("AVG(blood_sugar)").
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	// One decimal, matching clinical display convention.
	stats.AvgBloodSugar = math.Round(avg*10) / 10

	weekAgo := time.Now().AddDate(0, 0, -7)
	if err := s.db.WithContext(ctx).Model(&models.GlucoseEntry{}).
		Where("user_id = ? AND reading_at >= ?", userID, weekAgo).
		Count(&stats.EntriesThisWeek).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// ChartData shapes the reading series for the frontend chart, oldest first.
func (s *EntryService) ChartData(ctx context.Context, userID uuid.UUID) (*types.ChartDataResponse, error) {
	var entries []models.GlucoseEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("reading_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	data := &types.ChartDataResponse{
		Labels: make([]string, 0, len(entries)),
		Data:   make([]float64, 0, len(entries)),
		Dates:  make([]string, 0, len(entries)),
		Unit:   glucose.UnitMgDl,
	}
	for _, e := range entries {
		data.Labels = append(data.Labels, e.ReadingAt.Format("01/02"))
		data.Data = append(data.Data, e.BloodSugar)
		data.Dates = append(data.Dates, e.ReadingAt.Format("2006-01-02"))
	}

	return data, nil
}
