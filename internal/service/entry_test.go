package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/glucolog/backend/internal/service"
	"github.com/glucolog/backend/internal/testhelpers"
	"github.com/glucolog/backend/internal/types"
)

func newEntryRequest(value float64, unit string, readingAt time.Time) *types.CreateEntryRequest {
	return &types.CreateEntryRequest{
		BloodSugar: value,
		Unit:       unit,
		Meal:       "Oatmeal with berries",
		Exercise:   "30 minute walk",
		ReadingAt:  readingAt,
	}
}

func TestEntryService_CreateEntry(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewEntryService(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("stores mg/dL values as given", func(t *testing.T) {
		entry, err := svc.CreateEntry(ctx, userID, newEntryRequest(120, "mg/dL", time.Now()))
		require.NoError(t, err)
		assert.Equal(t, 120.0, entry.BloodSugar)
	})

	t.Run("defaults to mg/dL when unit omitted", func(t *testing.T) {
		entry, err := svc.CreateEntry(ctx, userID, newEntryRequest(95, "", time.Now()))
		require.NoError(t, err)
		assert.Equal(t, 95.0, entry.BloodSugar)
	})

	t.Run("converts mmol/L to mg/dL for storage", func(t *testing.T) {
		entry, err := svc.CreateEntry(ctx, userID, newEntryRequest(6.7, "mmol/L", time.Now()))
		require.NoError(t, err)
		assert.Equal(t, 121.0, entry.BloodSugar)
	})

	t.Run("rejects readings below 50 mg/dL", func(t *testing.T) {
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(49, "mg/dL", time.Now()))
		assert.ErrorIs(t, err, service.ErrOutOfRange)
	})

	t.Run("rejects readings above 500 mg/dL", func(t *testing.T) {
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(501, "mg/dL", time.Now()))
		assert.ErrorIs(t, err, service.ErrOutOfRange)
	})

	t.Run("accepts the mmol/L boundary before conversion rounds it", func(t *testing.T) {
		// 27.8 mmol/L is valid even though it converts to 501 mg/dL.
		entry, err := svc.CreateEntry(ctx, userID, newEntryRequest(27.8, "mmol/L", time.Now()))
		require.NoError(t, err)
		assert.Equal(t, 501.0, entry.BloodSugar)
	})

	t.Run("rejects mmol/L readings outside the mmol/L range", func(t *testing.T) {
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(27.9, "mmol/L", time.Now()))
		assert.ErrorIs(t, err, service.ErrOutOfRange)
	})

	t.Run("rejects unknown unit", func(t *testing.T) {
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(120, "mol/L", time.Now()))
		assert.ErrorIs(t, err, glucose.ErrInvalidUnit)
	})
}

func TestEntryService_GetUpdateDelete(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewEntryService(db)
	ctx := context.Background()
	userID := uuid.New()

	entry, err := svc.CreateEntry(ctx, userID, newEntryRequest(110, "mg/dL", time.Now()))
	require.NoError(t, err)

	t.Run("get returns the entry", func(t *testing.T) {
		got, err := svc.GetEntry(ctx, userID, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, got.ID)
		assert.Equal(t, 110.0, got.BloodSugar)
	})

	t.Run("get scoped to owner", func(t *testing.T) {
		_, err := svc.GetEntry(ctx, uuid.New(), entry.ID)
		assert.ErrorIs(t, err, service.ErrEntryNotFound)
	})

	t.Run("update converts new value", func(t *testing.T) {
		value := 3.9
		updated, err := svc.UpdateEntry(ctx, userID, entry.ID, &types.UpdateEntryRequest{
			BloodSugar: &value,
			Unit:       "mmol/L",
		})
		require.NoError(t, err)
		assert.Equal(t, 70.0, updated.BloodSugar)
	})

	t.Run("update keeps untouched fields", func(t *testing.T) {
		meal := "Lentil soup"
		updated, err := svc.UpdateEntry(ctx, userID, entry.ID, &types.UpdateEntryRequest{Meal: &meal})
		require.NoError(t, err)
		assert.Equal(t, "Lentil soup", updated.Meal)
		assert.Equal(t, 70.0, updated.BloodSugar)
		assert.Equal(t, "30 minute walk", updated.Exercise)
	})

	t.Run("update rejects out-of-range value", func(t *testing.T) {
		value := 600.0
		_, err := svc.UpdateEntry(ctx, userID, entry.ID, &types.UpdateEntryRequest{BloodSugar: &value})
		assert.ErrorIs(t, err, service.ErrOutOfRange)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		require.NoError(t, svc.DeleteEntry(ctx, userID, entry.ID))

		_, err := svc.GetEntry(ctx, userID, entry.ID)
		assert.ErrorIs(t, err, service.ErrEntryNotFound)
	})

	t.Run("delete of missing entry reports not found", func(t *testing.T) {
		err := svc.DeleteEntry(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, service.ErrEntryNotFound)
	})
}

func TestEntryService_ListAndRecent(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewEntryService(db)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(100+float64(i*10), "mg/dL", base.AddDate(0, 0, i)))
		require.NoError(t, err)
	}

	t.Run("list is newest first", func(t *testing.T) {
		entries, err := svc.ListEntries(ctx, userID)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		assert.Equal(t, 140.0, entries[0].BloodSugar)
		assert.Equal(t, 100.0, entries[4].BloodSugar)
	})

	t.Run("recent honors limit", func(t *testing.T) {
		entries, err := svc.RecentEntries(ctx, userID, 2)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, 140.0, entries[0].BloodSugar)
		assert.Equal(t, 130.0, entries[1].BloodSugar)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		entries, err := svc.ListEntries(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestEntryService_Stats(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewEntryService(db)
	ctx := context.Background()
	userID := uuid.New()

	t.Run("empty history", func(t *testing.T) {
		stats, err := svc.Stats(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stats.TotalEntries)
		assert.Equal(t, 0.0, stats.AvgBloodSugar)
	})

	t.Run("counts and averages", func(t *testing.T) {
		now := time.Now()
		for _, v := range []float64{100, 110, 120} {
			_, err := svc.CreateEntry(ctx, userID, newEntryRequest(v, "mg/dL", now))
			require.NoError(t, err)
		}
		// One old reading outside the weekly window.
		_, err := svc.CreateEntry(ctx, userID, newEntryRequest(130, "mg/dL", now.AddDate(0, 0, -30)))
		require.NoError(t, err)

		stats, err := svc.Stats(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.TotalEntries)
		assert.Equal(t, 115.0, stats.AvgBloodSugar)
		assert.Equal(t, int64(3), stats.EntriesThisWeek)
		assert.Equal(t, glucose.UnitMgDl, stats.Unit)
	})
}

func TestEntryService_ChartData(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewEntryService(db)
	ctx := context.Background()
	userID := uuid.New()

	first := time.Date(2026, 2, 10, 7, 30, 0, 0, time.UTC)
	second := time.Date(2026, 2, 11, 7, 30, 0, 0, time.UTC)
	_, err := svc.CreateEntry(ctx, userID, newEntryRequest(180, "mg/dL", second))
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, userID, newEntryRequest(90, "mg/dL", first))
	require.NoError(t, err)

	chart, err := svc.ChartData(ctx, userID)
	require.NoError(t, err)
	require.Len(t, chart.Data, 2)

	// Oldest first for plotting.
	assert.Equal(t, []float64{90, 180}, chart.Data)
	assert.Equal(t, []string{"02/10", "02/11"}, chart.Labels)
	assert.Equal(t, []string{"2026-02-10", "2026-02-11"}, chart.Dates)
	assert.Equal(t, glucose.UnitMgDl, chart.Unit)
}
