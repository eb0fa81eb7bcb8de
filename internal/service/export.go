package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/glucolog/backend/config"
	"github.com/glucolog/backend/internal/glucose"
)

// ExportService writes a user's history to object storage as CSV and hands
// back a time-limited download link.
type ExportService struct {
	entries IEntryService
	s3      *config.S3Config
}

// Ensure ExportService implements IExportService
var _ IExportService = (*ExportService)(nil)

func NewExportService(entries IEntryService, s3 *config.S3Config) *ExportService {
	return &ExportService{
		entries: entries,
		s3:      s3,
	}
}

// ExportHistory exports all of the user's readings, converted to the given
// display unit, and returns a presigned URL valid for 15 minutes.
func (s *ExportService) ExportHistory(ctx context.Context, userID uuid.UUID, unit glucose.Unit) (string, error) {
	if !unit.Valid() {
		unit = glucose.UnitMgDl
	}

	entries, err := s.entries.ListEntries(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load history: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"date", "blood_sugar", "unit", "meal", "exercise"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		value, err := glucose.Convert(e.BloodSugar, glucose.UnitMgDl, unit)
		if err != nil {
			return "", err
		}
		record := []string{
			e.ReadingAt.Format(time.RFC3339),
			strconv.FormatFloat(value, 'f', 1, 64),
			unit.String(),
			e.Meal,
			e.Exercise,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.csv", userID, time.Now().UTC().Format("20060102T150405"))
	if err := s.s3.Upload(ctx, key, "text/csv", buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to upload export: %w", err)
	}

	return s.s3.GeneratePresignedURL(ctx, key, 15*time.Minute)
}
