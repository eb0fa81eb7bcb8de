package types

import (
	"time"

	"github.com/glucolog/backend/internal/glucose"
	"github.com/google/uuid"
)

// RegisterRequest represents the request body for registering a user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	// Unit defaults to mg/dL when omitted.
	PreferredUnit string `json:"preferred_unit"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest represents the request body for changing a password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// CreateEntryRequest represents the request body for logging a reading.
// BloodSugar is interpreted in Unit (default mg/dL) and stored in mg/dL.
type CreateEntryRequest struct {
	BloodSugar float64   `json:"blood_sugar" binding:"required"`
	Unit       string    `json:"unit"`
	Meal       string    `json:"meal" binding:"required"`
	Exercise   string    `json:"exercise" binding:"required"`
	ReadingAt  time.Time `json:"reading_at" binding:"required"`
}

// UpdateEntryRequest represents the request body for editing a reading
type UpdateEntryRequest struct {
	BloodSugar *float64   `json:"blood_sugar"`
	Unit       string     `json:"unit"`
	Meal       *string    `json:"meal"`
	Exercise   *string    `json:"exercise"`
	ReadingAt  *time.Time `json:"reading_at"`
}

// UpdatePreferencesRequest represents the request body for changing the
// preferred display unit
type UpdatePreferencesRequest struct {
	PreferredUnit string  `json:"preferred_unit" binding:"required"`
	Bio           *string `json:"bio"`
}

// MealSuggestionsRequest asks for diet guidance at a given reading
type MealSuggestionsRequest struct {
	BloodSugar  float64 `json:"blood_sugar" binding:"required"`
	Unit        string  `json:"unit"`
	Preferences string  `json:"preferences"`
}

// ExerciseRecommendationsRequest asks for activity guidance at a given reading
type ExerciseRecommendationsRequest struct {
	BloodSugar      float64 `json:"blood_sugar" binding:"required"`
	Unit            string  `json:"unit"`
	CurrentExercise string  `json:"current_exercise"`
}

// EntryResponse is a reading converted to the caller's preferred unit
type EntryResponse struct {
	ID         uuid.UUID    `json:"id"`
	BloodSugar float64      `json:"blood_sugar"`
	Unit       glucose.Unit `json:"unit"`
	Meal       string       `json:"meal"`
	Exercise   string       `json:"exercise"`
	ReadingAt  time.Time    `json:"reading_at"`
	CreatedAt  time.Time    `json:"created_at"`
}

// StatsResponse summarizes a user's readings in their preferred unit
type StatsResponse struct {
	TotalEntries    int64        `json:"total_entries"`
	AvgBloodSugar   float64      `json:"avg_blood_sugar"`
	EntriesThisWeek int64        `json:"entries_this_week"`
	Unit            glucose.Unit `json:"unit"`
}

// ChartDataResponse is the reading series shaped for the frontend chart
type ChartDataResponse struct {
	Labels []string     `json:"labels"`
	Data   []float64    `json:"data"`
	Dates  []string     `json:"dates"`
	Unit   glucose.Unit `json:"unit"`
}
