package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GlucoseEntry is a single logged reading. BloodSugar is always stored in
// mg/dL; conversion to the user's preferred unit happens at the API edge.
type GlucoseEntry struct {
	ID         uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	BloodSugar float64        `gorm:"not null" json:"blood_sugar"`
	Meal       string         `gorm:"type:text;not null" json:"meal"`
	Exercise   string         `gorm:"type:text;not null" json:"exercise"`
	ReadingAt  time.Time      `gorm:"not null;index" json:"reading_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *GlucoseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
