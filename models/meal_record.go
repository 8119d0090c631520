package models

import (
    "time"

    "gorm.io/gorm"
)

// MealRecord is one saved photo analysis. Records are written once and never
// updated; daily totals are recomputed from them on every request.
type MealRecord struct {
    gorm.Model
    UserID        uint      `gorm:"index;not null"`
    EatenOn       time.Time `gorm:"index;not null"` // truncated to local midnight
    MealType      string    `gorm:"size:16;not null"` // "breakfast" | "lunch" | "dinner"
    DetectedFood  string
    Calories      float64
    ProteinG      float64
    NutrientNotes string `gorm:"type:text"`
    PhotoURL      string
    Confidence    float64
}
