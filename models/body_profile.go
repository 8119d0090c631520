package models

import (
    "gorm.io/gorm"
)

// BodyProfile holds the measurements every derived metric is computed from.
// One row per user; all numeric fields are validated positive before a row
// is ever written (see services.ValidateProfileInput).
type BodyProfile struct {
    gorm.Model
    UserID         uint    `gorm:"uniqueIndex;not null"`
    HeightCm       float64 `gorm:"not null"`
    WeightKg       float64 `gorm:"not null"`
    TargetWeightKg float64 `gorm:"not null"`
    Age            int     `gorm:"not null"`
    Gender         string  `gorm:"size:8;not null"`  // "male" | "female"
    ActivityLevel  string  `gorm:"size:16;not null"` // "sedentary" … "very_active"
}
