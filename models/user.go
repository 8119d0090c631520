package models

import (
    "time"

    "gorm.io/gorm"
)

type User struct {
    gorm.Model
    Username      string `gorm:"uniqueIndex;not null"`
    Email         string `gorm:"uniqueIndex;not null"`
    Password      string `gorm:"not null"`
    Disabled      bool
    ResetToken    string
    ResetTokenExp time.Time
}
