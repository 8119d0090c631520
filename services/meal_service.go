package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// NewMealRecord builds the record a save request produces from an analysis.
// Nutrients are clamped to zero here so a bad estimate can never push daily
// totals negative. Pure; the caller persists it.
func NewMealRecord(userID uint, mealType string, eatenOn time.Time, analysis *FoodAnalysis, photoURL string) (*models.MealRecord, error) {
	mealType = strings.ToLower(strings.TrimSpace(mealType))
	if !validMealTypes[mealType] {
		return nil, fmt.Errorf("meal type must be breakfast, lunch or dinner, got %q", mealType)
	}

	calories := analysis.TotalCalories
	if calories < 0 {
		calories = 0
	}
	protein := analysis.TotalProteinG
	if protein < 0 {
		protein = 0
	}

	return &models.MealRecord{
		UserID:        userID,
		EatenOn:       dayStartLocal(eatenOn),
		MealType:      mealType,
		DetectedFood:  strings.Join(analysis.DetectedFoods, ", "),
		Calories:      calories,
		ProteinG:      protein,
		NutrientNotes: analysis.NutrientNotes,
		PhotoURL:      photoURL,
		Confidence:    analysis.Confidence,
	}, nil
}

// SaveMealRecord persists an analyzed meal. Records are append-only: a
// second breakfast on the same day becomes a second row, both count.
func SaveMealRecord(userID uint, mealType string, eatenOn time.Time, analysis *FoodAnalysis, photoURL string) (*models.MealRecord, error) {
	record, err := NewMealRecord(userID, mealType, eatenOn, analysis, photoURL)
	if err != nil {
		return nil, err
	}
	if err := config.DB.Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func ListMealRecords(userID uint, date time.Time) ([]models.MealRecord, error) {
	start := dayStartLocal(date)
	end := start.Add(24 * time.Hour)

	var records []models.MealRecord
	err := config.DB.
		Where("user_id = ? AND eaten_on >= ? AND eaten_on < ?", userID, start, end).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func ListRecentMealRecords(userID uint, limit int) ([]models.MealRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	var records []models.MealRecord
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// DailyTotalsFor recomputes the day's totals from the live records.
func DailyTotalsFor(userID uint, date time.Time) (utils.DailyTotals, error) {
	records, err := ListMealRecords(userID, date)
	if err != nil {
		return utils.DailyTotals{}, err
	}
	return utils.AccumulateDailyTotals(records), nil
}
