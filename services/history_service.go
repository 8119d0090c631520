package services

import (
	"errors"
	"sort"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

type DaySummary struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	Meals    int     `json:"meals"`
}

// HistorySummary aggregates a date range: one row per day that has records,
// plus period averages and how often the calorie target was hit.
type HistorySummary struct {
	From string `json:"from"`
	To   string `json:"to"`

	Days []DaySummary `json:"days"`

	AvgCalories float64 `json:"avg_calories"`
	AvgProteinG float64 `json:"avg_protein_g"`

	CalorieTarget  float64 `json:"daily_calorie_target,omitempty"`
	DaysOnTrack    int     `json:"days_on_track"`
	DaysWithMeals  int     `json:"days_with_meals"`
	RecordsInRange int     `json:"records_in_range"`
}

// GetHistory summarizes [from, to] inclusive. Averages are over days that
// have at least one record, so a skipped logging day does not drag them
// down. On-track counting needs a profile; without one only totals are
// reported.
func GetHistory(userID uint, from, to time.Time) (*HistorySummary, error) {
	start := dayStartLocal(from)
	end := dayStartLocal(to).Add(24 * time.Hour)
	if !start.Before(end) {
		return nil, errors.New("'from' must not be after 'to'")
	}

	var records []models.MealRecord
	err := config.DB.
		Where("user_id = ? AND eaten_on >= ? AND eaten_on < ?", userID, start, end).
		Order("eaten_on ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	var calorieTarget float64
	if profile, err := GetBodyProfile(userID); err == nil {
		if ps, err := SummarizeProfile(profile); err == nil {
			calorieTarget = ps.DailyCalorieTarget
		}
	}

	return summarizeHistory(records, start, end, calorieTarget), nil
}

// summarizeHistory groups records into local calendar days. The driver may
// hand eaten_on back in UTC, so day labels are always derived in the
// server's zone.
func summarizeHistory(records []models.MealRecord, start, end time.Time, calorieTarget float64) *HistorySummary {
	byDay := make(map[string][]models.MealRecord)
	for _, r := range records {
		key := r.EatenOn.In(time.Local).Format("2006-01-02")
		byDay[key] = append(byDay[key], r)
	}

	summary := &HistorySummary{
		From:           start.Format("2006-01-02"),
		To:             end.Add(-24 * time.Hour).Format("2006-01-02"),
		Days:           make([]DaySummary, 0, len(byDay)),
		RecordsInRange: len(records),
	}
	if calorieTarget > 0 {
		summary.CalorieTarget = calorieTarget
	}

	var sumCal, sumProt float64
	for day, dayRecords := range byDay {
		totals := utils.AccumulateDailyTotals(dayRecords)
		summary.Days = append(summary.Days, DaySummary{
			Date:     day,
			Calories: totals.Calories,
			ProteinG: totals.ProteinG,
			Meals:    len(dayRecords),
		})
		sumCal += totals.Calories
		sumProt += totals.ProteinG
		if calorieTarget > 0 && utils.CalorieStatus(totals.Calories, calorieTarget) == utils.StatusOnTrack {
			summary.DaysOnTrack++
		}
	}

	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date < summary.Days[j].Date
	})

	summary.DaysWithMeals = len(summary.Days)
	if summary.DaysWithMeals > 0 {
		summary.AvgCalories = sumCal / float64(summary.DaysWithMeals)
		summary.AvgProteinG = sumProt / float64(summary.DaysWithMeals)
	}
	return summary
}
