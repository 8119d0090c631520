package services

import (
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

// DailyEvaluation is the full answer to "how did this day go": live totals,
// the targets they are measured against, and the verdict.
type DailyEvaluation struct {
	Date          string            `json:"date"`
	Totals        utils.DailyTotals `json:"totals"`
	CalorieTarget float64           `json:"daily_calorie_target"`
	ProteinTarget float64           `json:"daily_protein_target_g"`
	utils.Evaluation
}

// GetDailyEvaluation recomputes everything for one user and one day. Pure
// computation over data fetched for this request; nothing is cached.
func GetDailyEvaluation(userID uint, date time.Time) (*DailyEvaluation, error) {
	profile, err := GetBodyProfile(userID)
	if err != nil {
		return nil, err
	}

	summary, err := SummarizeProfile(profile)
	if err != nil {
		return nil, err
	}

	totals, err := DailyTotalsFor(userID, date)
	if err != nil {
		return nil, err
	}

	ev := utils.Evaluate(
		totals,
		summary.DailyCalorieTarget,
		summary.DailyProteinG,
		summary.BMI,
		utils.DirectionForGoal(profile.WeightKg, profile.TargetWeightKg),
	)

	return &DailyEvaluation{
		Date:          dayStartLocal(date).Format("2006-01-02"),
		Totals:        totals,
		CalorieTarget: summary.DailyCalorieTarget,
		ProteinTarget: summary.DailyProteinG,
		Evaluation:    ev,
	}, nil
}
