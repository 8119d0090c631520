package utils

import "errors"

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// ActivityMultipliers scale BMR to total daily energy expenditure.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

const (
	// GoalAdjustmentKcal is subtracted from (or added to) maintenance
	// calories when the user wants to lose (or gain) weight.
	GoalAdjustmentKcal = 300.0

	// MinDailyCalories floors the calorie target after the goal adjustment.
	MinDailyCalories = 1200.0

	// ProteinGramsPerKg sets the daily protein target per kg of body weight.
	ProteinGramsPerKg = 1.2
)

// CalculateBMR implements the Mifflin-St Jeor equation.
func CalculateBMR(gender string, weightKg, heightCm float64, age int) (float64, error) {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case GenderMale:
		return base + 5, nil
	case GenderFemale:
		return base - 161, nil
	}
	return 0, errors.New("gender must be \"male\" or \"female\"")
}

// DailyCalorieTarget is maintenance calories (BMR x activity multiplier)
// adjusted for the weight goal and clamped to MinDailyCalories.
func DailyCalorieTarget(gender string, weightKg, heightCm float64, age int, activityLevel string, targetWeightKg float64) (float64, error) {
	bmr, err := CalculateBMR(gender, weightKg, heightCm, age)
	if err != nil {
		return 0, err
	}

	mult, ok := ActivityMultipliers[activityLevel]
	if !ok {
		return 0, errors.New("unknown activity level: " + activityLevel)
	}

	target := bmr * mult
	switch {
	case targetWeightKg < weightKg:
		target -= GoalAdjustmentKcal
	case targetWeightKg > weightKg:
		target += GoalAdjustmentKcal
	}

	if target < MinDailyCalories {
		target = MinDailyCalories
	}
	return target, nil
}

func DailyProteinTarget(weightKg float64) float64 {
	return ProteinGramsPerKg * weightKg
}

// IdealWeightRange returns the weight band that maps to a normal BMI
// (18.5–24.9) at the given height.
func IdealWeightRange(heightCm float64) (minKg, maxKg float64) {
	h := heightCm / 100.0
	return 18.5 * h * h, 24.9 * h * h
}
