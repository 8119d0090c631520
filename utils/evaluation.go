package utils

import (
	"github.com/achmadzano/ai-personal-nutritionist/models"
)

// MealTotals is the calorie/protein sum for one meal category.
type MealTotals struct {
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	Meals    int     `json:"meals"`
}

// DailyTotals is derived from a day's meal records on every request and
// never persisted.
type DailyTotals struct {
	Calories float64               `json:"calories"`
	ProteinG float64               `json:"protein_g"`
	ByMeal   map[string]MealTotals `json:"by_meal"`
}

// AccumulateDailyTotals sums one user's records for one day. An empty day
// yields zero totals; several records of the same meal type all count.
func AccumulateDailyTotals(records []models.MealRecord) DailyTotals {
	totals := DailyTotals{ByMeal: make(map[string]MealTotals, 3)}
	for _, r := range records {
		totals.Calories += r.Calories
		totals.ProteinG += r.ProteinG

		mt := totals.ByMeal[r.MealType]
		mt.Calories += r.Calories
		mt.ProteinG += r.ProteinG
		mt.Meals++
		totals.ByMeal[r.MealType] = mt
	}
	return totals
}

type IntakeStatus string

const (
	StatusUnder   IntakeStatus = "under"
	StatusOnTrack IntakeStatus = "on_track"
	StatusOver    IntakeStatus = "over"
)

type GoalDirection string

const (
	GoalLose     GoalDirection = "lose"
	GoalMaintain GoalDirection = "maintain"
	GoalGain     GoalDirection = "gain"
)

// Calorie intake within ±10% of target, inclusive, counts as on track.
const calorieBandPct = 0.10

// Protein is on track from 90% to 120% of target, inclusive. The band is
// asymmetric: moderate protein overshoot is far less of a problem than a
// shortfall.
const (
	proteinLowerPct = 0.90
	proteinUpperPct = 1.20
)

// Both status checks compare the consumed/target ratio so that hitting a
// band edge exactly (e.g. intake at 100% or 90% of target) lands inside the
// band, not outside it.

func CalorieStatus(consumed, target float64) IntakeStatus {
	ratio := consumed / target
	switch {
	case ratio < 1-calorieBandPct:
		return StatusUnder
	case ratio > 1+calorieBandPct:
		return StatusOver
	default:
		return StatusOnTrack
	}
}

func ProteinStatus(consumed, target float64) IntakeStatus {
	ratio := consumed / target
	switch {
	case ratio < proteinLowerPct:
		return StatusUnder
	case ratio > proteinUpperPct:
		return StatusOver
	default:
		return StatusOnTrack
	}
}

// DirectionForGoal maps current vs target weight to the goal direction the
// suggestion table keys on.
func DirectionForGoal(weightKg, targetWeightKg float64) GoalDirection {
	switch {
	case targetWeightKg < weightKg:
		return GoalLose
	case targetWeightKg > weightKg:
		return GoalGain
	default:
		return GoalMaintain
	}
}

// Evaluation is the daily verdict: intake vs targets plus weight status.
type Evaluation struct {
	BMI           float64       `json:"bmi"`
	BMICategory   string        `json:"bmi_category"`
	CalorieStatus IntakeStatus  `json:"calorie_status"`
	ProteinStatus IntakeStatus  `json:"protein_status"`
	GoalDirection GoalDirection `json:"goal_direction"`
	Suggestion    string        `json:"suggestion"`
}

// suggestionRule is one row of the decision table. Empty fields match any
// value; the first matching row wins.
type suggestionRule struct {
	bmiCategory string
	calories    IntakeStatus
	protein     IntakeStatus
	goal        GoalDirection
	text        string
}

// suggestionTable replaces the nested conditionals the product grew up
// with. Rows are ordered most-specific first and the last row matches
// everything, so a lookup always succeeds.
var suggestionTable = []suggestionRule{
	{BMIUnderweight, StatusUnder, StatusUnder, "",
		"You are under on both calories and protein while underweight. Add an extra meal with calorie-dense, protein-rich food such as eggs, chicken, fish, tofu or tempeh."},
	{BMIUnderweight, StatusUnder, "", "",
		"Calorie intake is below target and you are underweight. Choose denser foods or a larger portion at your next meal."},
	{BMIObese, StatusOver, "", "",
		"Calorie intake is over target. Cut portion sizes, go easy on fried food, and fill up on vegetables instead."},
	{BMIOverweight, StatusOver, "", "",
		"Calorie intake is over target. Smaller portions and more vegetables tomorrow will bring you back on track."},
	{"", StatusOver, StatusOver, GoalGain,
		"You are over on calories and protein. Some surplus fits a weight-gain goal, but keep the extra coming from balanced meals rather than snacks."},
	{"", StatusUnder, StatusUnder, "",
		"Both calories and protein are below target today. Add a protein-rich meal such as eggs, chicken, fish, tofu or tempeh."},
	{"", StatusUnder, StatusOnTrack, "",
		"Protein looks good but calories are below target. Add a portion of rice or another staple to close the gap."},
	{"", StatusUnder, StatusOver, "",
		"Calories are below target even though protein is covered. Add carbohydrates or healthy fats rather than more protein."},
	{"", StatusOnTrack, StatusUnder, "",
		"Calories are on target but protein is short. Swap part of a meal for eggs, chicken, fish, tofu or tempeh."},
	{"", StatusOnTrack, StatusOver, "",
		"Calories are on target and protein is above it. Not a problem if you are active, just keep the overall balance in mind."},
	{"", StatusOver, StatusUnder, "",
		"Calories are over target while protein is short, which points to energy-dense, low-protein food. Rebalance toward lean protein and vegetables."},
	{"", StatusOver, "", "",
		"Calorie intake is over target today. Reduce portions or pick lighter dishes tomorrow."},
	{"", StatusOnTrack, StatusOnTrack, "",
		"Calorie and protein intake both match your targets. Keep eating the way you did today."},
	{"", "", "", "",
		"Keep logging your meals to get a complete picture of the day."},
}

// SuggestionFor resolves the suggestion text for an outcome. Exported so
// the table can be exercised exhaustively in tests.
func SuggestionFor(bmiCategory string, calories, protein IntakeStatus, goal GoalDirection) string {
	for _, r := range suggestionTable {
		if r.bmiCategory != "" && r.bmiCategory != bmiCategory {
			continue
		}
		if r.calories != "" && r.calories != calories {
			continue
		}
		if r.protein != "" && r.protein != protein {
			continue
		}
		if r.goal != "" && r.goal != goal {
			continue
		}
		return r.text
	}
	// unreachable: the last table row has no constraints
	return ""
}

// Evaluate compares a day's totals against the user's targets.
func Evaluate(totals DailyTotals, calorieTarget, proteinTarget, bmi float64, goal GoalDirection) Evaluation {
	ev := Evaluation{
		BMI:           bmi,
		BMICategory:   BMICategory(bmi),
		CalorieStatus: CalorieStatus(totals.Calories, calorieTarget),
		ProteinStatus: ProteinStatus(totals.ProteinG, proteinTarget),
		GoalDirection: goal,
	}
	ev.Suggestion = SuggestionFor(ev.BMICategory, ev.CalorieStatus, ev.ProteinStatus, ev.GoalDirection)
	return ev
}
