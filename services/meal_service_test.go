package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/services"
)

func sampleAnalysis() *services.FoodAnalysis {
	return &services.FoodAnalysis{
		DetectedFoods: []string{"Nasi goreng", "Telur mata sapi"},
		TotalCalories: 560,
		TotalProteinG: 22,
		NutrientNotes: "high in carbs",
		Confidence:    0.85,
		Source:        "model",
	}
}

func TestNewMealRecordRejectsUnknownMealType(t *testing.T) {
	t.Parallel()

	for _, mealType := range []string{"", "brunch", "snack", "supper"} {
		if _, err := services.NewMealRecord(1, mealType, time.Now(), sampleAnalysis(), ""); err == nil {
			t.Fatalf("expected error for meal type %q, got none", mealType)
		}
	}
}

func TestNewMealRecordNormalizesMealType(t *testing.T) {
	t.Parallel()

	for _, mealType := range []string{"Breakfast", "LUNCH", " dinner "} {
		record, err := services.NewMealRecord(1, mealType, time.Now(), sampleAnalysis(), "")
		if err != nil {
			t.Fatalf("meal type %q: %v", mealType, err)
		}
		want := strings.ToLower(strings.TrimSpace(mealType))
		if record.MealType != want {
			t.Fatalf("expected normalized %q, got %q", want, record.MealType)
		}
	}
}

func TestNewMealRecordClampsNegativeNutrients(t *testing.T) {
	t.Parallel()

	analysis := sampleAnalysis()
	analysis.TotalCalories = -100
	analysis.TotalProteinG = -8

	record, err := services.NewMealRecord(1, "lunch", time.Now(), analysis, "")
	if err != nil {
		t.Fatalf("new meal record: %v", err)
	}
	if record.Calories != 0 || record.ProteinG != 0 {
		t.Fatalf("expected negatives clamped to zero, got %.1f/%.1f", record.Calories, record.ProteinG)
	}
}

func TestNewMealRecordTruncatesToLocalMidnight(t *testing.T) {
	t.Parallel()

	eatenAt := time.Date(2025, 6, 1, 19, 42, 7, 0, time.Local)
	record, err := services.NewMealRecord(1, "dinner", eatenAt, sampleAnalysis(), "https://cdn.example.com/p.jpg")
	if err != nil {
		t.Fatalf("new meal record: %v", err)
	}

	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	if !record.EatenOn.Equal(want) {
		t.Fatalf("expected eaten_on %v, got %v", want, record.EatenOn)
	}
	if record.DetectedFood != "Nasi goreng, Telur mata sapi" {
		t.Fatalf("unexpected detected food %q", record.DetectedFood)
	}
	if record.PhotoURL != "https://cdn.example.com/p.jpg" {
		t.Fatalf("unexpected photo url %q", record.PhotoURL)
	}
}

func validProfileInput() services.ProfileInput {
	return services.ProfileInput{
		HeightCm:       175,
		WeightKg:       70,
		TargetWeightKg: 65,
		Age:            25,
		Gender:         "male",
		ActivityLevel:  "moderate",
	}
}

func TestValidateProfileInputAcceptsValidProfile(t *testing.T) {
	t.Parallel()

	if err := services.ValidateProfileInput(validProfileInput()); err != nil {
		t.Fatalf("expected valid profile to pass, got %v", err)
	}
}

func TestValidateProfileInputRejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*services.ProfileInput)
	}{
		{"zero height", func(in *services.ProfileInput) { in.HeightCm = 0 }},
		{"negative weight", func(in *services.ProfileInput) { in.WeightKg = -70 }},
		{"height too low", func(in *services.ProfileInput) { in.HeightCm = 40 }},
		{"height too high", func(in *services.ProfileInput) { in.HeightCm = 260 }},
		{"weight too low", func(in *services.ProfileInput) { in.WeightKg = 5 }},
		{"weight too high", func(in *services.ProfileInput) { in.WeightKg = 450 }},
		{"target weight too low", func(in *services.ProfileInput) { in.TargetWeightKg = 5 }},
		{"zero age", func(in *services.ProfileInput) { in.Age = 0 }},
		{"age too high", func(in *services.ProfileInput) { in.Age = 130 }},
		{"unknown gender", func(in *services.ProfileInput) { in.Gender = "other" }},
		{"unknown activity level", func(in *services.ProfileInput) { in.ActivityLevel = "couch" }},
	}
	for _, tc := range cases {
		in := validProfileInput()
		tc.mutate(&in)
		if err := services.ValidateProfileInput(in); err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
	}
}

func TestSummarizeProfileDerivesTargets(t *testing.T) {
	t.Parallel()

	in := validProfileInput()
	profile := models.BodyProfile{
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		TargetWeightKg: in.TargetWeightKg,
		Age:            in.Age,
		Gender:         in.Gender,
		ActivityLevel:  in.ActivityLevel,
	}
	summary, err := services.SummarizeProfile(&profile)
	if err != nil {
		t.Fatalf("summarize profile: %v", err)
	}

	// BMR 1673.75 × 1.55 − 300 (losing weight) = 2294.3125
	if summary.DailyCalorieTarget != 2294.3125 {
		t.Fatalf("expected calorie target 2294.3125, got %.4f", summary.DailyCalorieTarget)
	}
	if summary.DailyProteinG != 84.0 {
		t.Fatalf("expected protein target 84.0, got %.2f", summary.DailyProteinG)
	}
	if summary.BMICategory != "normal" {
		t.Fatalf("expected bmi category normal, got %q", summary.BMICategory)
	}
	if summary.GoalDirection != "lose" {
		t.Fatalf("expected goal direction lose, got %q", summary.GoalDirection)
	}
}
