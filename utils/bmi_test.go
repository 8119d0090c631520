package utils_test

import (
	"math"
	"testing"

	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

func TestCalculateBMI(t *testing.T) {
	t.Parallel()

	bmi, err := utils.CalculateBMI(175, 70)
	if err != nil {
		t.Fatalf("calculate bmi: %v", err)
	}
	// 70 / 1.75² = 22.857…
	if math.Abs(bmi-22.857142857142858) > 1e-9 {
		t.Fatalf("expected bmi ~22.857, got %.6f", bmi)
	}
	if cat := utils.BMICategory(bmi); cat != utils.BMINormal {
		t.Fatalf("expected category %q, got %q", utils.BMINormal, cat)
	}
}

func TestCalculateBMIRejectsNonPositiveInputs(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		heightCm float64
		weightKg float64
	}{
		{"zero height", 0, 70},
		{"zero weight", 175, 0},
		{"negative height", -175, 70},
		{"negative weight", 175, -70},
	}
	for _, tc := range cases {
		if _, err := utils.CalculateBMI(tc.heightCm, tc.weightKg); err == nil {
			t.Fatalf("%s: expected error, got none", tc.name)
		}
	}
}

func TestBMICategoryBands(t *testing.T) {
	t.Parallel()

	cases := []struct {
		bmi  float64
		want string
	}{
		{10.0, utils.BMIUnderweight},
		{18.49, utils.BMIUnderweight},
		{18.5, utils.BMINormal},
		{22.86, utils.BMINormal},
		{24.99, utils.BMINormal},
		{25.0, utils.BMIOverweight},
		{29.99, utils.BMIOverweight},
		{30.0, utils.BMIObese},
		{45.0, utils.BMIObese},
	}
	for _, tc := range cases {
		if got := utils.BMICategory(tc.bmi); got != tc.want {
			t.Fatalf("bmi %.2f: expected %q, got %q", tc.bmi, tc.want, got)
		}
	}
}
