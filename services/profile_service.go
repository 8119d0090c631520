package services

import (
	"errors"
	"fmt"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/utils"

	"gorm.io/gorm"
)

type ProfileInput struct {
	HeightCm       float64 `json:"height_cm" binding:"required"`
	WeightKg       float64 `json:"weight_kg" binding:"required"`
	TargetWeightKg float64 `json:"target_weight_kg" binding:"required"`
	Age            int     `json:"age" binding:"required"`
	Gender         string  `json:"gender" binding:"required"`
	ActivityLevel  string  `json:"activity_level" binding:"required"`
}

// ProfileSummary carries every metric derived from the profile. Nothing in
// it is stored; it is recomputed whenever the profile is read or written.
type ProfileSummary struct {
	BMI                float64 `json:"bmi"`
	BMICategory        string  `json:"bmi_category"`
	IdealWeightMinKg   float64 `json:"ideal_weight_min_kg"`
	IdealWeightMaxKg   float64 `json:"ideal_weight_max_kg"`
	DailyCalorieTarget float64 `json:"daily_calorie_target"`
	DailyProteinG      float64 `json:"daily_protein_target_g"`
	GoalDirection      string  `json:"goal_direction"`
}

// ValidateProfileInput enforces the profile invariants at the update
// boundary so the calculators never see invalid data.
func ValidateProfileInput(in ProfileInput) error {
	if in.HeightCm <= 0 || in.WeightKg <= 0 || in.TargetWeightKg <= 0 {
		return errors.New("height and weight must be positive")
	}
	// plausibility bounds, same spirit as the BMI sanity checks
	if in.HeightCm < 50 || in.HeightCm > 250 {
		return errors.New("height out of plausible range (50-250 cm)")
	}
	if in.WeightKg < 10 || in.WeightKg > 400 || in.TargetWeightKg < 10 || in.TargetWeightKg > 400 {
		return errors.New("weight out of plausible range (10-400 kg)")
	}
	if in.Age <= 0 || in.Age > 120 {
		return errors.New("age must be between 1 and 120")
	}
	if in.Gender != utils.GenderMale && in.Gender != utils.GenderFemale {
		return errors.New("gender must be \"male\" or \"female\"")
	}
	if _, ok := utils.ActivityMultipliers[in.ActivityLevel]; !ok {
		return fmt.Errorf("unknown activity level %q", in.ActivityLevel)
	}
	return nil
}

func UpsertBodyProfile(userID uint, in ProfileInput) (*models.BodyProfile, error) {
	if err := ValidateProfileInput(in); err != nil {
		return nil, err
	}

	profile := models.BodyProfile{
		UserID:         userID,
		HeightCm:       in.HeightCm,
		WeightKg:       in.WeightKg,
		TargetWeightKg: in.TargetWeightKg,
		Age:            in.Age,
		Gender:         in.Gender,
		ActivityLevel:  in.ActivityLevel,
	}

	err := config.DB.
		Where("user_id = ?", userID).
		Assign(profile).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func GetBodyProfile(userID uint) (*models.BodyProfile, error) {
	var profile models.BodyProfile
	err := config.DB.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("body profile not set")
		}
		return nil, err
	}
	return &profile, nil
}

// SummarizeProfile derives BMI, ideal weight range and the daily targets.
// The profile invariants guarantee the formulas cannot fail here.
func SummarizeProfile(p *models.BodyProfile) (*ProfileSummary, error) {
	bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg)
	if err != nil {
		return nil, err
	}

	calTarget, err := utils.DailyCalorieTarget(
		p.Gender, p.WeightKg, p.HeightCm, p.Age, p.ActivityLevel, p.TargetWeightKg)
	if err != nil {
		return nil, err
	}

	minW, maxW := utils.IdealWeightRange(p.HeightCm)

	return &ProfileSummary{
		BMI:                bmi,
		BMICategory:        utils.BMICategory(bmi),
		IdealWeightMinKg:   minW,
		IdealWeightMaxKg:   maxW,
		DailyCalorieTarget: calTarget,
		DailyProteinG:      utils.DailyProteinTarget(p.WeightKg),
		GoalDirection:      string(utils.DirectionForGoal(p.WeightKg, p.TargetWeightKg)),
	}, nil
}
