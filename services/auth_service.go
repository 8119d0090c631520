package services

import (
	"errors"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/utils"
)

func RegisterUser(username, email, password string) error {
	var existing models.User
	if err := config.DB.
		Where("username = ? OR email = ?", username, email).
		First(&existing).Error; err == nil {
		return errors.New("username or email already exists")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
	}
	return config.DB.Create(&user).Error
}

func AuthenticateUser(username, password string) (string, error) {
	var user models.User
	result := config.DB.Where("username = ? AND disabled = ?", username, false).First(&user)
	if result.Error != nil {
		return "", errors.New("user not found or disabled")
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", errors.New("incorrect password")
	}

	return utils.GenerateJWT(user.ID, user.Username)
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}
