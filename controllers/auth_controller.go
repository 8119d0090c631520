package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/config"
	"github.com/achmadzano/ai-personal-nutritionist/models"
	"github.com/achmadzano/ai-personal-nutritionist/services"
	"github.com/achmadzano/ai-personal-nutritionist/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.RegisterUser(input.Username, input.Email, input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.AuthenticateUser(input.Username, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Every outcome of the forgot-password flow answers with this, so the
// endpoint cannot be used to enumerate accounts.
const resetCodeResponse = "If the email exists, a reset code has been sent"

// seams for the reset flow; tests swap these out
var (
	findUserByEmail = services.FindUserByEmail
	sendResetEmail  = utils.SendResetEmail
	saveUser        = func(u *models.User) error { return config.DB.Save(u).Error }

	findUserByResetToken = func(token string) (*models.User, error) {
		var user models.User
		if err := config.DB.Where("reset_token = ?", token).First(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
)

func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := findUserByEmail(input.Email)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"message": resetCodeResponse})
		return
	}

	code := utils.GenerateResetCode()
	user.ResetToken = code
	user.ResetTokenExp = time.Now().Add(15 * time.Minute)
	if err := saveUser(user); err != nil {
		log.Printf("forgot-password: storing reset code: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": resetCodeResponse})
		return
	}

	if err := sendResetEmail(user.Email, code); err != nil {
		log.Printf("forgot-password: sending reset code: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": resetCodeResponse})
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := findUserByResetToken(input.Token)
	if err != nil || time.Now().After(user.ResetTokenExp) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExp = time.Time{}
	if err := saveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
