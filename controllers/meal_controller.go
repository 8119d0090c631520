package controllers

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/services"
	"github.com/achmadzano/ai-personal-nutritionist/utils"

	"github.com/gin-gonic/gin"
)

// photo uploads beyond this are rejected before anything is read
const maxPhotoBytes = 10 << 20

var photoContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

type MealController struct {
	Analyzer *services.AnalyzerService
	Hub      *services.ProgressHub
}

func NewMealController(analyzer *services.AnalyzerService, hub *services.ProgressHub) *MealController {
	return &MealController{Analyzer: analyzer, Hub: hub}
}

// POST /meals/analyze — photo in, estimate out. Nothing is saved yet; the
// client reviews the estimate and saves it with SaveMeal.
func (mc *MealController) AnalyzeMealPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}
	if fileHeader.Size > maxPhotoBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo too large (max 10MB)"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := photoContentTypes[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo must be jpg, jpeg or png"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	photoURL, err := utils.UploadMealPhoto(data, contentType, ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	analysis, err := mc.Analyzer.AnalyzePhoto(c.Request.Context(), data, contentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analysis": analysis, "photo_url": photoURL})
}

type SaveMealInput struct {
	MealType string                 `json:"meal_type" binding:"required"`
	Date     string                 `json:"date"` // YYYY-MM-DD, defaults to today
	PhotoURL string                 `json:"photo_url"`
	Analysis *services.FoodAnalysis `json:"analysis" binding:"required"`
}

// POST /meals — turn a reviewed estimate into an immutable record.
func (mc *MealController) SaveMeal(c *gin.Context) {
	userID := c.GetUint("userID")

	var input SaveMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eatenOn := time.Now()
	if input.Date != "" {
		parsed, err := parseClientDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		eatenOn = parsed
	}

	record, err := services.SaveMealRecord(userID, input.MealType, eatenOn, input.Analysis, input.PhotoURL)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// push the refreshed evaluation to any open sockets
	if evaluation, err := services.GetDailyEvaluation(userID, eatenOn); err == nil {
		mc.Hub.BroadcastEvaluation(userID, evaluation)
	}

	c.JSON(http.StatusCreated, record)
}

// GET /meals?date=YYYY-MM-DD
func (mc *MealController) ListMeals(c *gin.Context) {
	userID := c.GetUint("userID")

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseClientDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	records, err := services.ListMealRecords(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	totals, err := services.DailyTotalsFor(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": records, "totals": totals})
}

// GET /meals/recent?limit=5
func (mc *MealController) RecentMeals(c *gin.Context) {
	userID := c.GetUint("userID")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	records, err := services.ListRecentMealRecords(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}
