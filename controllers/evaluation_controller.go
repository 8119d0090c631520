package controllers

import (
	"net/http"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/services"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Analyzer *services.AnalyzerService
}

func NewEvaluationController(analyzer *services.AnalyzerService) *EvaluationController {
	return &EvaluationController{Analyzer: analyzer}
}

// GET /evaluation?date=YYYY-MM-DD
func (ec *EvaluationController) GetEvaluation(c *gin.Context) {
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

	evaluation, err := services.GetDailyEvaluation(userID, date)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, evaluation)
}

// GET /evaluation/advice?date=YYYY-MM-DD — model-written summary of the
// day's meals, on top of the deterministic evaluation.
func (ec *EvaluationController) GetDailyAdvice(c *gin.Context) {
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
	if len(records) == 0 {
		c.JSON(http.StatusOK, gin.H{"advice": "No meals logged yet today."})
		return
	}

	var totalCalories float64
	foods := make([]string, 0, len(records))
	for _, r := range records {
		totalCalories += r.Calories
		foods = append(foods, r.DetectedFood)
	}

	advice := ec.Analyzer.DailyAdvice(c.Request.Context(), len(records), totalCalories, foods)
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
