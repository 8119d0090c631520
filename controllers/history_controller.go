package controllers

import (
	"net/http"
	"time"

	"github.com/achmadzano/ai-personal-nutritionist/services"

	"github.com/gin-gonic/gin"
)

// GET /history?from=YYYY-MM-DD&to=YYYY-MM-DD (defaults to the last 7 days)
func GetHistory(c *gin.Context) {
	userID := c.GetUint("userID")

	to := time.Now()
	from := to.AddDate(0, 0, -6)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := parseClientDate(fromStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'from' date. Use YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := parseClientDate(toStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'to' date. Use YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	summary, err := services.GetHistory(userID, from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}
