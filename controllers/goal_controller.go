package controllers

import (
	"net/http"
	"time"

	"github.com/Shwetank-F/daily-diet-scan/services"

	"github.com/gin-gonic/gin"
)

type GoalController struct {
	Goals *services.GoalService
}

func NewGoalController(goals *services.GoalService) *GoalController {
	return &GoalController{Goals: goals}
}

// GET /goals?date=YYYY-MM-DD
func (gc *GoalController) GetGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		var err error
		date, err = time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return
		}
	}

	goal, progress, err := gc.Goals.GetGoalsAndProgress(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goal, "progress": progress})
}

// PUT /goals
func (gc *GoalController) UpdateGoals(c *gin.Context) {
	userID := c.GetUint("userID")

	var req struct {
		Calories float64  `json:"calories"`
		Protein  float64  `json:"protein"`
		Carbs    float64  `json:"carbs"`
		Fat      *float64 `json:"fat"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fat := 0.0
	if req.Fat != nil {
		fat = *req.Fat
	}

	if err := gc.Goals.UpsertGoals(userID, req.Calories, req.Protein, req.Carbs, fat); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
