package controllers

import (
	"errors"
	"net/http"

	"github.com/flehn/flutter-edanos-sub001/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuickAddController struct {
	Repo *services.MealRepository
}

func NewQuickAddController(repo *services.MealRepository) *QuickAddController {
	return &QuickAddController{Repo: repo}
}

// POST /quick-add  { "meal_id": "…" }
func (qc *QuickAddController) Create(c *gin.Context) {
	var body struct {
		MealID string `json:"meal_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	meal, err := qc.Repo.GetMeal(userID, body.MealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	item := services.MealToQuickAdd(meal)
	if err := qc.Repo.SaveQuickAddItem(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /quick-add
func (qc *QuickAddController) List(c *gin.Context) {
	items, err := qc.Repo.ListQuickAddItems(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
