package controllers

import (
	"errors"
	"net/http"

	"github.com/flehn/flutter-edanos-sub001/logger"
	"github.com/flehn/flutter-edanos-sub001/models"
	"github.com/flehn/flutter-edanos-sub001/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LabelDetector names what Recognize needs from the image-recognition
// collaborator.
type LabelDetector interface {
	RecognizeLabels(base64Img string) ([]string, error)
}

type MealController struct {
	Repo     *services.MealRepository
	Hub      *services.MealHub
	Gemini   *services.GeminiService
	Detector LabelDetector
}

func NewMealController(repo *services.MealRepository, hub *services.MealHub, gemini *services.GeminiService, detector LabelDetector) *MealController {
	return &MealController{Repo: repo, Hub: hub, Gemini: gemini, Detector: detector}
}

type MealRequest struct {
	Name        string              `json:"name" binding:"required"`
	ImageURL    string              `json:"imageUrl"`
	Ingredients []models.Ingredient `json:"ingredients"`
}

// POST /meals
func (mc *MealController) Create(c *gin.Context) {
	var body MealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal := &models.Meal{
		UserID:      c.GetUint("userID"),
		Name:        body.Name,
		ImageURL:    body.ImageURL,
		Ingredients: body.Ingredients,
	}
	id, err := mc.Repo.SaveMeal(meal)
	if err != nil {
		logger.Error("save meal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.Hub.Broadcast(meal.UserID, services.MealEvent{
		Type:     "meal.saved",
		MealID:   id,
		Name:     meal.Name,
		Calories: meal.TotalCalories(),
	})
	c.JSON(http.StatusCreated, mealResponse(meal))
}

// PUT /meals/:id
func (mc *MealController) Update(c *gin.Context) {
	var body MealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	mealID := c.Param("id")
	meal := &models.Meal{
		ID:          mealID,
		UserID:      userID,
		Name:        body.Name,
		ImageURL:    body.ImageURL,
		Ingredients: body.Ingredients,
	}
	if err := mc.Repo.UpdateMeal(userID, mealID, meal); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		logger.Error("update meal failed", zap.String("meal_id", mealID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	mc.Hub.Broadcast(userID, services.MealEvent{
		Type:     "meal.updated",
		MealID:   mealID,
		Name:     meal.Name,
		Calories: meal.TotalCalories(),
	})
	c.JSON(http.StatusOK, mealResponse(meal))
}

// GET /meals/:id
func (mc *MealController) Get(c *gin.Context) {
	meal, err := mc.Repo.GetMeal(c.GetUint("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, mealResponse(meal))
}

// GET /meals
func (mc *MealController) List(c *gin.Context) {
	meals, err := mc.Repo.ListMeals(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}

// DELETE /meals/:id
func (mc *MealController) Delete(c *gin.Context) {
	if err := mc.Repo.DeleteMeal(c.GetUint("userID"), c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /meals/recognize  { "image_base64": "data:…" }
//
// Builds the recognized draft the editor opens with: photo → labels →
// ingredient search. Nothing is persisted until the user saves.
func (mc *MealController) Recognize(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	labels, err := mc.Detector.RecognizeLabels(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(labels) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no food detected in image"})
		return
	}

	res, err := mc.Gemini.SearchIngredient(c.Request.Context(), labels[0])
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	draft := &models.Meal{Name: res.DishName}
	if preview, ok := services.PreviewSearchResult(res); ok && draft.Name == "" {
		draft.Name = preview.Name
	}
	services.AppendSearchResult(draft, res)

	c.JSON(http.StatusOK, mealResponse(draft))
}
