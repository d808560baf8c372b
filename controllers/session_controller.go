package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/flehn/flutter-edanos-sub001/logger"
	"github.com/flehn/flutter-edanos-sub001/models"
	"github.com/flehn/flutter-edanos-sub001/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionController exposes the editor's working-copy lifecycle: open a
// session over a meal, mutate the copy, save or discard it.
type SessionController struct {
	Store *services.SessionStore
	Repo  *services.MealRepository
	Hub   *services.MealHub
}

func NewSessionController(store *services.SessionStore, repo *services.MealRepository, hub *services.MealHub) *SessionController {
	return &SessionController{Store: store, Repo: repo, Hub: hub}
}

type BeginSessionRequest struct {
	MealID string       `json:"meal_id"`
	Meal   *MealRequest `json:"meal"` // inline draft, e.g. a recognition result
}

// POST /sessions
func (sc *SessionController) Begin(c *gin.Context) {
	var body BeginSessionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("userID")
	var meal *models.Meal
	switch {
	case body.MealID != "":
		stored, err := sc.Repo.GetMeal(userID, body.MealID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		meal = stored
	case body.Meal != nil:
		meal = &models.Meal{
			Name:        body.Meal.Name,
			ImageURL:    body.Meal.ImageURL,
			Ingredients: body.Meal.Ingredients,
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_id or meal is required"})
		return
	}

	sess := sc.Store.Begin(userID, meal)
	resp := mealResponse(sess.Meal)
	resp["session_id"] = sess.ID
	c.JSON(http.StatusCreated, resp)
}

// GET /sessions/:id
func (sc *SessionController) Get(c *gin.Context) {
	meal, err := sc.Store.Snapshot(c.GetUint("userID"), c.Param("id"))
	if err != nil {
		sc.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealResponse(meal))
}

// Amount deliberately has no required binding: 0 is a legal slider value
// and clamps to the ingredient's minimum.
type AmountRequest struct {
	Amount float64 `json:"amount"`
}

// PATCH /sessions/:id/ingredients/:index
func (sc *SessionController) UpdateAmount(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient index"})
		return
	}
	var body AmountRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, err := sc.Store.UpdateAmount(c.GetUint("userID"), c.Param("id"), index, body.Amount)
	if err != nil {
		sc.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealResponse(meal))
}

// DELETE /sessions/:id/ingredients/:index
func (sc *SessionController) RemoveIngredient(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredient index"})
		return
	}

	meal, err := sc.Store.RemoveIngredient(c.GetUint("userID"), c.Param("id"), index)
	if err != nil {
		sc.sessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, mealResponse(meal))
}

// POST /sessions/:id/ingredients
//
// Confirms a search result: every returned ingredient is appended, even
// though the preview named only one.
func (sc *SessionController) AddIngredients(c *gin.Context) {
	var result services.SearchResult
	if err := c.ShouldBindJSON(&result); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meal, added, err := sc.Store.AddSearchResult(c.GetUint("userID"), c.Param("id"), &result)
	if err != nil {
		sc.sessionError(c, err)
		return
	}
	resp := mealResponse(meal)
	resp["added"] = added
	c.JSON(http.StatusOK, resp)
}

// POST /sessions/:id/save
func (sc *SessionController) Save(c *gin.Context) {
	userID := c.GetUint("userID")
	meal, created, err := sc.Store.Save(userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrSaveInFlight) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, services.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("session save failed", zap.String("session_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	eventType := "meal.updated"
	if created {
		eventType = "meal.saved"
	}
	sc.Hub.Broadcast(userID, services.MealEvent{
		Type:     eventType,
		MealID:   meal.ID,
		Name:     meal.Name,
		Calories: meal.TotalCalories(),
	})
	c.JSON(http.StatusOK, mealResponse(meal))
}

// DELETE /sessions/:id
func (sc *SessionController) Discard(c *gin.Context) {
	if err := sc.Store.Discard(c.GetUint("userID"), c.Param("id")); err != nil {
		sc.sessionError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (sc *SessionController) sessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrIngredientIndex):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
