package controllers

import (
	"errors"
	"net/http"

	"github.com/flehn/flutter-edanos-sub001/services"
	"github.com/flehn/flutter-edanos-sub001/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ImageUploadController struct {
	Repo *services.MealRepository
}

func NewImageUploadController(repo *services.MealRepository) *ImageUploadController {
	return &ImageUploadController{Repo: repo}
}

type MealImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// POST /meals/:id/image
func (uc *ImageUploadController) UploadMealImage(c *gin.Context) {
	var req MealImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := c.GetUint("userID")
	mealID := c.Param("id")

	url, err := utils.UploadBase64ImageToS3(req.ImageBase64, mealID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed", "detail": err.Error()})
		return
	}

	if err := uc.Repo.SetMealImage(userID, mealID, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "meal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
