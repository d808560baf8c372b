package controllers

import (
	"net/http"

	"github.com/flehn/flutter-edanos-sub001/services"
	"github.com/flehn/flutter-edanos-sub001/utils"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	Gemini *services.GeminiService
}

func NewIngredientController(g *services.GeminiService) *IngredientController {
	return &IngredientController{Gemini: g}
}

// GET /ingredients/search?q=grilled+chicken
//
// Returns the raw search result (what a confirmed add will append, all of
// it) plus the single-line preview the editor shows.
func (ic *IngredientController) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}

	res, err := ic.Gemini.SearchIngredient(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	preview, ok := services.PreviewSearchResult(res)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no ingredient found for query"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  res,
		"preview": preview,
		"display": gin.H{
			"title":    preview.Name,
			"subtitle": "per " + preview.Quantity,
			"calories": utils.FormatCalories(preview.Calories) + " kcal",
			"protein":  utils.FormatGrams(preview.Protein),
			"carbs":    utils.FormatGrams(preview.Carbs),
			"fat":      utils.FormatGrams(preview.Fat),
		},
	})
}
