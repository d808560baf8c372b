package controllers

import (
	"github.com/flehn/flutter-edanos-sub001/models"
	"github.com/flehn/flutter-edanos-sub001/utils"

	"github.com/gin-gonic/gin"
)

// mealResponse renders a meal with its derived totals, both raw and
// formatted for display (whole-number calories and amounts, one-decimal
// grams).
func mealResponse(meal *models.Meal) gin.H {
	lines := make([]gin.H, 0, len(meal.Ingredients))
	for i := range meal.Ingredients {
		ing := &meal.Ingredients[i]
		lines = append(lines, gin.H{
			"name":     ing.Name,
			"amount":   utils.FormatAmount(ing.Amount) + " " + ing.Unit,
			"calories": utils.FormatCalories(ing.Calories) + " kcal",
		})
	}

	return gin.H{
		"meal": meal,
		"totals": gin.H{
			"calories":       meal.TotalCalories(),
			"protein":        meal.TotalProtein(),
			"carbs":          meal.TotalCarbs(),
			"fat":            meal.TotalFat(),
			"fiber":          meal.TotalFiber(),
			"sugar":          meal.TotalSugar(),
			"saturatedFat":   meal.TotalSaturatedFat(),
			"unsaturatedFat": meal.TotalUnsaturatedFat(),
		},
		"display": gin.H{
			"calories":    utils.FormatCalories(meal.TotalCalories()) + " kcal",
			"protein":     utils.FormatGrams(meal.TotalProtein()),
			"carbs":       utils.FormatGrams(meal.TotalCarbs()),
			"fat":         utils.FormatGrams(meal.TotalFat()),
			"ingredients": lines,
		},
	}
}
