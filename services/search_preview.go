package services

import (
	"strconv"
	"strings"

	"github.com/flehn/flutter-edanos-sub001/models"
)

// Quantity shown when the result has more than one ingredient and no single
// serving to name.
const defaultPreviewQuantity = "100g"

// IngredientPreview is what the editor shows before the user confirms an
// add: one identity line plus totals summed across every returned
// ingredient.
type IngredientPreview struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`

	Calories       float64 `json:"calories"`
	Protein        float64 `json:"protein"`
	Carbs          float64 `json:"carbs"`
	Fat            float64 `json:"fat"`
	Fiber          float64 `json:"fiber"`
	Sugar          float64 `json:"sugar"`
	SaturatedFat   float64 `json:"saturatedFat"`
	UnsaturatedFat float64 `json:"unsaturatedFat"`
}

// PreviewSearchResult derives the preview for a search result. With exactly
// one ingredient the preview carries its own name and quantity; with several
// it carries the parent dish name and the default quantity. Totals always
// cover the whole list. ok is false when the result has no ingredients.
func PreviewSearchResult(res *SearchResult) (preview IngredientPreview, ok bool) {
	if res == nil || len(res.Ingredients) == 0 {
		return IngredientPreview{}, false
	}

	if len(res.Ingredients) == 1 {
		preview.Name = res.Ingredients[0].Name
		preview.Quantity = res.Ingredients[0].Quantity
	} else {
		preview.Name = res.DishName
		preview.Quantity = defaultPreviewQuantity
	}

	for _, ing := range res.Ingredients {
		preview.Calories += ing.Calories
		preview.Protein += ing.Protein
		preview.Carbs += ing.Carbs
		preview.Fat += ing.Fat
		preview.Fiber += ing.Fiber
		preview.Sugar += ing.Sugar
		preview.SaturatedFat += ing.SaturatedFat
		preview.UnsaturatedFat += ing.UnsaturatedFat
	}
	return preview, true
}

// AppendSearchResult adds every ingredient of the result to the meal, not
// just the previewed one. The preview names a single line; a confirmed add
// always lands the whole list. Returns how many ingredients were appended.
func AppendSearchResult(meal *models.Meal, res *SearchResult) int {
	if res == nil {
		return 0
	}
	for _, si := range res.Ingredients {
		meal.AddIngredient(toIngredient(si))
	}
	return len(res.Ingredients)
}

func toIngredient(si SearchIngredient) models.Ingredient {
	amount, unit := parseQuantity(si.Quantity)
	return models.Ingredient{
		Name:           si.Name,
		Amount:         amount,
		Unit:           unit,
		MinAmount:      0,
		MaxAmount:      amount * 3, // slider headroom
		Calories:       si.Calories,
		Protein:        si.Protein,
		Carbs:          si.Carbs,
		Fat:            si.Fat,
		Fiber:          si.Fiber,
		Sugar:          si.Sugar,
		SaturatedFat:   si.SaturatedFat,
		UnsaturatedFat: si.UnsaturatedFat,
	}
}

// parseQuantity splits a serving string like "100g" or "1 medium" into a
// numeric amount and a unit. Unparseable strings fall back to 100g, the
// quantity the nutrients were quoted against.
func parseQuantity(q string) (float64, string) {
	q = strings.TrimSpace(q)
	end := 0
	for end < len(q) && (q[end] >= '0' && q[end] <= '9' || q[end] == '.') {
		end++
	}
	amount, err := strconv.ParseFloat(q[:end], 64)
	if err != nil || amount <= 0 {
		return 100, "g"
	}
	unit := strings.TrimSpace(q[end:])
	if unit == "" {
		unit = "g"
	}
	return amount, unit
}
