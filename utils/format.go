package utils

import (
	"math"
	"strconv"
)

// Display formatting for the editor: calories and serving amounts render as
// whole numbers, gram values with one decimal.

func FormatCalories(kcal float64) string {
	return strconv.Itoa(int(math.Round(kcal)))
}

func FormatAmount(amount float64) string {
	return strconv.Itoa(int(math.Round(amount)))
}

func FormatGrams(grams float64) string {
	return strconv.FormatFloat(math.Round(grams*10)/10, 'f', 1, 64) + "g"
}
