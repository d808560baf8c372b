// services/meal_repository.go
package services

import (
	"fmt"

	"github.com/flehn/flutter-edanos-sub001/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func ingredientsByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// SaveMeal stores a new meal and returns its id, assigning one if the meal
// has none yet.
func (r *MealRepository) SaveMeal(meal *models.Meal) (string, error) {
	if meal.ID == "" {
		meal.ID = uuid.NewString()
	}
	for i := range meal.Ingredients {
		meal.Ingredients[i].MealID = meal.ID
		meal.Ingredients[i].Position = i
	}
	if err := r.db.Create(meal).Error; err != nil {
		return "", fmt.Errorf("failed to save meal: %w", err)
	}
	return meal.ID, nil
}

// UpdateMeal replaces the stored meal's name, image and ingredient list.
// Items are deleted and re-created so positions stay dense.
func (r *MealRepository) UpdateMeal(userID uint, mealID string, meal *models.Meal) error {
	var stored models.Meal
	if err := r.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&stored).Error; err != nil {
		return fmt.Errorf("failed to load meal %s: %w", mealID, err)
	}

	stored.Name = meal.Name
	if meal.ImageURL != "" {
		stored.ImageURL = meal.ImageURL
	}
	if err := r.db.Save(&stored).Error; err != nil {
		return fmt.Errorf("failed to update meal %s: %w", mealID, err)
	}

	// delete old items
	if err := r.db.
		Where("meal_id = ?", stored.ID).
		Delete(&models.Ingredient{}).Error; err != nil {
		return fmt.Errorf("failed to clear meal items: %w", err)
	}

	for i := range meal.Ingredients {
		ing := meal.Ingredients[i]
		ing.ID = 0
		ing.MealID = stored.ID
		ing.Position = i
		if err := r.db.Create(&ing).Error; err != nil {
			return fmt.Errorf("failed to recreate meal item: %w", err)
		}
	}
	return nil
}

func (r *MealRepository) GetMeal(userID uint, mealID string) (*models.Meal, error) {
	var meal models.Meal
	err := r.db.
		Preload("Ingredients", ingredientsByPosition).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &meal, nil
}

func (r *MealRepository) ListMeals(userID uint) ([]models.Meal, error) {
	var meals []models.Meal
	err := r.db.
		Preload("Ingredients", ingredientsByPosition).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&meals).Error
	return meals, err
}

// DeleteMeal removes a meal and its ingredients. Ownership is checked
// before anything is touched so one user's meal id in another user's hands
// deletes nothing.
func (r *MealRepository) DeleteMeal(userID uint, mealID string) error {
	var meal models.Meal
	if err := r.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return err // could be ErrRecordNotFound
	}

	if err := r.db.
		Where("meal_id = ?", meal.ID).
		Delete(&models.Ingredient{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&meal).Error
}

// SetMealImage stores the uploaded image URL on an existing meal.
func (r *MealRepository) SetMealImage(userID uint, mealID, url string) error {
	res := r.db.Model(&models.Meal{}).
		Where("id = ? AND user_id = ?", mealID, userID).
		Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MealRepository) SaveQuickAddItem(item *models.QuickAddItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to save quick add item: %w", err)
	}
	return nil
}

func (r *MealRepository) ListQuickAddItems(userID uint) ([]models.QuickAddItem, error) {
	var items []models.QuickAddItem
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// MealToQuickAdd derives the quick-add shortcut for a meal. Pure transform,
// nothing is written.
func MealToQuickAdd(meal *models.Meal) models.QuickAddItem {
	return models.QuickAddItem{
		UserID:   meal.UserID,
		Name:     meal.Name,
		ImageURL: meal.ImageURL,
		Calories: meal.TotalCalories(),
		Protein:  meal.TotalProtein(),
		Carbs:    meal.TotalCarbs(),
		Fat:      meal.TotalFat(),
	}
}
