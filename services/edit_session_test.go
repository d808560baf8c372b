package services

import (
	"errors"
	"math"
	"testing"

	"github.com/flehn/flutter-edanos-sub001/models"
)

func sessionMeal() *models.Meal {
	return &models.Meal{
		ID:   "meal-1",
		Name: "Breakfast",
		Ingredients: []models.Ingredient{
			{Name: "Oats", Amount: 100, Unit: "g", MinAmount: 0, MaxAmount: 300, Calories: 380, Protein: 13},
			{Name: "Banana", Amount: 1, Unit: "medium", MinAmount: 0, MaxAmount: 3, Calories: 105, Protein: 1.3},
		},
	}
}

func TestBeginClonesTheMeal(t *testing.T) {
	store := NewSessionStore(nil)
	original := sessionMeal()

	sess := store.Begin(7, original)

	snap, err := store.UpdateAmount(7, sess.ID, 0, 200)
	if err != nil {
		t.Fatalf("UpdateAmount() error = %v", err)
	}
	if math.Abs(snap.Ingredients[0].Amount-200) > 1e-9 {
		t.Errorf("working copy amount = %v, want 200", snap.Ingredients[0].Amount)
	}
	if math.Abs(original.Ingredients[0].Amount-100) > 1e-9 {
		t.Errorf("original amount = %v after session edit, want 100 untouched", original.Ingredients[0].Amount)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store := NewSessionStore(nil)
	sess := store.Begin(7, sessionMeal())

	snap, err := store.Snapshot(7, sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	snap.Ingredients[0].Calories = 9999

	again, _ := store.Snapshot(7, sess.ID)
	if again.Ingredients[0].Calories == 9999 {
		t.Error("mutating a snapshot leaked into the session")
	}
}

func TestSessionOwnership(t *testing.T) {
	store := NewSessionStore(nil)
	sess := store.Begin(7, sessionMeal())

	if _, err := store.Snapshot(8, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("another user's lookup error = %v, want ErrSessionNotFound", err)
	}
	if _, err := store.Snapshot(7, "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("unknown id error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionMutations(t *testing.T) {
	store := NewSessionStore(nil)
	sess := store.Begin(7, sessionMeal())

	// out-of-range index surfaces the aggregate error
	if _, err := store.UpdateAmount(7, sess.ID, 5, 50); !errors.Is(err, models.ErrIngredientIndex) {
		t.Errorf("UpdateAmount bad index error = %v, want ErrIngredientIndex", err)
	}

	snap, err := store.RemoveIngredient(7, sess.ID, 1)
	if err != nil {
		t.Fatalf("RemoveIngredient() error = %v", err)
	}
	if len(snap.Ingredients) != 1 {
		t.Fatalf("len(Ingredients) = %d, want 1", len(snap.Ingredients))
	}

	res := &SearchResult{
		DishName: "Salad",
		Ingredients: []SearchIngredient{
			{Name: "Lettuce", Quantity: "50g", Calories: 10},
			{Name: "Tomato", Quantity: "80g", Calories: 20},
		},
	}
	snap, added, err := store.AddSearchResult(7, sess.ID, res)
	if err != nil {
		t.Fatalf("AddSearchResult() error = %v", err)
	}
	if added != 2 || len(snap.Ingredients) != 3 {
		t.Errorf("added = %d, len = %d; want 2 and 3", added, len(snap.Ingredients))
	}
}

func TestSaveInFlightIsRefused(t *testing.T) {
	store := NewSessionStore(nil)
	sess := store.Begin(7, sessionMeal())

	// simulate a save that has not returned yet
	store.mu.Lock()
	store.sessions[sess.ID].saving = true
	store.mu.Unlock()

	if _, _, err := store.Save(7, sess.ID); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("Save() during in-flight save error = %v, want ErrSaveInFlight", err)
	}
}

func TestDiscardDropsSession(t *testing.T) {
	store := NewSessionStore(nil)
	sess := store.Begin(7, sessionMeal())

	if err := store.Discard(7, sess.ID); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}
	if _, err := store.Snapshot(7, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Snapshot after discard error = %v, want ErrSessionNotFound", err)
	}
	if err := store.Discard(7, sess.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Discard error = %v, want ErrSessionNotFound", err)
	}
}
