package testhelpers

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// NewRecipe builds a complete recipe draft; owner "" makes it public
func NewRecipe(title, owner string) *models.Recipe {
	r := &models.Recipe{
		Title:        title,
		Description:  title + " description",
		Instructions: models.JSONBStringArray{"Prepare", "Cook", "Serve"},
		Category:     "Dinner",
		Servings:     Ptr(2),
		Nutrition:    models.Nutrition{CaloriesKcal: 500, ProteinG: 20, FatG: 15, CarbsG: 60},
		Ingredients: []models.Ingredient{
			{Name: "Pasta", Amount: "200", Unit: "g"},
			{Name: "Salt", Amount: "1", Unit: "tsp"},
		},
	}
	if owner != "" {
		r.Owner = Ptr(owner)
	}
	return r
}

// InsertRecipe writes a recipe and its ingredients directly
func InsertRecipe(t *testing.T, db *gorm.DB, r *models.Recipe) *models.Recipe {
	t.Helper()
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to insert recipe %q: %v", r.Title, err)
	}
	return r
}

// InsertAccount writes an account with a placeholder password hash
func InsertAccount(t *testing.T, db *gorm.DB, username string) *models.Account {
	t.Helper()
	account := &models.Account{
		Username:     username,
		UsernameKey:  models.UsernameKey(username),
		PasswordHash: "$2a$10$placeholderplaceholderplaceholderplaceholderpla",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to insert account %q: %v", username, err)
	}
	return account
}

// NextMonday returns the Monday of the week after the one containing now, at UTC midnight
func NextMonday(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, 7-offset)
}
