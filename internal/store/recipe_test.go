package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/testhelpers"
)

func titles(recipes []*models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Title
	}
	return out
}

// seedRecipes inserts public and private recipes interleaved so that id order
// and group order differ
func seedRecipes(t *testing.T, db *gorm.DB) {
	t.Helper()
	testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Anna Curry", "anna"))
	testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Tomato Soup", ""))
	testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Bert Stew", "bert"))
	r := testhelpers.NewRecipe("Pancakes", "")
	r.Category = "Breakfast"
	testhelpers.InsertRecipe(t, db, r)
	testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Anna Soup", "Anna"))
}

func runRecipeListing(t *testing.T, db *gorm.DB) {
	s := store.NewRecipeStore(db)
	ctx := context.Background()
	seedRecipes(t, db)

	public, err := s.ListPublic(ctx, store.RecipeQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup", "Pancakes"}, titles(public))

	mine, err := s.ListOwnedBy(ctx, "ANNA", store.RecipeQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna Curry", "Anna Soup"}, titles(mine))

	visible, err := s.ListPublicOrOwnedBy(ctx, "anna", store.RecipeQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup", "Pancakes", "Anna Curry", "Anna Soup"}, titles(visible))

	soups, err := s.ListPublicOrOwnedBy(ctx, "anna", store.RecipeQuery{Search: "SOUP"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tomato Soup", "Anna Soup"}, titles(soups))

	breakfast, err := s.ListPublicOrOwnedBy(ctx, "anna", store.RecipeQuery{Category: "breakfast"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pancakes"}, titles(breakfast))

	require.Len(t, visible[0].Ingredients, 2)
	assert.Equal(t, "Pasta", visible[0].Ingredients[0].Name)
}

func TestRecipeListing(t *testing.T) {
	runRecipeListing(t, testhelpers.SetupSQLite(t))
}

func TestRecipeSaveReplacesIngredients(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	s := store.NewRecipeStore(db)
	ctx := context.Background()

	recipe := testhelpers.NewRecipe("Risotto", "anna")
	require.NoError(t, s.Save(ctx, recipe))
	require.NotZero(t, recipe.ID)

	loaded, err := s.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JSONBStringArray{"Prepare", "Cook", "Serve"}, loaded.Instructions)
	assert.Equal(t, 500, loaded.Nutrition.CaloriesKcal)
	require.Len(t, loaded.Ingredients, 2)

	loaded.Title = "Mushroom Risotto"
	loaded.Ingredients = []models.Ingredient{{Name: "Rice"}, {Name: "Mushrooms"}, {Name: "Stock"}}
	require.NoError(t, s.Save(ctx, loaded))

	reloaded, err := s.FindByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mushroom Risotto", reloaded.Title)
	require.Len(t, reloaded.Ingredients, 3)
	assert.Equal(t, []string{"Rice", "Mushrooms", "Stock"},
		[]string{reloaded.Ingredients[0].Name, reloaded.Ingredients[1].Name, reloaded.Ingredients[2].Name})

	var count int64
	require.NoError(t, db.Model(&models.Ingredient{}).Where("recipe_id = ?", recipe.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestRecipeLookups(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	s := store.NewRecipeStore(db)
	ctx := context.Background()
	r := testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Tomato Soup", ""))

	_, err := s.FindByID(ctx, 999999)
	assert.ErrorIs(t, err, store.ErrNotFound)

	ok, err := s.ExistsByID(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.ExistsByID(ctx, 999999)
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := s.FindAllByID(ctx, []uint{r.ID, 999999})
	require.NoError(t, err)
	assert.Len(t, found, 1)

	byTitle, err := s.FindPublicByTitle(ctx, "Tomato Soup")
	require.NoError(t, err)
	assert.Equal(t, r.ID, byTitle.ID)
	_, err = s.FindPublicByTitle(ctx, "Nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRecipeDeleteEmptiesPlanSlots(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	s := store.NewRecipeStore(db)
	ctx := context.Background()

	account := testhelpers.InsertAccount(t, db, "anna")
	recipe := testhelpers.InsertRecipe(t, db, testhelpers.NewRecipe("Curry", "anna"))
	plan := &models.MealPlan{
		AccountID: account.ID,
		Title:     "Week",
		WeekStart: testhelpers.NextMonday(recipe.CreatedAt),
		Entries: []models.MealPlanEntry{
			{Day: testhelpers.NextMonday(recipe.CreatedAt), Slot: "dinner", RecipeID: &recipe.ID},
		},
	}
	require.NoError(t, store.NewPlanStore(db).Create(ctx, plan))
	require.NoError(t, store.NewFavoriteStore(db).Add(ctx, account.ID, recipe.ID))

	require.NoError(t, s.Delete(ctx, recipe))

	_, err := s.FindByID(ctx, recipe.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	var entry models.MealPlanEntry
	require.NoError(t, db.First(&entry, "plan_id = ?", plan.ID).Error)
	assert.Nil(t, entry.RecipeID)

	ids, err := store.NewFavoriteStore(db).RecipeIDs(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	assert.ErrorIs(t, s.Delete(ctx, recipe), store.ErrNotFound)
}
