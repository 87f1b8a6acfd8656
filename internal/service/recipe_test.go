package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/mocks"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/types"
)

func setupRecipeService() (*service.RecipeService, *mocks.MockRecipeStore, *mocks.MockFavoriteStore) {
	recipes := new(mocks.MockRecipeStore)
	favorites := new(mocks.MockFavoriteStore)
	return service.NewRecipeService(recipes, favorites), recipes, favorites
}

func validDraft() service.RecipeDraft {
	return service.RecipeDraft{
		Title:        "Lentil Soup",
		Description:  "Warming and cheap",
		Instructions: []string{"Chop", "Simmer"},
		Category:     "Dinner",
		Nutrition:    &models.Nutrition{CaloriesKcal: 350, ProteinG: 18, FatG: 6, CarbsG: 52},
		Ingredients:  []service.IngredientDraft{{Name: "Lentils", Amount: "200", Unit: "g"}},
	}
}

func TestGetVisible(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	private := ownedRecipe(7, "anna")
	recipes.On("FindByID", mock.Anything, uint(7)).Return(private, nil)
	recipes.On("FindByID", mock.Anything, uint(8)).Return(publicRecipe(8), nil)
	recipes.On("FindByID", mock.Anything, uint(9)).Return(nil, store.ErrNotFound)

	t.Run("guest cannot see a private recipe", func(t *testing.T) {
		_, err := svc.GetVisible(context.Background(), 7, types.Guest)
		appErr := requireKind(t, err, apperror.NotVisible)
		assert.Equal(t, uint(7), appErr.RecipeID)
	})

	t.Run("owner sees the private recipe", func(t *testing.T) {
		got, err := svc.GetVisible(context.Background(), 7, anna)
		require.NoError(t, err)
		assert.Same(t, private, got)
	})

	t.Run("other account cannot see it", func(t *testing.T) {
		_, err := svc.GetVisible(context.Background(), 7, bert)
		requireKind(t, err, apperror.NotVisible)
	})

	t.Run("everyone sees a public recipe", func(t *testing.T) {
		for _, r := range []types.Identity{types.Guest, anna, bert} {
			got, err := svc.GetVisible(context.Background(), 8, r)
			require.NoError(t, err)
			assert.Equal(t, uint(8), got.ID)
		}
	})

	t.Run("missing recipe is not visible", func(t *testing.T) {
		_, err := svc.GetVisible(context.Background(), 9, anna)
		requireKind(t, err, apperror.NotVisible)
	})
}

func TestListVisible(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	q := store.RecipeQuery{Search: "soup", Category: "dinner"}
	public := []*models.Recipe{publicRecipe(1)}
	mixed := []*models.Recipe{publicRecipe(1), ownedRecipe(2, "anna")}
	recipes.On("ListPublic", mock.Anything, q).Return(public, nil)
	recipes.On("ListPublicOrOwnedBy", mock.Anything, "anna", q).Return(mixed, nil)

	got, err := svc.ListVisible(context.Background(), types.Guest, q)
	require.NoError(t, err)
	assert.Equal(t, public, got)

	got, err = svc.ListVisible(context.Background(), anna, q)
	require.NoError(t, err)
	assert.Equal(t, mixed, got)

	recipes.AssertExpectations(t)
}

func TestListMine(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	mine := []*models.Recipe{ownedRecipe(2, "anna")}
	recipes.On("ListOwnedBy", mock.Anything, "anna", store.RecipeQuery{Search: "curry"}).Return(mine, nil)

	_, err := svc.ListMine(context.Background(), types.Guest, "curry")
	requireKind(t, err, apperror.Unauthorized)

	got, err := svc.ListMine(context.Background(), anna, "curry")
	require.NoError(t, err)
	assert.Equal(t, mine, got)
}

func TestCreateRecipe(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	recipes.On("Save", mock.Anything, mock.AnythingOfType("*models.Recipe")).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Recipe).ID = 42 }).
		Return(nil)

	draft := validDraft()
	draft.Title = "  Lentil Soup  "
	draft.Instructions = []string{"Chop", "  ", "Simmer"}

	recipe, err := svc.Create(context.Background(), draft, anna)

	require.NoError(t, err)
	assert.Equal(t, uint(42), recipe.ID)
	assert.Equal(t, "Lentil Soup", recipe.Title)
	require.NotNil(t, recipe.Owner)
	assert.Equal(t, "anna", *recipe.Owner)
	assert.Equal(t, models.JSONBStringArray{"Chop", "Simmer"}, recipe.Instructions)
	assert.Len(t, recipe.Ingredients, 1)
	assert.Equal(t, service.AccessOwned, service.Evaluate(recipe.Owner, anna))
}

func TestCreateRecipeValidation(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*service.RecipeDraft)
	}{
		{"title", func(d *service.RecipeDraft) { d.Title = " " }},
		{"description", func(d *service.RecipeDraft) { d.Description = "" }},
		{"instructions", func(d *service.RecipeDraft) { d.Instructions = []string{" "} }},
		{"ingredients", func(d *service.RecipeDraft) { d.Ingredients = nil }},
		{"nutrition", func(d *service.RecipeDraft) { d.Nutrition = nil }},
		{"ingredients[0].name", func(d *service.RecipeDraft) { d.Ingredients[0].Name = "" }},
		{"servings", func(d *service.RecipeDraft) { d.Servings = intPtr(0) }},
		// first missing field wins
		{"title", func(d *service.RecipeDraft) { d.Title = ""; d.Description = ""; d.Nutrition = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			svc, recipes, _ := setupRecipeService()
			draft := validDraft()
			tt.mutate(&draft)

			_, err := svc.Create(context.Background(), draft, anna)

			appErr := requireKind(t, err, apperror.Validation)
			assert.Equal(t, tt.field, appErr.Field)
			recipes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRecipeRequiresIdentity(t *testing.T) {
	svc, _, _ := setupRecipeService()
	_, err := svc.Create(context.Background(), validDraft(), types.Guest)
	requireKind(t, err, apperror.Unauthorized)
}

func TestUpdateRecipe(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	existing := ownedRecipe(7, "anna")
	existing.Description = "old description"
	existing.Ingredients = []models.Ingredient{{Name: "Salt"}, {Name: "Pepper"}}
	recipes.On("FindByID", mock.Anything, uint(7)).Return(existing, nil)
	recipes.On("Save", mock.Anything, existing).Return(nil)

	title := "New title"
	ingredients := []service.IngredientDraft{{Name: "Butter", Amount: "1", Unit: "tbsp"}}
	updated, err := svc.Update(context.Background(), 7, service.RecipePatch{
		Title:       &title,
		Ingredients: &ingredients,
	}, types.Identity{AccountID: 1, Username: "ANNA"})

	require.NoError(t, err)
	assert.Equal(t, "New title", updated.Title)
	assert.Equal(t, "old description", updated.Description)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Butter", updated.Ingredients[0].Name)
	recipes.AssertExpectations(t)
}

func TestRecipeWriteRules(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	recipes.On("FindByID", mock.Anything, uint(1)).Return(publicRecipe(1), nil)
	recipes.On("FindByID", mock.Anything, uint(7)).Return(ownedRecipe(7, "anna"), nil)
	recipes.On("FindByID", mock.Anything, uint(9)).Return(nil, store.ErrNotFound)

	title := "Hijacked"
	tests := []struct {
		name      string
		id        uint
		requester types.Identity
		kind      apperror.Kind
	}{
		{"guest", 7, types.Guest, apperror.Unauthorized},
		{"public recipe", 1, anna, apperror.Forbidden},
		{"public recipe as admin", 1, types.Identity{AccountID: 99, Username: "admin"}, apperror.Forbidden},
		{"another account's recipe", 7, bert, apperror.Forbidden},
		{"missing recipe", 9, anna, apperror.NotFound},
	}

	for _, tt := range tests {
		t.Run("update "+tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.id, service.RecipePatch{Title: &title}, tt.requester)
			requireKind(t, err, tt.kind)
		})
		t.Run("delete "+tt.name, func(t *testing.T) {
			err := svc.Delete(context.Background(), tt.id, tt.requester)
			requireKind(t, err, tt.kind)
		})
	}
	recipes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	recipes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateRecipeRejectsBlankPatch(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	recipes.On("FindByID", mock.Anything, uint(7)).Return(ownedRecipe(7, "anna"), nil)

	empty := []service.IngredientDraft{}
	_, err := svc.Update(context.Background(), 7, service.RecipePatch{Ingredients: &empty}, anna)

	appErr := requireKind(t, err, apperror.Validation)
	assert.Equal(t, "ingredients", appErr.Field)
	recipes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestDeleteRecipe(t *testing.T) {
	svc, recipes, _ := setupRecipeService()
	recipe := ownedRecipe(7, "anna")
	recipes.On("FindByID", mock.Anything, uint(7)).Return(recipe, nil)
	recipes.On("Delete", mock.Anything, recipe).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 7, anna))
	recipes.AssertExpectations(t)
}

func TestFavorites(t *testing.T) {
	svc, recipes, favorites := setupRecipeService()
	recipes.On("FindByID", mock.Anything, uint(1)).Return(publicRecipe(1), nil)
	recipes.On("FindByID", mock.Anything, uint(5)).Return(ownedRecipe(5, "bert"), nil)
	favorites.On("Add", mock.Anything, uint(1), uint(1)).Return(nil)
	favorites.On("Remove", mock.Anything, uint(1), uint(5)).Return(nil)

	t.Run("add visible recipe", func(t *testing.T) {
		require.NoError(t, svc.AddFavorite(context.Background(), anna, 1))
		require.NoError(t, svc.AddFavorite(context.Background(), anna, 1))
		favorites.AssertNumberOfCalls(t, "Add", 2)
	})

	t.Run("cannot favorite an invisible recipe", func(t *testing.T) {
		err := svc.AddFavorite(context.Background(), anna, 5)
		requireKind(t, err, apperror.NotVisible)
		favorites.AssertNotCalled(t, "Add", mock.Anything, uint(1), uint(5))
	})

	t.Run("remove is unconditional", func(t *testing.T) {
		require.NoError(t, svc.RemoveFavorite(context.Background(), anna, 5))
		favorites.AssertCalled(t, "Remove", mock.Anything, uint(1), uint(5))
	})

	t.Run("guest", func(t *testing.T) {
		requireKind(t, svc.AddFavorite(context.Background(), types.Guest, 1), apperror.Unauthorized)
		requireKind(t, svc.RemoveFavorite(context.Background(), types.Guest, 1), apperror.Unauthorized)
	})
}

func TestListFavoritesHidesInvisible(t *testing.T) {
	svc, recipes, favorites := setupRecipeService()
	favorites.On("RecipeIDs", mock.Anything, uint(1)).Return([]uint{3, 5, 1, 4}, nil)
	recipes.On("FindAllByID", mock.Anything, []uint{3, 5, 1, 4}).
		Return([]*models.Recipe{publicRecipe(1), ownedRecipe(3, "anna"), ownedRecipe(5, "bert")}, nil)

	got, err := svc.ListFavorites(context.Background(), anna)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint(3), got[0].ID)
	assert.Equal(t, uint(1), got[1].ID)
}
