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
	"github.com/pageza/mealplanner/backend/internal/types"
)

func TestStatsBuild(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	soup := &models.Recipe{ID: 2, Title: "Soup", Nutrition: models.Nutrition{CaloriesKcal: 300, ProteinG: 10, FatG: 5, CarbsG: 40}}
	salad := &models.Recipe{ID: 1, Title: "Salad", Nutrition: models.Nutrition{CaloriesKcal: 150, ProteinG: 3.5, FatG: 9, CarbsG: 12}}
	recipes.On("FindAllByID", mock.Anything, []uint{2, 1}).Return([]*models.Recipe{salad, soup}, nil)

	stats, err := service.NewStatsService(recipes).Build(context.Background(), types.Guest, []uint{2, 1, 2})

	require.NoError(t, err)
	require.Len(t, stats.Recipes, 2)
	assert.Equal(t, "Soup", stats.Recipes[0].Title)
	assert.Equal(t, "Salad", stats.Recipes[1].Title)
	assert.Equal(t, service.Macros{CaloriesKcal: 450, ProteinG: 13.5, FatG: 14, CarbsG: 52}, stats.Total)
}

func TestStatsMissingAndInvisible(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)
	recipes.On("FindAllByID", mock.Anything, []uint{1, 4, 5, 9}).
		Return([]*models.Recipe{publicRecipe(1), ownedRecipe(5, "bert")}, nil)

	_, err := service.NewStatsService(recipes).Build(context.Background(), anna, []uint{1, 4, 5, 9})

	appErr := requireKind(t, err, apperror.NotFound)
	assert.Equal(t, []uint{4, 5, 9}, appErr.IDs)
	assert.Equal(t, "recipe not found: [4, 5, 9]", appErr.Error())
}

func TestStatsEmptySelection(t *testing.T) {
	recipes := new(mocks.MockRecipeStore)

	_, err := service.NewStatsService(recipes).Build(context.Background(), anna, nil)

	requireKind(t, err, apperror.Validation)
	recipes.AssertNotCalled(t, "FindAllByID", mock.Anything, mock.Anything)
}
