package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
)

// MockRecipeStore is a mock implementation of service.RecipeStore
type MockRecipeStore struct {
	mock.Mock
}

func (m *MockRecipeStore) FindByID(ctx context.Context, id uint) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) FindAllByID(ctx context.Context, ids []uint) ([]*models.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeStore) Save(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeStore) ListPublic(ctx context.Context, q store.RecipeQuery) ([]*models.Recipe, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) ListOwnedBy(ctx context.Context, owner string, q store.RecipeQuery) ([]*models.Recipe, error) {
	args := m.Called(ctx, owner, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

func (m *MockRecipeStore) ListPublicOrOwnedBy(ctx context.Context, owner string, q store.RecipeQuery) ([]*models.Recipe, error) {
	args := m.Called(ctx, owner, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Recipe), args.Error(1)
}

// MockFavoriteStore is a mock implementation of service.FavoriteStore
type MockFavoriteStore struct {
	mock.Mock
}

func (m *MockFavoriteStore) Add(ctx context.Context, accountID, recipeID uint) error {
	return m.Called(ctx, accountID, recipeID).Error(0)
}

func (m *MockFavoriteStore) Remove(ctx context.Context, accountID, recipeID uint) error {
	return m.Called(ctx, accountID, recipeID).Error(0)
}

func (m *MockFavoriteStore) RecipeIDs(ctx context.Context, accountID uint) ([]uint, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}
