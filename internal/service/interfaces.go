package service

import (
	"context"
	"time"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
)

// RecipeStore is the recipe persistence the services depend on.
// Lookups of a missing id return store.ErrNotFound.
type RecipeStore interface {
	FindByID(ctx context.Context, id uint) (*models.Recipe, error)
	FindAllByID(ctx context.Context, ids []uint) ([]*models.Recipe, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	Save(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, recipe *models.Recipe) error
	ListPublic(ctx context.Context, q store.RecipeQuery) ([]*models.Recipe, error)
	ListOwnedBy(ctx context.Context, owner string, q store.RecipeQuery) ([]*models.Recipe, error)
	ListPublicOrOwnedBy(ctx context.Context, owner string, q store.RecipeQuery) ([]*models.Recipe, error)
}

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByID(ctx context.Context, id uint) (*models.Account, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, accountID, recipeID uint) error
	Remove(ctx context.Context, accountID, recipeID uint) error
	RecipeIDs(ctx context.Context, accountID uint) ([]uint, error)
}

// PlanStore persists meal plans scoped to their owning account
type PlanStore interface {
	Create(ctx context.Context, plan *models.MealPlan) error
	Replace(ctx context.Context, plan *models.MealPlan) error
	Find(ctx context.Context, accountID, id uint) (*models.MealPlan, error)
	List(ctx context.Context, accountID uint) ([]*models.MealPlan, error)
	Delete(ctx context.Context, accountID, id uint) error
}

// TokenRevoker remembers revoked token ids until they would have expired anyway
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// ObjectStorage is where exported plan documents are uploaded
type ObjectStorage interface {
	PutObject(ctx context.Context, objectKey string, data []byte, contentType string) error
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}
