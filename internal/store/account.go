package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// AccountStore persists accounts
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// Create inserts the account, returning ErrDuplicate when the username is taken
func (s *AccountStore) Create(ctx context.Context, account *models.Account) error {
	account.UsernameKey = models.UsernameKey(account.Username)
	return translate(s.db.WithContext(ctx).Create(account).Error)
}

func (s *AccountStore) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("username_key = ?", models.UsernameKey(username)).First(&account).Error
	if err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

func (s *AccountStore) FindByID(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &account, nil
}

// FavoriteStore persists the favorite set of each account
type FavoriteStore struct {
	db *gorm.DB
}

func NewFavoriteStore(db *gorm.DB) *FavoriteStore {
	return &FavoriteStore{db: db}
}

// Add marks the recipe as a favorite of the account. Adding an existing pair
// is a no-op.
func (s *FavoriteStore) Add(ctx context.Context, accountID, recipeID uint) error {
	fav := models.Favorite{AccountID: accountID, RecipeID: recipeID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Remove deletes the pair if present
func (s *FavoriteStore) Remove(ctx context.Context, accountID, recipeID uint) error {
	return s.db.WithContext(ctx).
		Where("account_id = ? AND recipe_id = ?", accountID, recipeID).
		Delete(&models.Favorite{}).Error
}

// RecipeIDs lists the account's favorite recipe ids in the order they were added
func (s *FavoriteStore) RecipeIDs(ctx context.Context, accountID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Order("recipe_id ASC").
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
