package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// RecipeQuery narrows a recipe listing. Empty fields do not filter.
type RecipeQuery struct {
	Search   string
	Category string
}

// RecipeStore persists recipes and their ingredients
type RecipeStore struct {
	db *gorm.DB
}

// NewRecipeStore creates a new RecipeStore instance
func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func preloadIngredients(db *gorm.DB) *gorm.DB {
	return db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID loads a recipe with its ingredients
func (s *RecipeStore) FindByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := preloadIngredients(s.db.WithContext(ctx)).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// FindAllByID loads the recipes that exist among ids, in no particular order
func (s *RecipeStore) FindAllByID(ctx context.Context, ids []uint) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if len(ids) == 0 {
		return recipes, nil
	}
	if err := preloadIngredients(s.db.WithContext(ctx)).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ExistsByID reports whether a recipe with the id exists
func (s *RecipeStore) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindPublicByTitle returns the oldest public recipe with the exact title
func (s *RecipeStore) FindPublicByTitle(ctx context.Context, title string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("owner IS NULL AND title = ?", title).
		Order("id ASC").
		First(&recipe).Error
	if err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// Save inserts or updates the recipe. The ingredient list is always written
// in full, replacing whatever was stored before.
func (s *RecipeStore) Save(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients := recipe.Ingredients
		if recipe.ID == 0 {
			if err := tx.Omit("Ingredients").Create(recipe).Error; err != nil {
				return translate(err)
			}
		} else {
			if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
				return translate(err)
			}
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
				return err
			}
		}

		for i := range ingredients {
			ingredients[i].ID = 0
			ingredients[i].RecipeID = recipe.ID
			ingredients[i].Position = i
		}
		if len(ingredients) > 0 {
			if err := tx.Create(&ingredients).Error; err != nil {
				return err
			}
		}
		recipe.Ingredients = ingredients
		return nil
	})
}

// Delete removes the recipe, its ingredients and favorites, and empties any
// plan slot that pointed at it.
func (s *RecipeStore) Delete(ctx context.Context, recipe *models.Recipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlanEntry{}).
			Where("recipe_id = ?", recipe.ID).
			Update("recipe_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Recipe{}, "id = ?", recipe.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListPublic lists recipes without an owner, oldest first
func (s *RecipeStore) ListPublic(ctx context.Context, q RecipeQuery) ([]*models.Recipe, error) {
	return s.list(ctx, q, func(db *gorm.DB) *gorm.DB {
		return db.Where("owner IS NULL")
	})
}

// ListOwnedBy lists the recipes of one owner, oldest first
func (s *RecipeStore) ListOwnedBy(ctx context.Context, owner string, q RecipeQuery) ([]*models.Recipe, error) {
	return s.list(ctx, q, func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(owner) = ?", strings.ToLower(strings.TrimSpace(owner)))
	})
}

// ListPublicOrOwnedBy lists public recipes followed by the owner's recipes,
// each group oldest first
func (s *RecipeStore) ListPublicOrOwnedBy(ctx context.Context, owner string, q RecipeQuery) ([]*models.Recipe, error) {
	return s.list(ctx, q, func(db *gorm.DB) *gorm.DB {
		return db.Where("(owner IS NULL OR LOWER(owner) = ?)", strings.ToLower(strings.TrimSpace(owner)))
	})
}

func (s *RecipeStore) list(ctx context.Context, q RecipeQuery, scope func(*gorm.DB) *gorm.DB) ([]*models.Recipe, error) {
	query := scope(s.db.WithContext(ctx).Model(&models.Recipe{}))

	if search := strings.TrimSpace(q.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if category := strings.TrimSpace(q.Category); category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(category))
	}

	var recipes []*models.Recipe
	err := preloadIngredients(query).
		Order("CASE WHEN owner IS NULL THEN 0 ELSE 1 END").
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
