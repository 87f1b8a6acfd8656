package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// IngredientDraft is one ingredient line of a submitted recipe
type IngredientDraft struct {
	Name   string
	Amount string
	Unit   string
}

// RecipeDraft is a new recipe as submitted by its author
type RecipeDraft struct {
	Title        string
	Description  string
	Instructions []string
	Category     string
	ImageURL     string
	PrepMinutes  *int
	Servings     *int
	Nutrition    *models.Nutrition
	Ingredients  []IngredientDraft
}

// RecipePatch changes some fields of a recipe. Nil fields are left alone;
// a non-nil Ingredients replaces the whole list.
type RecipePatch struct {
	Title        *string
	Description  *string
	Instructions *[]string
	Category     *string
	ImageURL     *string
	PrepMinutes  *int
	Servings     *int
	Nutrition    *models.Nutrition
	Ingredients  *[]IngredientDraft
}

// RecipeService applies the visibility rules to every recipe read and write
type RecipeService struct {
	recipes   RecipeStore
	favorites FavoriteStore
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes RecipeStore, favorites FavoriteStore) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		favorites: favorites,
	}
}

// ListVisible returns the public recipes followed by the requester's own
func (s *RecipeService) ListVisible(ctx context.Context, requester types.Identity, q store.RecipeQuery) ([]*models.Recipe, error) {
	var (
		recipes []*models.Recipe
		err     error
	)
	if requester.IsGuest() {
		recipes, err = s.recipes.ListPublic(ctx, q)
	} else {
		recipes, err = s.recipes.ListPublicOrOwnedBy(ctx, requester.Username, q)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to list recipes", err)
	}
	return recipes, nil
}

// ListMine returns only the requester's recipes
func (s *RecipeService) ListMine(ctx context.Context, requester types.Identity, search string) ([]*models.Recipe, error) {
	if requester.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to see your recipes")
	}
	recipes, err := s.recipes.ListOwnedBy(ctx, requester.Username, store.RecipeQuery{Search: search})
	if err != nil {
		return nil, apperror.NewInternal("failed to list recipes", err)
	}
	return recipes, nil
}

// GetVisible returns the recipe if the requester may read it. A missing
// recipe and another account's private recipe both yield NotVisible.
func (s *RecipeService) GetVisible(ctx context.Context, id uint, requester types.Identity) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewNotVisible(id)
	}
	if err != nil {
		return nil, apperror.NewInternal("failed to load recipe", err)
	}
	if !Evaluate(recipe.Owner, requester).CanRead() {
		return nil, apperror.NewNotVisible(id)
	}
	return recipe, nil
}

// Create stores a new recipe owned by owner
func (s *RecipeService) Create(ctx context.Context, draft RecipeDraft, owner types.Identity) (*models.Recipe, error) {
	if owner.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to create recipes")
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	username := strings.TrimSpace(owner.Username)
	recipe := &models.Recipe{
		Title:        strings.TrimSpace(draft.Title),
		Description:  strings.TrimSpace(draft.Description),
		Instructions: cleanSteps(draft.Instructions),
		Category:     strings.TrimSpace(draft.Category),
		ImageURL:     strings.TrimSpace(draft.ImageURL),
		PrepMinutes:  draft.PrepMinutes,
		Servings:     draft.Servings,
		Nutrition:    *draft.Nutrition,
		Ingredients:  toIngredients(draft.Ingredients),
		Owner:        &username,
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, storeError(err, "recipe not found")
	}
	log.Printf("[RecipeService] %s created recipe %d", username, recipe.ID)
	return recipe, nil
}

// Update applies patch to a recipe the requester owns
func (s *RecipeService) Update(ctx context.Context, id uint, patch RecipePatch, requester types.Identity) (*models.Recipe, error) {
	recipe, err := s.loadForWrite(ctx, id, requester)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(recipe, patch); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, storeError(err, fmt.Sprintf("recipe %d not found", id))
	}
	return recipe, nil
}

// Delete removes a recipe the requester owns
func (s *RecipeService) Delete(ctx context.Context, id uint, requester types.Identity) error {
	recipe, err := s.loadForWrite(ctx, id, requester)
	if err != nil {
		return err
	}
	if err := s.recipes.Delete(ctx, recipe); err != nil {
		return storeError(err, fmt.Sprintf("recipe %d not found", id))
	}
	log.Printf("[RecipeService] %s deleted recipe %d", requester.Username, id)
	return nil
}

func (s *RecipeService) loadForWrite(ctx context.Context, id uint, requester types.Identity) (*models.Recipe, error) {
	if requester.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to change recipes")
	}
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("recipe %d not found", id))
	}
	if recipe.IsPublic() {
		return nil, apperror.NewForbidden("public recipes cannot be modified")
	}
	if !Evaluate(recipe.Owner, requester).CanModify() {
		return nil, apperror.NewForbidden("recipe belongs to another account")
	}
	return recipe, nil
}

// AddFavorite marks a recipe the account can see. Repeating it is a no-op.
func (s *RecipeService) AddFavorite(ctx context.Context, account types.Identity, recipeID uint) error {
	if account.IsGuest() {
		return apperror.NewUnauthorized("sign in to save favorites")
	}
	if _, err := s.GetVisible(ctx, recipeID, account); err != nil {
		return err
	}
	if err := s.favorites.Add(ctx, account.AccountID, recipeID); err != nil {
		return apperror.NewInternal("failed to save favorite", err)
	}
	return nil
}

// RemoveFavorite unmarks a recipe whether or not it is still visible
func (s *RecipeService) RemoveFavorite(ctx context.Context, account types.Identity, recipeID uint) error {
	if account.IsGuest() {
		return apperror.NewUnauthorized("sign in to manage favorites")
	}
	if err := s.favorites.Remove(ctx, account.AccountID, recipeID); err != nil {
		return apperror.NewInternal("failed to remove favorite", err)
	}
	return nil
}

// ListFavorites returns the account's favorites that it can still see, in
// the order they were added
func (s *RecipeService) ListFavorites(ctx context.Context, account types.Identity) ([]*models.Recipe, error) {
	if account.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to see favorites")
	}
	ids, err := s.favorites.RecipeIDs(ctx, account.AccountID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load favorites", err)
	}
	found, err := s.recipes.FindAllByID(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to load favorites", err)
	}

	byID := make(map[uint]*models.Recipe, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}
	recipes := make([]*models.Recipe, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok && Evaluate(r.Owner, account).CanRead() {
			recipes = append(recipes, r)
		}
	}
	return recipes, nil
}

func validateDraft(d RecipeDraft) error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return apperror.NewValidation("title", "is required")
	case strings.TrimSpace(d.Description) == "":
		return apperror.NewValidation("description", "is required")
	case len(cleanSteps(d.Instructions)) == 0:
		return apperror.NewValidation("instructions", "at least one step is required")
	case len(d.Ingredients) == 0:
		return apperror.NewValidation("ingredients", "at least one ingredient is required")
	case d.Nutrition == nil:
		return apperror.NewValidation("nutrition", "is required")
	}
	if err := validateIngredients(d.Ingredients); err != nil {
		return err
	}
	return validateNumbers(d.PrepMinutes, d.Servings, d.Nutrition)
}

func validateIngredients(ingredients []IngredientDraft) error {
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return apperror.NewValidation(fmt.Sprintf("ingredients[%d].name", i), "is required")
		}
	}
	return nil
}

func validateNumbers(prep, servings *int, n *models.Nutrition) error {
	if prep != nil && *prep < 0 {
		return apperror.NewValidation("prep_minutes", "must not be negative")
	}
	if servings != nil && *servings < 1 {
		return apperror.NewValidation("servings", "must be at least 1")
	}
	if n != nil && (n.CaloriesKcal < 0 || n.ProteinG < 0 || n.FatG < 0 || n.CarbsG < 0) {
		return apperror.NewValidation("nutrition", "values must not be negative")
	}
	return nil
}

func applyPatch(r *models.Recipe, p RecipePatch) error {
	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return apperror.NewValidation("title", "must not be blank")
		}
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		if strings.TrimSpace(*p.Description) == "" {
			return apperror.NewValidation("description", "must not be blank")
		}
		r.Description = strings.TrimSpace(*p.Description)
	}
	if p.Instructions != nil {
		steps := cleanSteps(*p.Instructions)
		if len(steps) == 0 {
			return apperror.NewValidation("instructions", "at least one step is required")
		}
		r.Instructions = steps
	}
	if p.Ingredients != nil {
		if len(*p.Ingredients) == 0 {
			return apperror.NewValidation("ingredients", "at least one ingredient is required")
		}
		if err := validateIngredients(*p.Ingredients); err != nil {
			return err
		}
		r.Ingredients = toIngredients(*p.Ingredients)
	}
	if err := validateNumbers(p.PrepMinutes, p.Servings, p.Nutrition); err != nil {
		return err
	}
	if p.Category != nil {
		r.Category = strings.TrimSpace(*p.Category)
	}
	if p.ImageURL != nil {
		r.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.PrepMinutes != nil {
		r.PrepMinutes = p.PrepMinutes
	}
	if p.Servings != nil {
		r.Servings = p.Servings
	}
	if p.Nutrition != nil {
		r.Nutrition = *p.Nutrition
	}
	return nil
}

func cleanSteps(steps []string) models.JSONBStringArray {
	out := make(models.JSONBStringArray, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toIngredients(drafts []IngredientDraft) []models.Ingredient {
	out := make([]models.Ingredient, len(drafts))
	for i, d := range drafts {
		out[i] = models.Ingredient{
			Name:   strings.TrimSpace(d.Name),
			Amount: strings.TrimSpace(d.Amount),
			Unit:   strings.TrimSpace(d.Unit),
		}
	}
	return out
}
