package types

import "github.com/pageza/mealplanner/backend/internal/models"

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by a successful login
type TokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt int64           `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

// IngredientRequest is one ingredient line of a recipe request
type IngredientRequest struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// CreateRecipeRequest represents the request body for creating a recipe.
// Required fields are checked by the recipe service so that the first
// missing one is named.
type CreateRecipeRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Instructions []string            `json:"instructions"`
	Category     string              `json:"category"`
	ImageURL     string              `json:"image_url"`
	PrepMinutes  *int                `json:"prep_minutes"`
	Servings     *int                `json:"servings"`
	Nutrition    *models.Nutrition   `json:"nutrition"`
	Ingredients  []IngredientRequest `json:"ingredients"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Omitted fields are left unchanged.
type UpdateRecipeRequest struct {
	Title        *string              `json:"title"`
	Description  *string              `json:"description"`
	Instructions *[]string            `json:"instructions"`
	Category     *string              `json:"category"`
	ImageURL     *string              `json:"image_url"`
	PrepMinutes  *int                 `json:"prep_minutes"`
	Servings     *int                 `json:"servings"`
	Nutrition    *models.Nutrition    `json:"nutrition"`
	Ingredients  *[]IngredientRequest `json:"ingredients"`
}

// PlanEntryRequest assigns a recipe to one slot. A null recipe_id leaves the
// slot empty. Dates use the YYYY-MM-DD form.
type PlanEntryRequest struct {
	Day      string `json:"day"`
	Slot     string `json:"slot"`
	RecipeID *uint  `json:"recipe_id"`
	Servings *int   `json:"servings"`
}

// PlanRequest represents the request body for previewing, creating or
// replacing a meal plan
type PlanRequest struct {
	Title     *string            `json:"title"`
	WeekStart *string            `json:"week_start"`
	Entries   []PlanEntryRequest `json:"entries"`
}

// PlanEntryResponse is one slot of a plan as returned to clients
type PlanEntryResponse struct {
	Day         string            `json:"day"`
	Slot        string            `json:"slot"`
	RecipeID    *uint             `json:"recipe_id"`
	RecipeTitle string            `json:"recipe_title,omitempty"`
	Nutrition   *models.Nutrition `json:"nutrition,omitempty"`
	Servings    *int              `json:"servings,omitempty"`
}

// PlanResponse is a plan as returned to clients. ID is zero for previews.
type PlanResponse struct {
	ID        uint                `json:"id,omitempty"`
	Title     string              `json:"title"`
	WeekStart string              `json:"week_start"`
	Entries   []PlanEntryResponse `json:"entries"`
}

// StatsRequest selects the recipes to aggregate
type StatsRequest struct {
	RecipeIDs []uint `json:"recipe_ids" binding:"required"`
}
