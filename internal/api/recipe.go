package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	auth          middleware.Authenticator
	writeLimiter  *middleware.RateLimiter
}

// NewRecipeHandler wires the recipe routes. writeLimiter may be nil.
func NewRecipeHandler(recipeService *service.RecipeService, auth middleware.Authenticator, writeLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		auth:          auth,
		writeLimiter:  writeLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	requireAuth := middleware.AuthMiddleware(h.auth)
	limit := h.writeLimiter.Middleware()

	recipes := router.Group("/recipes")
	{
		recipes.GET("", middleware.OptionalAuth(h.auth), h.ListRecipes)
		recipes.GET("/mine", requireAuth, h.ListMine)
		recipes.GET("/:id", middleware.OptionalAuth(h.auth), h.GetRecipe)
		recipes.POST("", requireAuth, limit, h.CreateRecipe)
		recipes.PUT("/:id", requireAuth, limit, h.UpdateRecipe)
		recipes.DELETE("/:id", requireAuth, limit, h.DeleteRecipe)
		recipes.POST("/:id/favorite", requireAuth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", requireAuth, h.UnfavoriteRecipe)
	}
	router.GET("/favorites", requireAuth, h.ListFavorites)
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	q := store.RecipeQuery{Search: c.Query("search"), Category: c.Query("category")}
	recipes, err := h.recipeService.ListVisible(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) ListMine(c *gin.Context) {
	recipes, err := h.recipeService.ListMine(c.Request.Context(), middleware.IdentityFrom(c), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	recipe, err := h.recipeService.GetVisible(c.Request.Context(), id, middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	draft := service.RecipeDraft{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		PrepMinutes:  req.PrepMinutes,
		Servings:     req.Servings,
		Nutrition:    req.Nutrition,
		Ingredients:  toIngredientDrafts(req.Ingredients),
	}
	recipe, err := h.recipeService.Create(c.Request.Context(), draft, middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	patch := service.RecipePatch{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
		PrepMinutes:  req.PrepMinutes,
		Servings:     req.Servings,
		Nutrition:    req.Nutrition,
	}
	if req.Ingredients != nil {
		drafts := toIngredientDrafts(*req.Ingredients)
		patch.Ingredients = &drafts
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), id, patch, middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.recipeService.Delete(c.Request.Context(), id, middleware.IdentityFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.recipeService.AddFavorite(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.recipeService.RemoveFavorite(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) ListFavorites(c *gin.Context) {
	recipes, err := h.recipeService.ListFavorites(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func toIngredientDrafts(in []types.IngredientRequest) []service.IngredientDraft {
	out := make([]service.IngredientDraft, len(in))
	for i, ing := range in {
		out[i] = service.IngredientDraft{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit}
	}
	return out
}
