package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
)

// Dependencies are the services the HTTP surface is built on. WriteLimiter
// and Health entries are optional.
type Dependencies struct {
	Auth           *service.AuthService
	Recipes        *service.RecipeService
	Plans          *service.MealPlanService
	Stats          *service.StatsService
	Export         *service.ExportService
	WriteLimiter   *middleware.RateLimiter
	Health         map[string]api.Pinger
	AllowedOrigins []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.Recovery())

	// CORS middleware
	router.Use(middleware.CORS(deps.AllowedOrigins...))

	router.GET("/healthz", api.HealthCheck(deps.Health))

	// API v1 routes
	v1 := router.Group("/api/v1")

	api.NewAuthHandler(deps.Auth).RegisterRoutes(v1)
	api.NewRecipeHandler(deps.Recipes, deps.Auth, deps.WriteLimiter).RegisterRoutes(v1)
	api.NewPlanHandler(deps.Plans, deps.Export, deps.Auth).RegisterRoutes(v1)
	api.NewStatsHandler(deps.Stats, deps.Auth).RegisterRoutes(v1)

	return router
}
