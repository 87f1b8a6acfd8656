package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type StatsHandler struct {
	statsService *service.StatsService
	auth         middleware.Authenticator
}

func NewStatsHandler(statsService *service.StatsService, auth middleware.Authenticator) *StatsHandler {
	return &StatsHandler{statsService: statsService, auth: auth}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/stats", middleware.OptionalAuth(h.auth), h.Stats)
}

func (h *StatsHandler) Stats(c *gin.Context) {
	var req types.StatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	stats, err := h.statsService.Build(c.Request.Context(), middleware.IdentityFrom(c), req.RecipeIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
