package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/types"
)

type PlanHandler struct {
	planService   *service.MealPlanService
	exportService *service.ExportService
	auth          middleware.Authenticator
}

func NewPlanHandler(planService *service.MealPlanService, exportService *service.ExportService, auth middleware.Authenticator) *PlanHandler {
	return &PlanHandler{
		planService:   planService,
		exportService: exportService,
		auth:          auth,
	}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans", middleware.AuthMiddleware(h.auth))
	{
		plans.POST("/preview", h.PreviewPlan)
		plans.GET("", h.ListPlans)
		plans.POST("", h.CreatePlan)
		plans.GET("/:id", h.GetPlan)
		plans.PUT("/:id", h.UpdatePlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.GET("/:id/export", h.ExportPlan)
		plans.POST("/:id/export", h.UploadPlanExport)
	}
}

func (h *PlanHandler) PreviewPlan(c *gin.Context) {
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}
	plan, err := h.planService.Preview(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": WeekPlanResponse(plan)})
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]types.PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = mealPlanResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"plans": out})
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}
	plan, err := h.planService.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"plan": mealPlanResponse(plan)})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": mealPlanResponse(plan)})
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := bindPlanRequest(c)
	if !ok {
		return
	}
	plan, err := h.planService.Update(c.Request.Context(), middleware.IdentityFrom(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": mealPlanResponse(plan)})
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), middleware.IdentityFrom(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan returns the export document inline
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), middleware.IdentityFrom(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.exportService.Document(plan))
}

// UploadPlanExport stores the export document and returns a download link
func (h *PlanHandler) UploadPlanExport(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	identity := middleware.IdentityFrom(c)
	plan, err := h.planService.Get(c.Request.Context(), identity, id)
	if err != nil {
		respondError(c, err)
		return
	}
	result, err := h.exportService.Upload(c.Request.Context(), identity, plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"export": result})
}

// bindPlanRequest decodes the body into a service request
func bindPlanRequest(c *gin.Context) (service.PlanRequest, bool) {
	var body types.PlanRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err.Error())
		return service.PlanRequest{}, false
	}
	req, err := DecodePlanRequest(body)
	if err != nil {
		respondError(c, err)
		return service.PlanRequest{}, false
	}
	return req, true
}

// DecodePlanRequest converts the wire form of a plan. Unparseable entry days
// are passed on as missing so the validator reports them with their index.
func DecodePlanRequest(body types.PlanRequest) (service.PlanRequest, error) {
	req := service.PlanRequest{Title: body.Title, Entries: make([]service.EntryDraft, len(body.Entries))}
	if body.WeekStart != nil && strings.TrimSpace(*body.WeekStart) != "" {
		weekStart, err := time.Parse(time.DateOnly, strings.TrimSpace(*body.WeekStart))
		if err != nil {
			return service.PlanRequest{}, apperror.NewValidation("week_start", "must be a date in YYYY-MM-DD form")
		}
		req.WeekStart = &weekStart
	}

	for i, e := range body.Entries {
		draft := service.EntryDraft{Slot: e.Slot, Servings: e.Servings}
		if day, err := time.Parse(time.DateOnly, strings.TrimSpace(e.Day)); err == nil {
			draft.Day = day
		}
		if e.RecipeID != nil {
			draft.Recipe = service.RefTo(*e.RecipeID)
		}
		req.Entries[i] = draft
	}
	return req, nil
}

// WeekPlanResponse renders a validated, unsaved plan
func WeekPlanResponse(plan *service.WeekPlan) types.PlanResponse {
	resp := types.PlanResponse{
		Title:     plan.Title,
		WeekStart: plan.WeekStart.Format(time.DateOnly),
		Entries:   make([]types.PlanEntryResponse, len(plan.Entries)),
	}
	for i, e := range plan.Entries {
		entry := types.PlanEntryResponse{Day: e.Day.Format(time.DateOnly), Slot: string(e.Slot), Servings: e.Servings}
		if e.Recipe != nil {
			id := e.Recipe.ID
			entry.RecipeID = &id
			entry.RecipeTitle = e.Recipe.Title
			entry.Nutrition = &e.Recipe.Nutrition
		}
		resp.Entries[i] = entry
	}
	return resp
}

func mealPlanResponse(plan *models.MealPlan) types.PlanResponse {
	resp := types.PlanResponse{
		ID:        plan.ID,
		Title:     plan.Title,
		WeekStart: plan.WeekStart.Format(time.DateOnly),
		Entries:   make([]types.PlanEntryResponse, len(plan.Entries)),
	}
	for i, e := range plan.Entries {
		entry := types.PlanEntryResponse{Day: e.Day.Format(time.DateOnly), Slot: e.Slot, RecipeID: e.RecipeID, Servings: e.Servings}
		if e.Recipe != nil {
			entry.RecipeTitle = e.Recipe.Title
			entry.Nutrition = &e.Recipe.Nutrition
		}
		resp.Entries[i] = entry
	}
	return resp
}
