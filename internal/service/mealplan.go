package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// PlanRequest is a plan submission as received from a client
type PlanRequest struct {
	Title     *string
	WeekStart *time.Time
	Entries   []EntryDraft
}

// MealPlanService stores plans built by PlanBuilder. Plans are private to
// their account; another account's plan is reported as not found.
type MealPlanService struct {
	builder *PlanBuilder
	plans   PlanStore
}

func NewMealPlanService(builder *PlanBuilder, plans PlanStore) *MealPlanService {
	return &MealPlanService{builder: builder, plans: plans}
}

// Preview validates a submission without saving it
func (s *MealPlanService) Preview(ctx context.Context, owner types.Identity, req PlanRequest) (*WeekPlan, error) {
	return s.builder.Build(ctx, owner, req.Title, req.WeekStart, req.Entries)
}

func (s *MealPlanService) List(ctx context.Context, owner types.Identity) ([]*models.MealPlan, error) {
	if owner.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to see your plans")
	}
	plans, err := s.plans.List(ctx, owner.AccountID)
	if err != nil {
		return nil, storeError(err, "meal plans not found")
	}
	return plans, nil
}

func (s *MealPlanService) Get(ctx context.Context, owner types.Identity, id uint) (*models.MealPlan, error) {
	if owner.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to see your plans")
	}
	plan, err := s.plans.Find(ctx, owner.AccountID, id)
	if err != nil {
		return nil, storeError(err, fmt.Sprintf("meal plan %d not found", id))
	}
	return plan, nil
}

// Create builds and saves a new plan
func (s *MealPlanService) Create(ctx context.Context, owner types.Identity, req PlanRequest) (*models.MealPlan, error) {
	built, err := s.builder.Build(ctx, owner, req.Title, req.WeekStart, req.Entries)
	if err != nil {
		return nil, err
	}

	plan := toMealPlan(owner.AccountID, built)
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, storeError(err, "meal plan not found")
	}
	log.Printf("[PlanService] account %d created plan %d for week %s", owner.AccountID, plan.ID, plan.WeekStart.Format(time.DateOnly))
	return plan, nil
}

// Update replaces title, week and every entry of an existing plan
func (s *MealPlanService) Update(ctx context.Context, owner types.Identity, id uint, req PlanRequest) (*models.MealPlan, error) {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return nil, err
	}

	built, err := s.builder.Build(ctx, owner, req.Title, req.WeekStart, req.Entries)
	if err != nil {
		return nil, err
	}

	plan := toMealPlan(owner.AccountID, built)
	plan.ID = id
	if err := s.plans.Replace(ctx, plan); err != nil {
		return nil, storeError(err, fmt.Sprintf("meal plan %d not found", id))
	}
	return plan, nil
}

func (s *MealPlanService) Delete(ctx context.Context, owner types.Identity, id uint) error {
	if owner.IsGuest() {
		return apperror.NewUnauthorized("sign in to delete plans")
	}
	if err := s.plans.Delete(ctx, owner.AccountID, id); err != nil {
		return storeError(err, fmt.Sprintf("meal plan %d not found", id))
	}
	return nil
}

func toMealPlan(accountID uint, built *WeekPlan) *models.MealPlan {
	plan := &models.MealPlan{
		AccountID: accountID,
		Title:     built.Title,
		WeekStart: built.WeekStart,
		Entries:   make([]models.MealPlanEntry, 0, len(built.Entries)),
	}
	for _, e := range built.Entries {
		entry := models.MealPlanEntry{
			Day:      e.Day,
			Slot:     string(e.Slot),
			Servings: e.Servings,
		}
		if e.Recipe != nil {
			id := e.Recipe.ID
			entry.RecipeID = &id
			entry.Recipe = e.Recipe
		}
		plan.Entries = append(plan.Entries, entry)
	}
	return plan
}
