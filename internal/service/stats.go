package service

import (
	"context"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// Macros are nutrition values summed over one or more recipes
type Macros struct {
	CaloriesKcal float64 `json:"calories_kcal"`
	ProteinG     float64 `json:"protein_g"`
	FatG         float64 `json:"fat_g"`
	CarbsG       float64 `json:"carbs_g"`
}

func macrosOf(n models.Nutrition) Macros {
	return Macros{
		CaloriesKcal: float64(n.CaloriesKcal),
		ProteinG:     n.ProteinG,
		FatG:         n.FatG,
		CarbsG:       n.CarbsG,
	}
}

func (m Macros) add(o Macros) Macros {
	return Macros{
		CaloriesKcal: m.CaloriesKcal + o.CaloriesKcal,
		ProteinG:     m.ProteinG + o.ProteinG,
		FatG:         m.FatG + o.FatG,
		CarbsG:       m.CarbsG + o.CarbsG,
	}
}

func (m Macros) scale(f float64) Macros {
	return Macros{
		CaloriesKcal: m.CaloriesKcal * f,
		ProteinG:     m.ProteinG * f,
		FatG:         m.FatG * f,
		CarbsG:       m.CarbsG * f,
	}
}

type RecipeMacros struct {
	ID     uint   `json:"id"`
	Title  string `json:"title"`
	Macros Macros `json:"macros"`
}

// NutritionStats is the per-recipe breakdown and total of a recipe selection
type NutritionStats struct {
	Recipes []RecipeMacros `json:"recipes"`
	Total   Macros         `json:"total"`
}

type StatsService struct {
	recipes RecipeStore
}

func NewStatsService(recipes RecipeStore) *StatsService {
	return &StatsService{recipes: recipes}
}

// Build sums the nutrition of the selected recipes. Duplicate ids count once
// and the result keeps the order of first appearance.
func (s *StatsService) Build(ctx context.Context, requester types.Identity, recipeIDs []uint) (*NutritionStats, error) {
	if len(recipeIDs) == 0 {
		return nil, apperror.NewValidation("recipe_ids", "must not be empty")
	}

	seen := make(map[uint]bool, len(recipeIDs))
	ids := make([]uint, 0, len(recipeIDs))
	for _, id := range recipeIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	found, err := s.recipes.FindAllByID(ctx, ids)
	if err != nil {
		return nil, apperror.NewInternal("failed to load recipes", err)
	}
	byID := make(map[uint]*models.Recipe, len(found))
	for _, r := range found {
		if Evaluate(r.Owner, requester).CanRead() {
			byID[r.ID] = r
		}
	}

	var missing []uint
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return nil, apperror.NewMissingIDs("recipe", missing)
	}

	stats := &NutritionStats{Recipes: make([]RecipeMacros, 0, len(ids))}
	for _, id := range ids {
		r := byID[id]
		m := macrosOf(r.Nutrition)
		stats.Recipes = append(stats.Recipes, RecipeMacros{ID: r.ID, Title: r.Title, Macros: m})
		stats.Total = stats.Total.add(m)
	}
	return stats, nil
}
