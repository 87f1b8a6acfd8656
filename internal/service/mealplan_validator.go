package service

import (
	"context"
	"sort"
	"time"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// RecipeRef optionally points at a recipe. The zero value is NoRecipe, an
// intentionally empty slot.
type RecipeRef struct {
	id  uint
	set bool
}

// NoRecipe leaves a slot empty
var NoRecipe = RecipeRef{}

// RefTo references the recipe with the given id
func RefTo(id uint) RecipeRef {
	return RecipeRef{id: id, set: true}
}

// ID returns the referenced id and whether one is set
func (r RecipeRef) ID() (uint, bool) {
	return r.id, r.set
}

// EntryDraft is one unvalidated (day, slot, recipe) assignment
type EntryDraft struct {
	Day      time.Time
	Slot     string
	Recipe   RecipeRef
	Servings *int
}

// PlannedEntry is a validated entry. Recipe is nil for an empty slot.
type PlannedEntry struct {
	Day      time.Time
	Slot     MealSlot
	Recipe   *models.Recipe
	Servings *int
}

type slotKey struct {
	day  time.Time
	slot MealSlot
}

// PlanValidator checks a week's entries and resolves their recipes. It only
// reads from the recipe store.
type PlanValidator struct {
	recipes RecipeStore
}

func NewPlanValidator(recipes RecipeStore) *PlanValidator {
	return &PlanValidator{recipes: recipes}
}

// Validate returns the entries in canonical order (by day, then breakfast,
// lunch, dinner) or the first violation found. weekStart must already be a
// Monday; entry days are read as calendar dates in weekStart's location.
// Recipes the owner cannot see are reported the same as missing ones.
func (v *PlanValidator) Validate(ctx context.Context, drafts []EntryDraft, weekStart time.Time, owner types.Identity) ([]PlannedEntry, error) {
	if len(drafts) == 0 {
		return nil, apperror.NewEmptySubmission()
	}

	loc := weekStart.Location()
	entries := make([]PlannedEntry, len(drafts))
	for i, d := range drafts {
		if d.Day.IsZero() {
			return nil, apperror.NewMissingField("day", i)
		}
		slot, err := ParseMealSlot(d.Slot)
		if err != nil {
			return nil, apperror.NewMissingField("slot", i)
		}
		if d.Servings != nil && *d.Servings < 1 {
			return nil, apperror.NewValidation("servings", "must be at least 1")
		}
		entries[i] = PlannedEntry{Day: calendarDate(d.Day, loc), Slot: slot, Servings: d.Servings}
	}

	seen := make(map[slotKey]bool, len(entries))
	for _, e := range entries {
		key := slotKey{day: e.Day, slot: e.Slot}
		if seen[key] {
			return nil, apperror.NewDuplicateSlot(e.Day, string(e.Slot))
		}
		seen[key] = true
	}

	weekEnd := weekStart.AddDate(0, 0, DaysInWeek-1)
	for _, e := range entries {
		if e.Day.Before(weekStart) || e.Day.After(weekEnd) {
			return nil, apperror.NewOutOfWeekRange(e.Day, weekStart)
		}
	}

	if err := v.resolve(ctx, drafts, entries, owner); err != nil {
		return nil, err
	}

	covered := make(map[time.Time]bool, DaysInWeek)
	for _, e := range entries {
		if e.Recipe != nil {
			covered[e.Day] = true
		}
	}
	for i := 0; i < DaysInWeek; i++ {
		day := weekStart.AddDate(0, 0, i)
		if !covered[day] {
			return nil, apperror.NewDayWithoutRecipe(day)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Day.Equal(entries[j].Day) {
			return entries[i].Day.Before(entries[j].Day)
		}
		return entries[i].Slot.order() < entries[j].Slot.order()
	})
	return entries, nil
}

// resolve loads every referenced recipe in one query and attaches it to its
// entry. The first unresolvable reference in submission order is reported.
func (v *PlanValidator) resolve(ctx context.Context, drafts []EntryDraft, entries []PlannedEntry, owner types.Identity) error {
	var ids []uint
	for _, d := range drafts {
		if id, ok := d.Recipe.ID(); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	found, err := v.recipes.FindAllByID(ctx, ids)
	if err != nil {
		return apperror.NewInternal("failed to resolve plan recipes", err)
	}
	byID := make(map[uint]*models.Recipe, len(found))
	for _, r := range found {
		if Evaluate(r.Owner, owner).CanRead() {
			byID[r.ID] = r
		}
	}

	for i, d := range drafts {
		id, ok := d.Recipe.ID()
		if !ok {
			continue
		}
		recipe, exists := byID[id]
		if !exists {
			return apperror.NewRecipeNotFound(id)
		}
		entries[i].Recipe = recipe
	}
	return nil
}
