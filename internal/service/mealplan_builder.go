package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const (
	// DefaultPlanTitle is used when a plan is submitted without a title
	DefaultPlanTitle = "Weekly Plan"
	MaxPlanTitle     = 120
)

// WeekPlan is a validated plan that has not been persisted
type WeekPlan struct {
	Title     string
	WeekStart time.Time
	Entries   []PlannedEntry
}

// PlanBuilder turns a plan submission into a WeekPlan. It never writes.
type PlanBuilder struct {
	validator *PlanValidator
	loc       *time.Location
	now       func() time.Time
}

// NewPlanBuilder creates a builder whose notion of "today" is taken in loc
func NewPlanBuilder(recipes RecipeStore, loc *time.Location) *PlanBuilder {
	if loc == nil {
		loc = time.UTC
	}
	return &PlanBuilder{
		validator: NewPlanValidator(recipes),
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock replaces the builder's clock
func (b *PlanBuilder) WithClock(now func() time.Time) *PlanBuilder {
	b.now = now
	return b
}

// Today returns the current date in the builder's location
func (b *PlanBuilder) Today() time.Time {
	return calendarDate(b.now().In(b.loc), b.loc)
}

// Build validates a submission for owner. A nil weekStart means the current
// week; any date is moved back to the Monday of its week.
func (b *PlanBuilder) Build(ctx context.Context, owner types.Identity, title *string, weekStart *time.Time, drafts []EntryDraft) (*WeekPlan, error) {
	if owner.IsGuest() {
		return nil, apperror.NewUnauthorized("sign in to plan meals")
	}

	today := b.Today()
	anchor := today
	if weekStart != nil && !weekStart.IsZero() {
		anchor = calendarDate(*weekStart, b.loc)
	}
	start := MondayOf(anchor)
	if start.Before(MondayOf(today)) {
		return nil, apperror.NewPastWeek(start)
	}

	entries, err := b.validator.Validate(ctx, drafts, start, owner)
	if err != nil {
		return nil, err
	}

	planTitle := DefaultPlanTitle
	if title != nil && strings.TrimSpace(*title) != "" {
		planTitle = strings.TrimSpace(*title)
	}
	if utf8.RuneCountInString(planTitle) > MaxPlanTitle {
		return nil, apperror.NewValidation("title", "must be at most 120 characters")
	}

	return &WeekPlan{Title: planTitle, WeekStart: start, Entries: entries}, nil
}
