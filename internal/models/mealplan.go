package models

import "time"

// MealPlan is a persisted week plan owned by one account
type MealPlan struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	AccountID uint            `gorm:"not null;index" json:"-"`
	Title     string          `gorm:"size:120;not null" json:"title"`
	WeekStart time.Time       `gorm:"type:date;not null;index" json:"week_start"`
	Entries   []MealPlanEntry `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"entries"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// MealPlanEntry assigns a recipe (or nothing) to one slot of one day.
// A nil RecipeID is an intentionally empty slot.
type MealPlanEntry struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	PlanID   uint      `gorm:"not null;uniqueIndex:idx_plan_day_slot" json:"-"`
	Day      time.Time `gorm:"type:date;not null;uniqueIndex:idx_plan_day_slot" json:"day"`
	Slot     string    `gorm:"size:20;not null;uniqueIndex:idx_plan_day_slot" json:"slot"`
	RecipeID *uint     `gorm:"index" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:SET NULL" json:"recipe,omitempty"`
	Servings *int      `json:"servings,omitempty"`
}

func (MealPlanEntry) TableName() string {
	return "meal_plan_entries"
}
