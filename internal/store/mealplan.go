package store

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/models"
)

// PlanStore persists meal plans. Every lookup is scoped to the owning account.
type PlanStore struct {
	db *gorm.DB
}

func NewPlanStore(db *gorm.DB) *PlanStore {
	return &PlanStore{db: db}
}

func preloadEntries(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("day ASC").Order("id ASC")
		}).
		Preload("Entries.Recipe").
		Preload("Entries.Recipe.Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
}

// Create inserts the plan and its entries
func (s *PlanStore) Create(ctx context.Context, plan *models.MealPlan) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := plan.Entries
		if err := tx.Omit("Entries").Create(plan).Error; err != nil {
			return translate(err)
		}
		return insertEntries(tx, plan, entries)
	})
}

// Replace overwrites title, week and the full entry list of an existing plan
func (s *PlanStore) Replace(ctx context.Context, plan *models.MealPlan) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entries := plan.Entries
		result := tx.Model(&models.MealPlan{}).
			Where("id = ? AND account_id = ?", plan.ID, plan.AccountID).
			Updates(map[string]interface{}{
				"title":      plan.Title,
				"week_start": plan.WeekStart,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&models.MealPlanEntry{}).Error; err != nil {
			return err
		}
		return insertEntries(tx, plan, entries)
	})
}

func insertEntries(tx *gorm.DB, plan *models.MealPlan, entries []models.MealPlanEntry) error {
	for i := range entries {
		entries[i].ID = 0
		entries[i].PlanID = plan.ID
	}
	if len(entries) > 0 {
		if err := tx.Omit("Recipe").Create(&entries).Error; err != nil {
			return translate(err)
		}
	}
	plan.Entries = entries
	return nil
}

// Find loads one plan of the account with entries and their recipes
func (s *PlanStore) Find(ctx context.Context, accountID, id uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	err := preloadEntries(s.db.WithContext(ctx)).
		Where("id = ? AND account_id = ?", id, accountID).
		First(&plan).Error
	if err != nil {
		return nil, translate(err)
	}
	return &plan, nil
}

// List returns the account's plans, most recent week first
func (s *PlanStore) List(ctx context.Context, accountID uint) ([]*models.MealPlan, error) {
	var plans []*models.MealPlan
	err := preloadEntries(s.db.WithContext(ctx)).
		Where("account_id = ?", accountID).
		Order("week_start DESC").
		Order("id DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// Delete removes one plan of the account and its entries
func (s *PlanStore) Delete(ctx context.Context, accountID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MealPlan{}).Where("id = ? AND account_id = ?", id, accountID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Where("plan_id = ?", id).Delete(&models.MealPlanEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MealPlan{}, "id = ?", id).Error
	})
}
