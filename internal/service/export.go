package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/types"
)

const exportURLExpiry = 15 * time.Minute

// ExportSlot is one cell of the exported week grid
type ExportSlot struct {
	Slot     MealSlot `json:"slot"`
	RecipeID *uint    `json:"recipe_id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Servings int      `json:"servings,omitempty"`
	Macros   Macros   `json:"macros"`
}

type ExportDay struct {
	Date  string       `json:"date"`
	Slots []ExportSlot `json:"slots"`
	Total Macros       `json:"total"`
}

// PlanDocument is the export-ready form of a plan: seven days of three slots
type PlanDocument struct {
	PlanID    uint        `json:"plan_id"`
	Title     string      `json:"title"`
	WeekStart string      `json:"week_start"`
	Days      []ExportDay `json:"days"`
	Total     Macros      `json:"total"`
}

// ExportResult points at an uploaded document
type ExportResult struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ExportService struct {
	storage ObjectStorage
}

// NewExportService creates the exporter. storage may be nil when uploads are
// not configured; Document still works.
func NewExportService(storage ObjectStorage) *ExportService {
	return &ExportService{storage: storage}
}

// Document lays the plan out as a full week grid. Per-serving macros are
// multiplied by the entry's servings, one when unset.
func (s *ExportService) Document(plan *models.MealPlan) *PlanDocument {
	weekStart := MondayOf(plan.WeekStart)
	doc := &PlanDocument{
		PlanID:    plan.ID,
		Title:     plan.Title,
		WeekStart: weekStart.Format(time.DateOnly),
		Days:      make([]ExportDay, DaysInWeek),
	}

	byKey := make(map[string]models.MealPlanEntry, len(plan.Entries))
	for _, e := range plan.Entries {
		byKey[e.Day.Format(time.DateOnly)+"/"+e.Slot] = e
	}

	for i := 0; i < DaysInWeek; i++ {
		date := weekStart.AddDate(0, 0, i).Format(time.DateOnly)
		day := ExportDay{Date: date, Slots: make([]ExportSlot, 0, len(MealSlots))}
		for _, slot := range MealSlots {
			cell := ExportSlot{Slot: slot}
			if e, ok := byKey[date+"/"+string(slot)]; ok && e.Recipe != nil {
				servings := 1
				if e.Servings != nil {
					servings = *e.Servings
				}
				id := e.Recipe.ID
				cell.RecipeID = &id
				cell.Title = e.Recipe.Title
				cell.Servings = servings
				cell.Macros = macrosOf(e.Recipe.Nutrition).scale(float64(servings))
			}
			day.Total = day.Total.add(cell.Macros)
			day.Slots = append(day.Slots, cell)
		}
		doc.Total = doc.Total.add(day.Total)
		doc.Days[i] = day
	}
	return doc
}

// Upload stores the plan document and returns a short-lived download link
func (s *ExportService) Upload(ctx context.Context, owner types.Identity, plan *models.MealPlan) (*ExportResult, error) {
	if s.storage == nil {
		return nil, apperror.NewInternal("export storage is not configured", nil)
	}

	data, err := json.MarshalIndent(s.Document(plan), "", "  ")
	if err != nil {
		return nil, apperror.NewInternal("failed to encode plan", err)
	}

	key := fmt.Sprintf("exports/%d/%d-%s.json", owner.AccountID, plan.ID, uuid.NewString())
	if err := s.storage.PutObject(ctx, key, data, "application/json"); err != nil {
		return nil, apperror.NewInternal("failed to upload plan", err)
	}
	url, err := s.storage.GeneratePresignedURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, apperror.NewInternal("failed to sign download link", err)
	}
	return &ExportResult{Key: key, URL: url, ExpiresAt: time.Now().Add(exportURLExpiry)}, nil
}
