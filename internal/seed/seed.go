// Package seed loads the built-in public recipe catalog.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
)

//go:embed recipes.yaml
var catalogYAML []byte

// Store is the subset of the recipe store seeding needs
type Store interface {
	FindPublicByTitle(ctx context.Context, title string) (*models.Recipe, error)
	Save(ctx context.Context, recipe *models.Recipe) error
}

type catalogRecipe struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Category     string   `yaml:"category"`
	PrepMinutes  *int     `yaml:"prep_minutes"`
	Servings     *int     `yaml:"servings"`
	Instructions []string `yaml:"instructions"`
	Ingredients  []struct {
		Name   string `yaml:"name"`
		Amount string `yaml:"amount"`
		Unit   string `yaml:"unit"`
	} `yaml:"ingredients"`
	Nutrition struct {
		Calories int     `yaml:"calories"`
		Protein  float64 `yaml:"protein"`
		Fat      float64 `yaml:"fat"`
		Carbs    float64 `yaml:"carbs"`
	} `yaml:"nutrition"`
}

// Catalog parses the embedded recipe list
func Catalog() ([]*models.Recipe, error) {
	return parse(catalogYAML)
}

func parse(data []byte) ([]*models.Recipe, error) {
	var doc struct {
		Recipes []catalogRecipe `yaml:"recipes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recipe catalog: %w", err)
	}

	recipes := make([]*models.Recipe, 0, len(doc.Recipes))
	for i, c := range doc.Recipes {
		if strings.TrimSpace(c.Title) == "" {
			return nil, fmt.Errorf("catalog recipe %d has no title", i)
		}
		r := &models.Recipe{
			Title:        strings.TrimSpace(c.Title),
			Description:  c.Description,
			Category:     c.Category,
			PrepMinutes:  c.PrepMinutes,
			Servings:     c.Servings,
			Instructions: models.JSONBStringArray(c.Instructions),
			Nutrition: models.Nutrition{
				CaloriesKcal: c.Nutrition.Calories,
				ProteinG:     c.Nutrition.Protein,
				FatG:         c.Nutrition.Fat,
				CarbsG:       c.Nutrition.Carbs,
			},
		}
		for _, ing := range c.Ingredients {
			r.Ingredients = append(r.Ingredients, models.Ingredient{Name: ing.Name, Amount: ing.Amount, Unit: ing.Unit})
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// Run inserts every catalog recipe that has no public recipe of the same
// title yet and returns how many were added. Running it twice adds nothing.
func Run(ctx context.Context, recipes Store) (int, error) {
	catalog, err := Catalog()
	if err != nil {
		return 0, err
	}
	return insertMissing(ctx, recipes, catalog)
}

func insertMissing(ctx context.Context, recipes Store, catalog []*models.Recipe) (int, error) {
	added := 0
	for _, r := range catalog {
		_, err := recipes.FindPublicByTitle(ctx, r.Title)
		if err == nil {
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return added, fmt.Errorf("failed to look up %q: %w", r.Title, err)
		}
		if err := recipes.Save(ctx, r); err != nil {
			return added, fmt.Errorf("failed to seed %q: %w", r.Title, err)
		}
		added++
	}
	log.Printf("[Seed] added %d of %d catalog recipes", added, len(catalog))
	return added, nil
}
