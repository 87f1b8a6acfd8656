package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/pageza/mealplanner/backend/internal/models"
	"github.com/pageza/mealplanner/backend/internal/store"
)

type RecipeListCmd struct {
	Search   string `help:"Only titles containing this text."`
	Category string `help:"Only this category."`
	Owner    string `help:"List this account's private recipes instead of the public ones."`
}

func (c *RecipeListCmd) Run(ctx *Context) error {
	recipes := store.NewRecipeStore(ctx.DB.Gorm)
	q := store.RecipeQuery{Search: c.Search, Category: c.Category}

	var (
		list []*models.Recipe
		err  error
	)
	if c.Owner != "" {
		list, err = recipes.ListOwnedBy(context.Background(), c.Owner, q)
	} else {
		list, err = recipes.ListPublic(context.Background(), q)
	}
	if err != nil {
		return fmt.Errorf("failed to list recipes: %w", err)
	}

	w := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tKCAL")
	for _, r := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", r.ID, r.Title, r.Category, r.Nutrition.CaloriesKcal)
	}
	return w.Flush()
}
