package cli

import (
	"context"
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/seed"
	"github.com/pageza/mealplanner/backend/internal/store"
)

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	added, err := seed.Run(context.Background(), store.NewRecipeStore(ctx.DB.Gorm))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Added %d public recipes\n", added)
	return nil
}
