package cli

import (
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/database"
)

type MigrateCmd struct {
	Dir string `help:"Directory holding the SQL migrations." type:"path" default:"migrations"`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := database.RunMigrations(ctx.DB.Gorm, c.Dir); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "Schema is up to date")
	return nil
}
