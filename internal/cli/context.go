// Package cli implements the mealplanctl maintenance commands.
package cli

import (
	"io"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/database"
)

// Context is passed to every command's Run method
type Context struct {
	Config *config.Config
	DB     *database.DB
	Out    io.Writer
}
