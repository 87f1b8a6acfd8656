package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/apperror"
	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/store"
	"github.com/pageza/mealplanner/backend/internal/types"
)

// PlanValidateCmd checks a plan file exactly as the API would, without
// saving anything
type PlanValidateCmd struct {
	File  string `arg:"" help:"JSON plan file in the API request format." type:"existingfile"`
	Owner string `help:"Account the plan is validated for." required:""`
	Today string `help:"Treat this date (YYYY-MM-DD) as today."`
}

func (c *PlanValidateCmd) Run(ctx *Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	var body types.PlanRequest
	if err := json.Unmarshal(raw, &body); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	account, err := store.NewAccountStore(ctx.DB.Gorm).FindByUsername(context.Background(), c.Owner)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no account named %q", c.Owner)
	}
	if err != nil {
		return err
	}

	owner := types.Identity{AccountID: account.ID, Username: account.Username}

	loc, err := ctx.Config.Location()
	if err != nil {
		return fmt.Errorf("invalid PLAN_TIMEZONE: %w", err)
	}
	builder := service.NewPlanBuilder(store.NewRecipeStore(ctx.DB.Gorm), loc)
	if c.Today != "" {
		today, err := time.ParseInLocation(time.DateOnly, c.Today, loc)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
		builder.WithClock(func() time.Time { return today })
	}

	req, err := api.DecodePlanRequest(body)
	if err == nil {
		var plan *service.WeekPlan
		plan, err = builder.Build(context.Background(), owner, req.Title, req.WeekStart, req.Entries)
		if err == nil {
			enc := json.NewEncoder(ctx.Out)
			enc.SetIndent("", "  ")
			return enc.Encode(api.WeekPlanResponse(plan))
		}
	}
	return fmt.Errorf("plan rejected (%s): %w", apperror.KindOf(err), err)
}
