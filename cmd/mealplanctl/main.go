package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/cli"
	"github.com/pageza/mealplanner/backend/internal/database"
)

var CLI struct {
	Migrate cli.MigrateCmd `cmd:"" help:"Apply schema migrations."`
	Seed    cli.SeedCmd    `cmd:"" help:"Insert missing catalog recipes."`
	Account struct {
		Add cli.AccountAddCmd `cmd:"" help:"Create an account."`
	} `cmd:"" help:"Manage accounts."`
	Recipe struct {
		List cli.RecipeListCmd `cmd:"" help:"List recipes."`
	} `cmd:"" help:"Inspect recipes."`
	Plan struct {
		Validate cli.PlanValidateCmd `cmd:"" help:"Validate a meal plan file."`
	} `cmd:"" help:"Work with meal plans."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mealplanctl"),
		kong.Description("Maintenance tool for the meal planner backend"),
		kong.UsageOnError(),
	)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return ctx.Run(&cli.Context{Config: cfg, DB: db, Out: os.Stdout})
}
