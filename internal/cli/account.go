package cli

import (
	"context"
	"fmt"

	"github.com/pageza/mealplanner/backend/internal/service"
	"github.com/pageza/mealplanner/backend/internal/store"
)

type AccountAddCmd struct {
	Username string `arg:"" help:"Username of the new account."`
	Password string `help:"Initial password." required:"" env:"MEALPLANCTL_PASSWORD"`
}

func (c *AccountAddCmd) Run(ctx *Context) error {
	auth := service.NewAuthService(store.NewAccountStore(ctx.DB.Gorm), nil, ctx.Config.JWTSecret, ctx.Config.TokenTTL)
	account, err := auth.Register(context.Background(), c.Username, c.Password)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "Created account %d (%s)\n", account.ID, account.Username)
	return nil
}
