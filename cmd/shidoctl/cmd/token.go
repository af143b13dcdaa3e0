package cmd

import (
	"fmt"
	"time"

	"github.com/shidoapp/shido/internal/config"
	"github.com/shidoapp/shido/internal/service"
	"github.com/spf13/cobra"
)

func TokenCmd() *cobra.Command {
	var expiry time.Duration

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for a user id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if expiry == 0 {
				expiry = cfg.JWTExpiry
			}

			authService := service.NewAuthService(cfg.JWTSecret, expiry)
			token, err := authService.GenerateJWT(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime (defaults to JWT_EXPIRY)")
	return cmd
}
