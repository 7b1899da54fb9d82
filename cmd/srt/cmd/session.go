package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/X1ag/SRTScheduler/internal/repository/postgres"
)

var printToken bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return postgres.RunMigrations(cfg.Database.DSN, cfg.Database.Migrations)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with the configured account and store the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			if err := a.sessions.Login(ctx, cfg.SRT.UserID, cfg.SRT.Password); err != nil {
				return err
			}
			out := map[string]any{"user_id": cfg.SRT.UserID, "logged_in": true}
			if printToken {
				token, err := a.client.ExportToken()
				if err != nil {
					return err
				}
				out["token"] = token
			}
			return printJSON(cmd, out)
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session of the configured account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, false, func(ctx context.Context, a *app) error {
			if err := a.sessions.Logout(ctx, cfg.SRT.UserID); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			a.forget = true
			return nil
		})
	},
}

func init() {
	loginCmd.Flags().BoolVar(&printToken, "print-token", false, "also print the exported session token")
	rootCmd.AddCommand(migrateCmd, loginCmd, logoutCmd)
}
