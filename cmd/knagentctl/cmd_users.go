package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"knagent-be/internal/service"
)

var seedUsersCmd = &cobra.Command{
	Use:   "seed-users",
	Short: "Create the demo staff accounts, skipping any that already exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadContainer()
		if err != nil {
			return err
		}
		report, err := c.OpsService.SeedUsers(cmd.Context(), service.DefaultSeedAccounts)
		if err != nil {
			return err
		}
		for _, email := range report.Created {
			color.Green("[CREATED] %s", email)
		}
		for _, email := range report.Skipped {
			color.Yellow("[SKIPPED] %s already exists", email)
		}
		return nil
	},
}

var resetPasswordsCmd = &cobra.Command{
	Use:   "reset-passwords",
	Short: "Reset every account password to SEED_DEFAULT_PASSWORD",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadContainer()
		if err != nil {
			return err
		}
		reset, err := c.OpsService.ResetPasswords(cmd.Context())
		if err != nil {
			return err
		}
		for _, email := range reset {
			color.Green("Reset password for %s", email)
		}
		color.Cyan("%d accounts now use the default password", len(reset))
		return nil
	},
}
