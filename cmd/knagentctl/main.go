// Command knagentctl runs operator tasks against the KNAgent database:
// document ingestion, demo account provisioning and report listings.
package main

import (
	"fmt"
	"os"

	"knagent-be/internal/bootstrap"
	"knagent-be/internal/config"
	"knagent-be/pkg/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	container *bootstrap.Container
)

var rootCmd = &cobra.Command{
	Use:           "knagentctl",
	Short:         "Operator tooling for the KNAgent backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if container != nil {
			container.Close()
		}
	},
}

// loadContainer opens the database and wires services on first use.
func loadContainer() (*bootstrap.Container, error) {
	if container != nil {
		return container, nil
	}
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	c, err := bootstrap.NewContainer(db, cfg)
	if err != nil {
		return nil, err
	}
	container = c
	return container, nil
}

func main() {
	rootCmd.AddCommand(ingestCmd, seedUsersCmd, resetPasswordsCmd, checkLeavesCmd, gapsCmd, eventsCmd)
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
