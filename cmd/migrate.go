package cmd

import (
	"coinbot/config"
	"coinbot/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := config.LoadDatabaseURL()
		if err != nil {
			return err
		}
		return database.MigrateUp(url)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1 step)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := config.LoadDatabaseURL()
		if err != nil {
			return err
		}
		steps := "1"
		if len(args) == 1 {
			steps = args[0]
		}
		return database.MigrateDown(url, steps)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current migration version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := config.LoadDatabaseURL()
		if err != nil {
			return err
		}
		return database.MigrateStatus(url)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}
