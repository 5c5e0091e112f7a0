package cmd

import (
	"context"

	"coinbot/config"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coinbot",
	Short: "Discord economy bot with wallets, banks and periodic rewards",
	Long: `coinbot runs the Discord economy bot. Without a subcommand it connects to
Discord and serves commands until interrupted.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return Run(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// Execute runs the command line with ctx as the root context
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
