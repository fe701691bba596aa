// cmd/root.go
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "neuroflow",
	Short: "NeuroFlow habit and gamification service",
	Long: `NeuroFlow tracks daily habits, journal entries and plans per user, and turns them into
XP, levels, streaks and badges.

Run "neuroflow serve" to start the HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file (default $NEUROFLOW_CONFIG)")
	rootCmd.AddCommand(serveCmd, migrateCmd, streakCmd, grantXPCmd)
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
