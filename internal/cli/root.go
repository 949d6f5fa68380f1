package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "filewarden",
	Short: "Permission-scoped local file access for AI agents",
	Long:  "Mediates an agent's access to local files: path-scoped permissions, sensitive-data detection and redaction, and an append-only audit trail of every attempt.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to rules YAML (default ~/.filewarden/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
