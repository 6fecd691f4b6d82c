package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "grammarwhiz",
	Short: "Chinese proofreading with tracked changes",
	Long: `GrammarWhiz sends text to a correction service, then shows exactly
which spans were deleted and inserted so each change can be reviewed.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML/JSON config file (default: search GRAMMARWHIZ_CONFIG_PATH, ./config.yaml, ./config.json)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
