package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff <original> <corrected>",
	Short: "Show the tracked changes between two documents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		registry, err := a.importers(ctx)
		if err != nil {
			return err
		}
		original, err := readInput(ctx, registry, args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		corrected, err := readInput(ctx, registry, args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}

		cd, err := a.contentDiffer()
		if err != nil {
			return err
		}
		script, err := cd.Script(original, corrected)
		if err != nil {
			return fmt.Errorf("diffing: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		markers, _ := cmd.Flags().GetBool("markers")
		return writeScript(cmd.OutOrStdout(), format, markers, script, nil, "")
	},
}

func init() {
	diffCmd.Flags().StringP("format", "f", formatConsole, "Output format: console, html, json, delta")
	diffCmd.Flags().Bool("markers", false, "Wrap changes as [-deleted-] and {+inserted+}")
	rootCmd.AddCommand(diffCmd)
}
