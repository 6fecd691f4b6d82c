package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Extract plain text from a .txt, .md, .html or .pdf document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		registry, err := a.importers(cmd.Context())
		if err != nil {
			return err
		}
		text, err := registry.ImportFile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
