package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse previous proofreading sessions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.historyStore()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTIME\tSCENARIO\tPREVIEW")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Scenario.Alias(), preview(e.Original, 24))
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the changes recorded for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.historyStore()
		if err != nil {
			return err
		}
		defer store.Close()

		entry, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		script, err := differ.FromDelta(entry.Original, entry.DiffDelta)
		if err != nil || entry.DiffDelta == "" {
			a.logger.Debug().Err(err).Str("id", entry.ID).Msg("Recomputing diff for history entry")
			script = differ.Compute(entry.Original, entry.Corrected)
		}

		format, _ := cmd.Flags().GetString("format")
		markers, _ := cmd.Flags().GetBool("markers")
		return writeScript(cmd.OutOrStdout(), format, markers, script, entry.Explanations, entry.Scenario)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		store, err := a.historyStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Clear(cmd.Context())
	},
}

// preview shortens text to at most n runes on a single line.
func preview(text string, n int) string {
	out := make([]rune, 0, n+1)
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		if len(out) == n {
			return string(out) + "…"
		}
		out = append(out, r)
	}
	return string(out)
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 0, "Maximum number of sessions to list (0 for all)")
	historyShowCmd.Flags().StringP("format", "f", formatConsole, "Output format: console, html, json, delta, text")
	historyShowCmd.Flags().Bool("markers", false, "Wrap changes as [-deleted-] and {+inserted+}")
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
