package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/history"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/aleister1102/grammarwhiz/internal/pipeline"
	"github.com/spf13/cobra"
)

var proofreadCmd = &cobra.Command{
	Use:   "proofread [file]",
	Short: "Proofread a document and show the suggested changes",
	Long: `Proofread sends the document (or stdin) to the correction service,
retrying rate limits and network failures, then prints the changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		rawScenario, _ := cmd.Flags().GetString("scenario")
		scenario, err := models.ParseScenario(rawScenario)
		if err != nil {
			return err
		}

		registry, err := a.importers(ctx)
		if err != nil {
			return err
		}
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		original, err := readInput(ctx, registry, path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		svc, err := a.correctionService(ctx)
		if err != nil {
			return err
		}
		p := pipeline.New(svc, pipeline.NewRetryPolicy(a.cfg.RetryConfig), a.logger)
		result, err := p.RequestCorrection(ctx, original, scenario)
		if err != nil {
			return fmt.Errorf("proofreading: %w", err)
		}

		cd, err := a.contentDiffer()
		if err != nil {
			return err
		}
		script, err := cd.Script(original, result.Corrected)
		if err != nil {
			return fmt.Errorf("diffing: %w", err)
		}

		if save, _ := cmd.Flags().GetBool("save"); save {
			if err := saveHistory(cmd, a, original, result, scenario, script); err != nil {
				a.logger.Warn().Err(err).Msg("Failed to save history entry")
			}
		}

		format, _ := cmd.Flags().GetString("format")
		markers, _ := cmd.Flags().GetBool("markers")
		return writeScript(cmd.OutOrStdout(), format, markers, script, result.Explanations, scenario)
	},
}

func saveHistory(cmd *cobra.Command, a *app, original string, result models.ProofreadResult, scenario models.Scenario, script differ.Script) error {
	store, err := a.historyStore()
	if err != nil {
		return err
	}
	defer store.Close()

	delta, err := differ.ToDelta(script)
	if err != nil {
		delta = ""
	}
	entry, err := store.Append(cmd.Context(), history.NewEntry(original, result, scenario, delta))
	if err != nil {
		return err
	}
	a.logger.Debug().Str("id", entry.ID).Msg("Saved history entry")
	return nil
}

func init() {
	proofreadCmd.Flags().StringP("scenario", "s", models.DefaultScenario.Alias(), "Editing style: publishing, new-media, official")
	proofreadCmd.Flags().StringP("format", "f", formatConsole, "Output format: console, html, json, delta, text")
	proofreadCmd.Flags().Bool("markers", false, "Wrap changes as [-deleted-] and {+inserted+}")
	proofreadCmd.Flags().Bool("save", true, "Record the session in the history database")
	rootCmd.AddCommand(proofreadCmd)
}
