package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/aleister1102/grammarwhiz/internal/renderer"
)

const (
	formatConsole = "console"
	formatHTML    = "html"
	formatJSON    = "json"
	formatDelta   = "delta"
	formatText    = "text"
)

// writeScript prints a script in the requested format.
func writeScript(w io.Writer, format string, markers bool, script differ.Script, explanations []string, scenario models.Scenario) error {
	stats := differ.NewDiffStatsCalculator().CalculateStats(script)

	switch format {
	case formatConsole:
		c := renderer.NewConsoleRenderer(w, markers)
		fmt.Fprintln(w, c.Diff(script))
		fmt.Fprintln(w)
		fmt.Fprintln(w, c.Summary(stats))
		if explanations != nil {
			fmt.Fprintln(w, c.Explanations(explanations))
		}
		return nil
	case formatHTML:
		reporter, err := renderer.NewHTMLReporter()
		if err != nil {
			return err
		}
		return reporter.Write(w, renderer.ReportData{
			Scenario:     scenario,
			GeneratedAt:  time.Now(),
			Script:       script,
			Stats:        stats,
			Explanations: explanations,
		})
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Diffs        []models.ContentDiff  `json:"diffs"`
			Stats        differ.DiffStatistics `json:"stats"`
			Explanations []string              `json:"explanations,omitempty"`
		}{differ.ToModels(script), stats, explanations})
	case formatDelta:
		delta, err := differ.ToDelta(script)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, delta)
		return err
	case formatText:
		_, err := fmt.Fprintln(w, script.Corrected())
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
