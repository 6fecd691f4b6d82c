package differ

import (
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffStatistics holds diff calculation results
type DiffStatistics struct {
	CharsAdded   int
	CharsDeleted int
	Changes      int
	EditDistance int
	IsIdentical  bool
}

// DiffStatsCalculator calculates statistics from diff results
type DiffStatsCalculator struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffStatsCalculator creates a new diff stats calculator
func NewDiffStatsCalculator() *DiffStatsCalculator {
	return &DiffStatsCalculator{dmp: diffmatchpatch.New()}
}

// CalculateStats computes statistics from a script
func (dsc *DiffStatsCalculator) CalculateStats(script Script) DiffStatistics {
	stats := DiffStatistics{IsIdentical: script.IsIdentical()}

	for _, d := range script {
		switch d.Type {
		case Insert:
			stats.CharsAdded += utf8.RuneCountInString(d.Text)
		case Delete:
			stats.CharsDeleted += utf8.RuneCountInString(d.Text)
		}
	}
	stats.Changes = len(script.Changes())
	stats.EditDistance = dsc.dmp.DiffLevenshtein(toDMP(script))
	return stats
}
