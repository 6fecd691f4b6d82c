package differ

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// ToDelta encodes a script as a compact delta that only carries the inserted
// text, e.g. "=12\t-1\t+%E6%95%A3%E6%AD%A5\t=1". The original text is needed
// to decode it again.
func ToDelta(script Script) (string, error) {
	for i, d := range script {
		if !utf8.ValidString(d.Text) {
			return "", fmt.Errorf("span %d is not valid UTF-8 and cannot be delta encoded", i)
		}
	}
	return diffmatchpatch.New().DiffToDelta(toDMP(script)), nil
}

// FromDelta rebuilds a script from the original text and its delta.
func FromDelta(original, delta string) (Script, error) {
	diffs, err := diffmatchpatch.New().DiffFromDelta(original, delta)
	if err != nil {
		return nil, fmt.Errorf("failed to decode diff delta: %w", err)
	}
	return fromDMP(diffs), nil
}

func toDMP(script Script) []diffmatchpatch.Diff {
	out := make([]diffmatchpatch.Diff, 0, len(script))
	for _, d := range script {
		out = append(out, diffmatchpatch.Diff{Type: toDMPOperation(d.Type), Text: d.Text})
	}
	return out
}

func fromDMP(diffs []diffmatchpatch.Diff) Script {
	out := make(Script, 0, len(diffs))
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		out = append(out, Diff{Type: fromDMPOperation(d.Type), Text: d.Text})
	}
	return out
}

func toDMPOperation(op Operation) diffmatchpatch.Operation {
	switch op {
	case Insert:
		return diffmatchpatch.DiffInsert
	case Delete:
		return diffmatchpatch.DiffDelete
	default:
		return diffmatchpatch.DiffEqual
	}
}

func fromDMPOperation(op diffmatchpatch.Operation) Operation {
	switch op {
	case diffmatchpatch.DiffInsert:
		return Insert
	case diffmatchpatch.DiffDelete:
		return Delete
	default:
		return Equal
	}
}
