package differ

import (
	"strings"
	"unicode/utf8"
)

// CleanupMerge normalizes a script: empty spans are dropped, every run of
// edits between two equalities becomes one Delete followed by one Insert,
// text common to both sides of such a run moves into the neighboring
// equalities, and adjacent equalities are joined.
func CleanupMerge(script Script) Script {
	out := make(Script, 0, len(script))
	var deleted, inserted strings.Builder

	flush := func() {
		del, ins := deleted.String(), inserted.String()
		deleted.Reset()
		inserted.Reset()

		var suffix string
		if del != "" && ins != "" {
			if p := commonPrefix(del, ins); p > 0 {
				out = appendEqual(out, del[:p])
				del, ins = del[p:], ins[p:]
			}
			if q := commonSuffix(del, ins); q > 0 {
				suffix = del[len(del)-q:]
				del, ins = del[:len(del)-q], ins[:len(ins)-q]
			}
		}
		if del != "" {
			out = append(out, Diff{Type: Delete, Text: del})
		}
		if ins != "" {
			out = append(out, Diff{Type: Insert, Text: ins})
		}
		if suffix != "" {
			out = appendEqual(out, suffix)
		}
	}

	for _, d := range script {
		if d.Text == "" {
			continue
		}
		switch d.Type {
		case Delete:
			deleted.WriteString(d.Text)
		case Insert:
			inserted.WriteString(d.Text)
		default:
			flush()
			out = appendEqual(out, d.Text)
		}
	}
	flush()
	return out
}

// CleanupSemantic folds short equalities that sit between edits into those
// edits, so one rewritten phrase shows up as a single change. The passes
// repeat until nothing changes; the result is a fixed point, so applying
// CleanupSemantic again returns an identical script.
func CleanupSemantic(script Script) Script {
	s := CleanupMerge(script)
	for {
		next, changed := eliminateEqualities(s)
		if !changed {
			return s
		}
		s = CleanupMerge(next)
	}
}

// eliminateEqualities replaces every qualifying interior equality with the
// same text deleted and inserted. An equality qualifies when twice its length
// does not exceed the edit weight on either side, where the weight of a side
// is the longer of its deleted and inserted text. Weights are read from the
// input script, so one pass decides all equalities independently.
func eliminateEqualities(s Script) (Script, bool) {
	out := make(Script, 0, len(s)+4)
	changed := false
	for i, d := range s {
		if d.Type == Equal && i > 0 && i < len(s)-1 {
			before := editWeight(s, i-1, -1)
			after := editWeight(s, i+1, 1)
			if 2*utf8.RuneCountInString(d.Text) <= min(before, after) {
				out = append(out, Diff{Type: Delete, Text: d.Text}, Diff{Type: Insert, Text: d.Text})
				changed = true
				continue
			}
		}
		out = append(out, d)
	}
	return out, changed
}

// editWeight walks from index i in direction step over consecutive edits.
func editWeight(s Script, i, step int) int {
	deleted, inserted := 0, 0
	for ; i >= 0 && i < len(s) && s[i].Type != Equal; i += step {
		n := utf8.RuneCountInString(s[i].Text)
		if s[i].Type == Delete {
			deleted += n
		} else {
			inserted += n
		}
	}
	return max(deleted, inserted)
}

func appendEqual(s Script, text string) Script {
	if n := len(s); n > 0 && s[n-1].Type == Equal {
		s[n-1].Text += text
		return s
	}
	return append(s, Diff{Type: Equal, Text: text})
}

// commonPrefix returns the byte length of the shared prefix, cut at a
// character boundary.
func commonPrefix(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) {
		_, na := utf8.DecodeRuneInString(a[i:])
		_, nb := utf8.DecodeRuneInString(b[i:])
		if na != nb || a[i:i+na] != b[i:i+nb] {
			break
		}
		i += na
	}
	return i
}

// commonSuffix returns the byte length of the shared suffix, cut at a
// character boundary.
func commonSuffix(a, b string) int {
	i := 0
	for i < len(a) && i < len(b) {
		_, na := utf8.DecodeLastRuneInString(a[:len(a)-i])
		_, nb := utf8.DecodeLastRuneInString(b[:len(b)-i])
		if na != nb || a[len(a)-i-na:len(a)-i] != b[len(b)-i-nb:len(b)-i] {
			break
		}
		i += na
	}
	return i
}
