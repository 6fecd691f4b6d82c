package differ

import (
	"strings"
	"unicode/utf8"
)

// DefaultGreedyLimit is the largest combined length, in characters, of a
// region solved by the trace-keeping greedy search. The trace grows with the
// square of the edit distance, so larger regions are bisected instead.
const DefaultGreedyLimit = 1024

// DefaultEditBudget is the number of search steps, frontier moves plus
// matched units, a single Compute may spend. Regions still unsolved when it
// runs out are reported as one deletion followed by one insertion.
const DefaultEditBudget = 20_000_000

// Config tunes the edit-script search.
type Config struct {
	// GreedyLimit bounds the region size handled by the greedy search.
	// Zero or negative selects DefaultGreedyLimit.
	GreedyLimit int
	// EditBudget bounds the work of one search, see DefaultEditBudget.
	// Zero or negative selects DefaultEditBudget.
	EditBudget int
	// SemanticCleanup runs the readability passes after the search.
	SemanticCleanup bool
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		GreedyLimit:     DefaultGreedyLimit,
		EditBudget:      DefaultEditBudget,
		SemanticCleanup: true,
	}
}

// Engine computes character-level diff scripts. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	config Config
}

// NewEngine creates a new engine
func NewEngine(cfg Config) *Engine {
	if cfg.GreedyLimit <= 0 {
		cfg.GreedyLimit = DefaultGreedyLimit
	}
	if cfg.EditBudget <= 0 {
		cfg.EditBudget = DefaultEditBudget
	}
	return &Engine{config: cfg}
}

var defaultEngine = NewEngine(DefaultConfig())

// Compute returns the cleaned diff script turning original into corrected.
// It is total and deterministic for every pair of strings.
func Compute(original, corrected string) Script {
	return defaultEngine.Compute(original, corrected)
}

// Compute returns the diff script turning original into corrected.
func (e *Engine) Compute(original, corrected string) Script {
	script := e.EditScript(original, corrected)
	if !e.config.SemanticCleanup {
		return script
	}
	return CleanupSemantic(script)
}

// EditScript returns a minimal edit script with adjacent spans merged but
// without semantic cleanup. Once the edit budget is spent the remaining
// regions are replaced wholesale, so the script is still exact but no longer
// minimal.
func (e *Engine) EditScript(original, corrected string) Script {
	if original == corrected {
		if original == "" {
			return Script{}
		}
		return Script{{Type: Equal, Text: original}}
	}
	s := newSearch(original, corrected, e.config.GreedyLimit, e.config.EditBudget)
	return CleanupMerge(s.diff(s.a, s.b))
}

// search holds both inputs as unit sequences. Units are runes for valid
// UTF-8 input and raw bytes otherwise, so every string round-trips exactly.
type search struct {
	a, b        []rune
	byteMode    bool
	greedyLimit int
	budget      int
	spent       int
}

func newSearch(original, corrected string, greedyLimit, budget int) *search {
	s := &search{greedyLimit: greedyLimit, budget: budget}
	if utf8.ValidString(original) && utf8.ValidString(corrected) {
		s.a, s.b = []rune(original), []rune(corrected)
		return s
	}
	s.byteMode = true
	s.a, s.b = bytesAsUnits(original), bytesAsUnits(corrected)
	return s
}

func bytesAsUnits(str string) []rune {
	units := make([]rune, len(str))
	for i := 0; i < len(str); i++ {
		units[i] = rune(str[i])
	}
	return units
}

func (s *search) text(units []rune) string {
	if !s.byteMode {
		return string(units)
	}
	buf := make([]byte, len(units))
	for i, u := range units {
		buf[i] = byte(u)
	}
	return string(buf)
}

// diff trims the common prefix and suffix, solves the middle region and
// reattaches the trimmed parts as Equal spans.
func (s *search) diff(a, b []rune) Script {
	p := commonPrefixUnits(a, b)
	prefix := a[:p]
	a, b = a[p:], b[p:]

	q := commonSuffixUnits(a, b)
	suffix := a[len(a)-q:]
	a, b = a[:len(a)-q], b[:len(b)-q]

	var out Script
	if len(prefix) > 0 {
		out = append(out, Diff{Type: Equal, Text: s.text(prefix)})
	}
	out = append(out, s.compute(a, b)...)
	if len(suffix) > 0 {
		out = append(out, Diff{Type: Equal, Text: s.text(suffix)})
	}
	return out
}

// compute solves a region that has no common prefix or suffix.
func (s *search) compute(a, b []rune) Script {
	switch {
	case len(a) == 0 && len(b) == 0:
		return nil
	case len(a) == 0:
		return Script{{Type: Insert, Text: s.text(b)}}
	case len(b) == 0:
		return Script{{Type: Delete, Text: s.text(a)}}
	}

	long, short, op := a, b, Delete
	if len(a) < len(b) {
		long, short, op = b, a, Insert
	}

	// One side wholly inside the other: the surplus is the whole edit.
	if i := s.index(long, short); i >= 0 {
		return Script{
			{Type: op, Text: s.text(long[:i])},
			{Type: Equal, Text: s.text(short)},
			{Type: op, Text: s.text(long[i+len(short):])},
		}
	}

	// A single unit that is not contained shares nothing with the other side.
	if len(short) == 1 || s.exhausted() {
		return s.replace(a, b)
	}

	if len(a)+len(b) <= s.greedyLimit {
		return s.greedy(a, b)
	}
	return s.bisect(a, b)
}

func (s *search) exhausted() bool {
	return s.spent >= s.budget
}

// replace reports a region as a single deletion followed by a single insertion.
func (s *search) replace(a, b []rune) Script {
	return Script{{Type: Delete, Text: s.text(a)}, {Type: Insert, Text: s.text(b)}}
}

// index returns the unit offset of short inside long, or -1.
func (s *search) index(long, short []rune) int {
	longText := s.text(long)
	i := strings.Index(longText, s.text(short))
	if i < 0 || s.byteMode {
		return i
	}
	return utf8.RuneCountInString(longText[:i])
}

// greedy runs the forward shortest-edit search keeping one frontier snapshot
// per edit distance, then walks the snapshots back from the end point.
func (s *search) greedy(a, b []rune) Script {
	n, m := len(a), len(b)
	maxD := n + m
	offset := maxD + 1
	v := make([]int, 2*maxD+3)
	trace := make([][]int, 0, 16)

	finalD := -1
	for d := 0; d <= maxD && finalD < 0; d++ {
		if s.exhausted() {
			return s.replace(a, b)
		}
		for k := -d; k <= d; k += 2 {
			var x int
			if k == -d || (k != d && v[offset+k-1] < v[offset+k+1]) {
				x = v[offset+k+1]
			} else {
				x = v[offset+k-1] + 1
			}
			y := x - k
			start := x
			for x < n && y < m && a[x] == b[y] {
				x++
				y++
			}
			s.spent += x - start + 1
			v[offset+k] = x
			if x >= n && y >= m {
				finalD = d
				break
			}
		}
		snapshot := make([]int, 2*d+1)
		copy(snapshot, v[offset-d:offset+d+1])
		trace = append(trace, snapshot)
	}

	return s.backtrack(a, b, trace, finalD)
}

// backtrack rebuilds the path found by greedy, emitting spans in reverse.
func (s *search) backtrack(a, b []rune, trace [][]int, finalD int) Script {
	x, y := len(a), len(b)
	var rev []Diff
	emit := func(op Operation, units []rune) {
		rev = append(rev, Diff{Type: op, Text: s.text(units)})
	}

	for d := finalD; d > 0; d-- {
		prev := trace[d-1]
		at := func(k int) int { return prev[k+d-1] }
		k := x - y

		var prevK int
		if k == -d || (k != d && at(k-1) < at(k+1)) {
			prevK = k + 1
		} else {
			prevK = k - 1
		}
		prevX := at(prevK)
		prevY := prevX - prevK

		// The snake ends at (x, y) and starts right after the single edit.
		startX := prevX + 1
		if prevK == k+1 {
			startX = prevX
		}
		if x > startX {
			emit(Equal, a[startX:x])
		}
		if prevK == k+1 {
			emit(Insert, b[prevY:prevY+1])
		} else {
			emit(Delete, a[prevX:prevX+1])
		}
		x, y = prevX, prevY
	}
	if x > 0 {
		emit(Equal, a[:x])
	}

	out := make(Script, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

// bisect finds the middle snake of an optimal path in linear space and
// solves both halves independently.
func (s *search) bisect(a, b []rune) Script {
	n, m := len(a), len(b)
	maxD := (n + m + 1) / 2
	vOffset := maxD
	vLength := 2 * maxD
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n - m
	// With an odd delta the forward path detects the overlap, otherwise the reverse one.
	front := delta%2 != 0
	k1start, k1end, k2start, k2end := 0, 0, 0, 0

	for d := 0; d < maxD && !s.exhausted(); d++ {
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			start := x1
			for x1 < n && y1 < m && a[x1] == b[y1] {
				x1++
				y1++
			}
			s.spent += x1 - start + 1
			v1[k1Offset] = x1
			switch {
			case x1 > n:
				k1end += 2
			case y1 > m:
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					if x1 >= n-v2[k2Offset] {
						return s.split(a, b, x1, y1)
					}
				}
			}
		}

		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			start := x2
			for x2 < n && y2 < m && a[n-x2-1] == b[m-y2-1] {
				x2++
				y2++
			}
			s.spent += x2 - start + 1
			v2[k2Offset] = x2
			switch {
			case x2 > n:
				k2end += 2
			case y2 > m:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					if x1 >= n-x2 {
						return s.split(a, b, x1, y1)
					}
				}
			}
		}
	}

	// The inputs share nothing, or the edit budget ran out.
	return s.replace(a, b)
}

func (s *search) split(a, b []rune, x, y int) Script {
	head := s.diff(a[:x], b[:y])
	return append(head, s.diff(a[x:], b[y:])...)
}

func commonPrefixUnits(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func commonSuffixUnits(a, b []rune) int {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return i - 1
		}
	}
	return n
}
