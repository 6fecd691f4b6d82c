package differ

import (
	"fmt"
	"strings"
)

// Operation tags a span of a diff script.
type Operation int8

const (
	// Delete marks text present only in the original.
	Delete Operation = -1
	// Equal marks text shared by both inputs.
	Equal Operation = 0
	// Insert marks text present only in the corrected version.
	Insert Operation = 1
)

// String returns a human-readable representation of the operation.
func (op Operation) String() string {
	switch op {
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	case Equal:
		return "equal"
	default:
		return "unknown"
	}
}

// Diff is one tagged span of a script.
type Diff struct {
	Type Operation
	Text string
}

func (d Diff) String() string {
	return fmt.Sprintf("%s(%q)", d.Type, d.Text)
}

// Script is an ordered edit script. Its order is fixed once computed.
type Script []Diff

// Original reassembles the first input from the Equal and Delete spans.
func (s Script) Original() string {
	var b strings.Builder
	for _, d := range s {
		if d.Type != Insert {
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// Corrected reassembles the second input from the Equal and Insert spans.
func (s Script) Corrected() string {
	var b strings.Builder
	for _, d := range s {
		if d.Type != Delete {
			b.WriteString(d.Text)
		}
	}
	return b.String()
}

// IsIdentical reports whether the script contains no edits.
func (s Script) IsIdentical() bool {
	for _, d := range s {
		if d.Type != Equal {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array with s.
func (s Script) Clone() Script {
	if s == nil {
		return nil
	}
	out := make(Script, len(s))
	copy(out, s)
	return out
}

// Validate checks the structural invariants of a cleaned script against its
// two inputs: exact reconstruction, no empty spans, no adjacent spans with the
// same tag, and deletes ordered before inserts inside every change.
func (s Script) Validate(original, corrected string) error {
	for i, d := range s {
		if d.Text == "" {
			return fmt.Errorf("span %d (%s) is empty", i, d.Type)
		}
		if i == 0 {
			continue
		}
		prev := s[i-1]
		if prev.Type == d.Type {
			return fmt.Errorf("spans %d and %d share tag %s", i-1, i, d.Type)
		}
		if prev.Type == Insert && d.Type == Delete {
			return fmt.Errorf("span %d: insert precedes delete", i-1)
		}
	}
	if got := s.Original(); got != original {
		return fmt.Errorf("original not reproduced: got %d bytes, want %d", len(got), len(original))
	}
	if got := s.Corrected(); got != corrected {
		return fmt.Errorf("corrected not reproduced: got %d bytes, want %d", len(got), len(corrected))
	}
	return nil
}
