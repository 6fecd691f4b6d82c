package differ

import (
	"strings"
	"unicode/utf8"
)

// Change is one contiguous edit of a script: the text removed from the
// original and the text put in its place. Either side may be empty.
type Change struct {
	// Index is the zero-based position of the change among all changes.
	Index int
	// Offset is the character offset of the change in the original text.
	Offset int
	// Deleted is the original text replaced by this change.
	Deleted string
	// Inserted is the corrected text introduced by this change.
	Inserted string
}

// Changes groups the edits of a script into accept/reject units.
func (s Script) Changes() []Change {
	var changes []Change
	offset := 0
	var current *Change
	closeCurrent := func() {
		if current != nil {
			changes = append(changes, *current)
			offset += utf8.RuneCountInString(current.Deleted)
			current = nil
		}
	}

	for _, d := range s {
		if d.Type == Equal {
			closeCurrent()
			offset += utf8.RuneCountInString(d.Text)
			continue
		}
		if current == nil {
			current = &Change{Index: len(changes), Offset: offset}
		}
		if d.Type == Delete {
			current.Deleted += d.Text
		} else {
			current.Inserted += d.Text
		}
	}
	closeCurrent()
	return changes
}

// Resolve rebuilds a text in which every change for which accept returns
// true takes its corrected form and every other change keeps its original form.
func (s Script) Resolve(accept func(Change) bool) string {
	var b strings.Builder
	changes := s.Changes()
	next := 0
	inChange := false

	for _, d := range s {
		if d.Type == Equal {
			if inChange {
				writeChange(&b, changes[next], accept)
				next++
				inChange = false
			}
			b.WriteString(d.Text)
			continue
		}
		inChange = true
	}
	if inChange {
		writeChange(&b, changes[next], accept)
	}
	return b.String()
}

func writeChange(b *strings.Builder, c Change, accept func(Change) bool) {
	if accept != nil && accept(c) {
		b.WriteString(c.Inserted)
		return
	}
	b.WriteString(c.Deleted)
}

// AcceptAll returns the text with every change applied.
func (s Script) AcceptAll() string {
	return s.Corrected()
}

// RejectAll returns the text with every change discarded.
func (s Script) RejectAll() string {
	return s.Original()
}

// AcceptOnly applies the changes whose indexes are listed and rejects the rest.
func (s Script) AcceptOnly(indexes ...int) string {
	accepted := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		accepted[i] = struct{}{}
	}
	return s.Resolve(func(c Change) bool {
		_, ok := accepted[c.Index]
		return ok
	})
}
