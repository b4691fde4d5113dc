// Package paragraph implements the ordered list of text blocks that every
// content form edits before it is serialized into a stored record body.
package paragraph

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Separator joins paragraphs in free-text body columns.
const Separator = "\n\n"

// ErrIndexOutOfRange is returned when an index does not address a current paragraph.
var ErrIndexOutOfRange = errors.New("paragraph index out of range")

var blankLines = regexp.MustCompile(`\n\s*\n`)

// List is an ordered sequence of paragraphs plus the pending input buffer
// the operator is typing into.
//
// Appended paragraphs are always trimmed and never empty. Paragraphs replaced
// through Update are stored verbatim.
type List struct {
	items   []string
	pending string
}

// New returns a list holding a copy of items.
func New(items ...string) *List {
	l := &List{}
	l.items = append(l.items, items...)
	return l
}

// Len returns the number of paragraphs.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the paragraphs.
func (l *List) Items() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Pending returns the current input buffer.
func (l *List) Pending() string {
	return l.pending
}

// SetPending replaces the input buffer.
func (l *List) SetPending(text string) {
	l.pending = text
}

// Append adds the trimmed text as the last paragraph. Whitespace-only text is
// ignored. The pending buffer is cleared either way.
func (l *List) Append(text string) {
	l.pending = ""
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return
	}
	l.items = append(l.items, trimmed)
}

// AppendPending appends the pending buffer.
func (l *List) AppendPending() {
	l.Append(l.pending)
}

// Update replaces the paragraph at index with text as typed.
func (l *List) Update(index int, text string) error {
	if err := l.check(index); err != nil {
		return err
	}
	l.items[index] = text
	return nil
}

// RemoveAt deletes the paragraph at index, shifting later ones down.
func (l *List) RemoveAt(index int) error {
	if err := l.check(index); err != nil {
		return err
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	return nil
}

// Reset empties the list and the pending buffer.
func (l *List) Reset() {
	l.items = nil
	l.pending = ""
}

// Replace swaps the paragraphs for items and clears the pending buffer.
func (l *List) Replace(items []string) {
	l.items = append([]string(nil), items...)
	l.pending = ""
}

// StoredString renders the list for free-text body columns.
func (l *List) StoredString() string {
	return strings.Join(l.items, Separator)
}

// StoredSequence renders the list for array-valued body columns.
func (l *List) StoredSequence() []string {
	return l.Items()
}

func (l *List) check(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, index, len(l.items))
	}
	return nil
}

// FromStoredString splits a stored body on blank lines, trimming every piece
// and dropping the ones left empty.
func FromStoredString(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := blankLines.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FromStoredSequence decodes an array-valued body. Values that are not a
// sequence of strings decode to an empty list.
func FromStoredSequence(v any) []string {
	switch seq := v.(type) {
	case []string:
		return append([]string{}, seq...)
	case []any:
		out := make([]string, 0, len(seq))
		for _, item := range seq {
			s, ok := item.(string)
			if !ok {
				return []string{}
			}
			out = append(out, s)
		}
		return out
	default:
		return []string{}
	}
}
