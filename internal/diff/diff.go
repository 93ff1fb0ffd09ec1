// Package diff compares text line by line with a bounded resynchronization
// window. It is not a minimal edit script: when lines cannot be realigned
// within Lookahead lines the current pair is reported as a replacement.
package diff

import (
	"strings"

	"github.com/KostasZigo/kvcs/internal/constants"
)

// Op classifies a line in an edit script.
type Op byte

const (
	Equal  Op = ' '
	Delete Op = '-'
	Insert Op = '+'
)

// Edit is one line of an edit script.
type Edit struct {
	Op   Op
	Line string
}

// String renders the edit the way it is printed ("-line", "+line").
func (e Edit) String() string {
	return string(e.Op) + e.Line
}

// Lookahead is how far either side is searched for a resynchronization point.
const Lookahead = constants.DiffLookahead

// Lines splits text on "\n", dropping one trailing "\r" per line and the
// empty line after a final newline.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Text computes the edit script between two whole-file texts.
func Text(oldText, newText string) []Edit {
	return Compute(Lines(oldText), Lines(newText))
}

// Compute returns the edit script turning a into b, including Equal edits for
// the lines both sides share.
func Compute(a, b []string) []Edit {
	var edits []Edit
	i, j := 0, 0

	for i < len(a) || j < len(b) {
		if i < len(a) && j < len(b) && a[i] == b[j] {
			edits = append(edits, Edit{Equal, a[i]})
			i++
			j++
			continue
		}

		resynced := false
		for k := 1; k <= Lookahead; k++ {
			if i+k < len(a) && j < len(b) && a[i+k] == b[j] {
				for _, line := range a[i : i+k] {
					edits = append(edits, Edit{Delete, line})
				}
				i += k
				resynced = true
				break
			}
			if i < len(a) && j+k < len(b) && a[i] == b[j+k] {
				for _, line := range b[j : j+k] {
					edits = append(edits, Edit{Insert, line})
				}
				j += k
				resynced = true
				break
			}
		}
		if resynced {
			continue
		}

		if i < len(a) {
			edits = append(edits, Edit{Delete, a[i]})
			i++
		}
		if j < len(b) {
			edits = append(edits, Edit{Insert, b[j]})
			j++
		}
	}
	return edits
}

// HasChanges reports whether edits contain any insertion or deletion.
func HasChanges(edits []Edit) bool {
	for _, e := range edits {
		if e.Op != Equal {
			return true
		}
	}
	return false
}

// Apply replays edits against a and returns the resulting lines.
func Apply(a []string, edits []Edit) []string {
	var out []string
	i := 0
	for _, e := range edits {
		switch e.Op {
		case Equal:
			out = append(out, a[i])
			i++
		case Delete:
			i++
		case Insert:
			out = append(out, e.Line)
		}
	}
	return out
}
