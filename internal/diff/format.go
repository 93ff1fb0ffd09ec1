package diff

import (
	"fmt"
	"io"
)

const devNull = "/dev/null"

// Painter decorates printed diff lines, typically with terminal colours.
type Painter interface {
	Header(s string) string
	Added(s string) string
	Removed(s string) string
}

type plain struct{}

func (plain) Header(s string) string  { return s }
func (plain) Added(s string) string   { return s }
func (plain) Removed(s string) string { return s }

// File is the diff of one path. NewFile marks a path absent from the old side;
// Mode is then printed in the "new file mode" header.
type File struct {
	Path    string
	NewFile bool
	Mode    string
	Edits   []Edit
}

// Write prints f followed by a blank line. Equal lines are not printed.
// A nil painter prints without decoration.
func Write(w io.Writer, f File, p Painter) error {
	if p == nil {
		p = plain{}
	}

	oldName := "a/" + f.Path
	var header []string
	if f.NewFile {
		oldName = devNull
		header = []string{
			fmt.Sprintf("diff --kvcs %s b/%s", devNull, f.Path),
			"new file mode " + f.Mode,
		}
	} else {
		header = []string{fmt.Sprintf("diff --kvcs a/%s b/%s", f.Path, f.Path)}
	}
	header = append(header, "--- "+oldName, "+++ b/"+f.Path)

	for _, line := range header {
		if _, err := fmt.Fprintln(w, p.Header(line)); err != nil {
			return err
		}
	}

	for _, e := range f.Edits {
		var line string
		switch e.Op {
		case Delete:
			line = p.Removed(e.String())
		case Insert:
			line = p.Added(e.String())
		default:
			continue
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}
