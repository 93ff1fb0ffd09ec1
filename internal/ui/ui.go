// Package ui holds terminal styling and human-readable formatting for CLI output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Palette renders text with colour only when writing to a terminal.
type Palette struct {
	color bool
}

// NewPalette returns a palette that colours output written to w
// when w is a terminal.
func NewPalette(w io.Writer) Palette {
	f, ok := w.(*os.File)
	return Palette{color: ok && term.IsTerminal(int(f.Fd()))}
}

// Plain returns a palette that never colours.
func Plain() Palette {
	return Palette{}
}

func (p Palette) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Current highlights the checked-out branch.
func (p Palette) Current(s string) string { return p.render(currentStyle, s) }

func (p Palette) Added(s string) string   { return p.render(addedStyle, s) }
func (p Palette) Removed(s string) string { return p.render(removedStyle, s) }
func (p Palette) Warn(s string) string    { return p.render(warnStyle, s) }
func (p Palette) Header(s string) string  { return p.render(headerStyle, s) }

// FormatBytes renders a size as "N B" below 1 KiB, otherwise with two decimals
// in the largest fitting unit up to GB.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	size := float64(n)
	units := []string{"KB", "MB", "GB"}
	i := -1
	for size >= unit && i < len(units)-1 {
		size /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", size, units[i])
}
