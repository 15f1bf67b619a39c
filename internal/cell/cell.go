// Package cell holds styled text fragments whose display width is known
// independently of the escape codes used to style them.
package cell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is a piece of styled text.
//
// Contents is what gets written to the terminal, Plain is the same text
// without styling, and Width is the number of terminal columns Plain takes.
type Cell struct {
	Contents string
	Plain    string
	Width    int
}

// Paint renders s with style.
func Paint(style lipgloss.Style, s string) Cell {
	if s == "" {
		return Cell{}
	}
	return Cell{
		Contents: style.Render(s),
		Plain:    s,
		Width:    runewidth.StringWidth(s),
	}
}

// Plain returns an unstyled cell.
func Plain(s string) Cell {
	return Cell{Contents: s, Plain: s, Width: runewidth.StringWidth(s)}
}

// Blank is the placeholder shown when a column has no value for a file.
func Blank(style lipgloss.Style) Cell {
	return Paint(style, "-")
}

// Spaces returns an unstyled cell of n spaces.
func Spaces(n int) Cell {
	if n <= 0 {
		return Cell{}
	}
	s := strings.Repeat(" ", n)
	return Cell{Contents: s, Plain: s, Width: n}
}

// Append adds other to the end of c.
func (c *Cell) Append(other Cell) {
	c.Contents += other.Contents
	c.Plain += other.Plain
	c.Width += other.Width
}

// AddSpaces pads c with n trailing spaces.
func (c *Cell) AddSpaces(n int) {
	if n <= 0 {
		return
	}
	c.Append(Spaces(n))
}

// Concat joins cells left to right.
func Concat(cells ...Cell) Cell {
	var out Cell
	for _, c := range cells {
		out.Append(c)
	}
	return out
}

// IsEmpty reports whether the cell takes no space.
func (c Cell) IsEmpty() bool { return c.Width == 0 && c.Plain == "" }
