// Package table lays rows of cells out into aligned columns.
//
// Layout takes two passes. While rows are being produced, every row's cells
// are folded into Widths. Only once the whole listing exists are rows turned
// into lines, each padded to the final widths.
package table

import (
	"strings"

	"github.com/joshuapare/lstree/internal/cell"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/files"
)

// Widths is the running maximum display width of each column.
type Widths []int

// Add folds a row's cells into the widths.
func (w Widths) Add(cells []cell.Cell) {
	for i, c := range cells {
		if i < len(w) && c.Width > w[i] {
			w[i] = c.Width
		}
	}
}

// Total is the width of all columns including the space after each.
func (w Widths) Total() int {
	total := len(w)
	for _, n := range w {
		total += n
	}
	return total
}

// Table renders rows for a fixed set of columns.
type Table struct {
	columns  []column.Column
	widths   Widths
	renderer *column.Renderer
}

// New returns an empty table for columns.
func New(columns []column.Column, r *column.Renderer) *Table {
	return &Table{
		columns:  columns,
		widths:   make(Widths, len(columns)),
		renderer: r,
	}
}

// Columns returns the table's columns in display order.
func (t *Table) Columns() []column.Column { return t.columns }

// HeaderRow returns the label cells of every column.
func (t *Table) HeaderRow() []cell.Cell {
	cells := make([]cell.Cell, len(t.columns))
	for i, c := range t.columns {
		cells[i] = t.renderer.Header(c)
	}
	return cells
}

// Row renders every column for f. It does not touch the widths, so it is
// safe to call from several goroutines.
func (t *Table) Row(f *files.File) []cell.Cell {
	cells := make([]cell.Cell, len(t.columns))
	for i, c := range t.columns {
		cells[i] = t.renderer.Render(c, f)
	}
	return cells
}

// AddWidths folds a row into the table's widths. Rows without cells leave
// the widths untouched.
func (t *Table) AddWidths(cells []cell.Cell) { t.widths.Add(cells) }

// Render pads cells to the final widths. Each column is followed by exactly
// one space. A row without cells renders as blank space of the whole table's
// width.
func (t *Table) Render(cells []cell.Cell) string {
	var b strings.Builder
	if cells == nil {
		b.WriteString(strings.Repeat(" ", t.widths.Total()))
		return b.String()
	}
	for i, c := range cells {
		padding := t.widths[i] - c.Width
		if t.columns[i].Alignment() == column.Right {
			b.WriteString(strings.Repeat(" ", max(padding, 0)))
			b.WriteString(c.Contents)
		} else {
			b.WriteString(c.Contents)
			b.WriteString(strings.Repeat(" ", max(padding, 0)))
		}
		b.WriteByte(' ')
	}
	return b.String()
}
