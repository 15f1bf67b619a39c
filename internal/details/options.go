package details

import (
	"runtime"

	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/filename"
)

// Format specifies the output format of a render.
type Format string

const (
	// FormatText writes aligned, styled lines.
	FormatText Format = "text"

	// FormatJSON writes the same rows as a nested JSON array.
	FormatJSON Format = "json"
)

const (
	minWorkers       = 4
	maxWorkers       = 64
	workerMultiplier = 4
)

// Options controls a render.
type Options struct {
	// Long shows the table columns. Without it rows carry only a name.
	Long bool

	// Columns are the table's columns, in display order.
	Columns []column.Column

	// Header adds a row of column labels. Only used with Long.
	Header bool

	// Xattr lists each file's extended attributes beneath it.
	Xattr bool

	// Recurse is the recursion policy. Nil lists only the given files.
	// Children are rendered under their parent only when Recurse.Tree is
	// set.
	Recurse *files.Recursion

	// Sort orders every batch of siblings.
	Sort files.Sort

	// Name decorates the name cell.
	Name filename.Options

	// Cells formats column values.
	Cells column.Options

	// Workers bounds the goroutines rendering one batch. 0 picks a default
	// from the CPU count.
	Workers int

	// Format is the output format.
	// Default: FormatText
	Format Format
}

// DefaultOptions returns a plain, non-recursive, name-sorted listing.
func DefaultOptions() Options {
	return Options{
		Sort:   files.Sort{Field: files.SortName},
		Format: FormatText,
	}
}

func (o Options) tree() bool { return o.Recurse != nil && o.Recurse.Tree }

// workers returns the pool size for a batch of n files.
func (o Options) workers(n int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU() * workerMultiplier
		w = max(minWorkers, min(w, maxWorkers))
	}
	return max(1, min(w, n))
}
