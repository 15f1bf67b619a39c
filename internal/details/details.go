// Package details renders a listing as rows: one per file, plus synthetic
// rows for the header, extended attributes and errors.
//
// Rendering happens in two passes. The first walks the listing depth-first,
// rendering each directory's children in parallel and folding every row
// into the table's widths. The second pass turns the finished rows into
// lines, now that every column's final width is known.
package details

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/joshuapare/lstree/internal/cell"
	"github.com/joshuapare/lstree/internal/colorscale"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/filename"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/logger"
	"github.com/joshuapare/lstree/internal/table"
	"github.com/joshuapare/lstree/internal/theme"
	"github.com/joshuapare/lstree/internal/tree"
	"github.com/joshuapare/lstree/internal/vcs"
)

// Render is one listing to be rendered. Files are the top-level rows, in
// any order; they are sorted like every other batch.
type Render struct {
	Files  []*files.File
	Errors []files.EntryError // failures listing the top level, shown first

	Theme  *theme.Theme
	Env    *env.Environment
	Lister files.Lister
	Git    *vcs.Cache // nil without git columns

	// Extremes are the color scale ranges. When nil and the color scale
	// is on they are gathered from Files before rendering.
	Extremes *colorscale.Extremes

	Opts Options
}

type rowKind int

const (
	fileRow rowKind = iota
	headerRow
	errorRow
	xattrRow
)

// row is one line of output before layout.
type row struct {
	kind  rowKind
	cells []cell.Cell // nil for synthetic rows and without a table
	name  cell.Cell
	tree  tree.Params
}

// egg is everything about one file computed by a worker, before the batch
// is sorted and turned into rows.
type egg struct {
	file   *files.File
	cells  []cell.Cell
	name   cell.Cell
	xattrs []files.Attribute
	errs   []eggError
	dir    *files.Dir
}

type eggError struct {
	err  error
	path string
}

// renderer holds the state of one render invocation.
type renderer struct {
	*Render
	table *table.Table
	rows  []row
}

// Render writes the listing to w.
func (r *Render) Render(w io.Writer) error {
	rr := &renderer{Render: r}

	cols := column.Renderer{
		Theme:    r.Theme,
		Env:      r.Env,
		Git:      r.Git,
		Extremes: r.Extremes,
		Opts:     r.Opts.Cells,
	}
	if cols.Extremes == nil && r.Opts.Cells.Scale.Enabled() {
		cols.Extremes = colorscale.Gather(r.Files, r.Lister, r.Opts.Recurse)
	}
	if r.Opts.Long {
		rr.table = table.New(r.Opts.Columns, &cols)
	}

	logger.Debug("render start", "files", len(r.Files), "long", r.Opts.Long, "tree", r.Opts.tree())

	if rr.table != nil && r.Opts.Header {
		cells := rr.table.HeaderRow()
		rr.table.AddWidths(cells)
		rr.rows = append(rr.rows, row{
			kind:  headerRow,
			cells: cells,
			name:  cell.Paint(r.Theme.Style(theme.Header), "Name"),
			tree:  tree.NewParams(tree.Root(), false),
		})
	}
	for _, e := range r.Errors {
		rr.addError(eggError{err: e.Err, path: e.Path}, tree.Root(), false)
	}

	rr.addFiles(r.Files, tree.Root())

	if r.Opts.Format == FormatJSON {
		return rr.writeJSON(w)
	}
	return rr.writeText(w)
}

// addFiles renders one batch of siblings and, depth-first, everything
// beneath them.
func (rr *renderer) addFiles(list []*files.File, depth tree.Depth) {
	eggs := rr.collect(list, depth)
	files.SortFunc(rr.Opts.Sort, rr.Env.Locale, eggs, func(e *egg) *files.File { return e.file })

	for i, e := range eggs {
		if e.cells != nil {
			rr.table.AddWidths(e.cells)
		}
		rr.rows = append(rr.rows, row{
			kind:  fileRow,
			cells: e.cells,
			name:  e.name,
			tree:  tree.NewParams(depth, i == len(eggs)-1),
		})

		if e.dir != nil && len(e.dir.Files) > 0 {
			for _, x := range e.xattrs {
				rr.addXattr(x, depth.Deeper(), false)
			}
			for _, err := range e.errs {
				rr.addError(err, depth.Deeper(), false)
			}
			rr.addFiles(e.dir.Files, depth.Deeper())
			continue
		}

		for j, x := range e.xattrs {
			rr.addXattr(x, depth.Deeper(), len(e.errs) == 0 && j == len(e.xattrs)-1)
		}
		for j, err := range e.errs {
			rr.addError(err, depth.Deeper(), j == len(e.errs)-1)
		}
	}
}

// collect renders every file of a batch on a bounded pool of workers. The
// returned eggs are in the same order as list.
func (rr *renderer) collect(list []*files.File, depth tree.Depth) []*egg {
	eggs := make([]*egg, len(list))
	if len(list) == 0 {
		return eggs
	}

	workers := rr.Opts.workers(len(list))
	logger.Debug("collecting batch", "entries", len(list), "depth", int(depth), "workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for i, f := range list {
		g.Go(func() error {
			eggs[i] = rr.hatch(f, depth)
			return nil
		})
	}
	_ = g.Wait()
	return eggs
}

// hatch computes the egg of one file. It runs on a worker and only reads
// shared state.
func (rr *renderer) hatch(f *files.File, depth tree.Depth) *egg {
	e := &egg{
		file: f,
		name: filename.Cell(rr.Theme, f, rr.Opts.Name),
	}
	if rr.table != nil {
		e.cells = rr.table.Row(f)
	}
	if rr.Opts.Xattr {
		e.xattrs = f.Xattrs
	}
	if rr.Opts.tree() && rr.Opts.Recurse.Descends(f, int(depth)) {
		dir, err := rr.Lister.List(f)
		if err != nil {
			logger.Warn("cannot list directory", "path", f.Path, "error", err)
			e.errs = append(e.errs, eggError{err: err})
		} else {
			e.dir = dir
			for _, ee := range dir.Errors {
				e.errs = append(e.errs, eggError{err: ee.Err, path: ee.Path})
			}
		}
	}
	return e
}

func (rr *renderer) addError(e eggError, depth tree.Depth, last bool) {
	rr.rows = append(rr.rows, row{
		kind: errorRow,
		name: cell.Paint(rr.Theme.Style(theme.Error), errorText(e)),
		tree: tree.NewParams(depth, last),
	})
}

func (rr *renderer) addXattr(x files.Attribute, depth tree.Depth, last bool) {
	rr.rows = append(rr.rows, row{
		kind: xattrRow,
		name: cell.Paint(rr.Theme.Style(theme.Attribute), xattrText(x)),
		tree: tree.NewParams(depth, last),
	})
}

// errorText shows the bare cause of a failure, prefixed with the path of
// the entry it belongs to when there is one.
func errorText(e eggError) string {
	msg := e.err.Error()
	var pathErr *fs.PathError
	if errors.As(e.err, &pathErr) {
		msg = pathErr.Err.Error()
	}
	if e.path != "" {
		return "<" + e.path + ": " + msg + ">"
	}
	return "<" + msg + ">"
}

func xattrText(x files.Attribute) string {
	return fmt.Sprintf("%s (len %d)", x.Name, len(x.Value))
}

// writeText is the second pass: every row is laid out against the final
// widths.
func (rr *renderer) writeText(w io.Writer) error {
	var trunk tree.Trunk
	var b strings.Builder
	for _, rw := range rr.rows {
		b.Reset()
		if rr.table != nil {
			b.WriteString(rr.table.Render(rw.cells))
		}
		for _, part := range trunk.NewRow(rw.tree) {
			b.WriteString(rr.Theme.Style(theme.Punctuation).Render(part.Art()))
		}
		b.WriteString(rw.name.Contents)
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
