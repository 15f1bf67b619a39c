// Package listing turns the paths given on the command line into one or
// more renders: loose files first, then each directory, optionally
// recursing into subdirectories or drawing everything as one tree.
package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/joshuapare/lstree/internal/colorscale"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/details"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/logger"
	"github.com/joshuapare/lstree/internal/theme"
	"github.com/joshuapare/lstree/internal/vcs"
)

var (
	// ErrFailedPaths indicates at least one path could not be listed. The
	// failures have already been reported.
	ErrFailedPaths = errors.New("listing: some paths could not be listed")
)

// Config is everything a run needs besides the paths.
type Config struct {
	Details details.Options
	Filter  files.Filter

	// Recurse lists subdirectories, each under its own header, or as one
	// tree when Recursion.Tree is set.
	Recurse   bool
	Recursion files.Recursion

	Theme  *theme.Theme
	Env    *env.Environment
	Lister files.Lister // defaults to files.FS with Filter
	Git    *vcs.Cache   // created on demand when a git column is shown

	Stderr io.Writer
}

// Run lists paths to w. Paths that cannot be read are reported to
// cfg.Stderr and the rest are still listed; the returned error then wraps
// ErrFailedPaths.
func Run(ctx context.Context, w io.Writer, cfg Config, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if cfg.Lister == nil {
		cfg.Lister = files.FS{Filter: cfg.Filter}
	}
	if cfg.Stderr == nil {
		cfg.Stderr = io.Discard
	}
	if cfg.Git == nil && needsGit(cfg.Details.Columns) {
		cfg.Git = vcs.NewCache(nil)
		cfg.Git.Discover(ctx, paths)
	}

	rn := &run{cfg: cfg, w: w}

	var loose, dirs []*files.File
	for _, p := range paths {
		f, err := files.StatFollow(p)
		if err != nil {
			rn.fail(p, err)
			continue
		}
		if f.IsDir() {
			dirs = append(dirs, f)
		} else {
			loose = append(loose, f)
		}
	}

	if cfg.Details.Cells.Scale.Enabled() {
		rn.extremes = rn.gather(loose, dirs)
	}

	logger.Debug("listing", "paths", len(paths), "files", len(loose), "dirs", len(dirs), "recurse", cfg.Recurse, "tree", cfg.Recursion.Tree)

	var err error
	if cfg.Recurse && cfg.Recursion.Tree {
		err = rn.tree(append(loose, dirs...))
	} else {
		err = rn.sections(loose, dirs, len(paths) > 1)
	}
	if err != nil {
		return err
	}
	if rn.failed > 0 {
		return fmt.Errorf("%d path(s): %w", rn.failed, ErrFailedPaths)
	}
	return nil
}

type run struct {
	cfg      Config
	w        io.Writer
	extremes *colorscale.Extremes
	failed   int
	written  int // sections written so far

	// wrap collects JSON sections into one document instead of writing
	// each table as it is rendered.
	wrap      bool
	collected []jsonSection
}

// jsonSection is one table of a JSON listing with several sections.
type jsonSection struct {
	Path    string          `json:"path,omitempty"`
	Entries json.RawMessage `json:"entries"`
}

func needsGit(cols []column.Column) bool {
	for _, c := range cols {
		if c.Kind == column.GitStatus || c.Kind == column.SubdirGitRepo {
			return true
		}
	}
	return false
}

func (r *run) fail(path string, err error) {
	r.failed++
	logger.Error("cannot list path", "path", path, "error", err)
	fmt.Fprintf(r.cfg.Stderr, "lstree: %v\n", err)
}

// gather collects the color scale ranges over exactly the rows the run
// prints. In tree mode the arguments are rows themselves; in sections only
// their contents are.
func (r *run) gather(loose, dirs []*files.File) *colorscale.Extremes {
	rec := r.cfg.Recursion
	if r.cfg.Recurse && rec.Tree {
		roots := append(append([]*files.File(nil), loose...), dirs...)
		return colorscale.Gather(roots, r.cfg.Lister, &rec)
	}

	e := colorscale.Gather(loose, r.cfg.Lister, nil)
	var policy *files.Recursion
	if r.cfg.Recurse {
		policy = &rec
	}
	for _, d := range dirs {
		dir, err := r.cfg.Lister.List(d)
		if err != nil {
			continue
		}
		e.Walk(dir.Files, r.cfg.Lister, policy, 1)
	}
	return e
}

func (r *run) render(w io.Writer, list []*files.File, errs []files.EntryError, rec *files.Recursion) error {
	rd := &details.Render{
		Files:    list,
		Errors:   errs,
		Theme:    r.cfg.Theme,
		Env:      r.cfg.Env,
		Lister:   r.cfg.Lister,
		Git:      r.cfg.Git,
		Extremes: r.extremes,
		Opts:     r.cfg.Details,
	}
	rd.Opts.Recurse = rec
	return rd.Render(w)
}

// tree renders every argument as a root of one table.
func (r *run) tree(roots []*files.File) error {
	if len(roots) == 0 {
		return nil
	}
	rec := r.cfg.Recursion
	return r.render(r.w, roots, nil, &rec)
}

// sections renders loose files as one table, then every directory under
// its own header. In JSON the tables become the entries of one array.
func (r *run) sections(loose, dirs []*files.File, many bool) error {
	headers := many || r.cfg.Recurse
	if headers && r.cfg.Details.Format == details.FormatJSON {
		r.wrap = true
		r.collected = []jsonSection{}
	}

	if len(loose) > 0 {
		if err := r.section("", loose, nil, false); err != nil {
			return err
		}
	}
	r.cfg.Details.Sort.Files(r.cfg.Env.Locale, dirs)
	for _, d := range dirs {
		if err := r.directory(d, 0, headers); err != nil {
			return err
		}
	}

	if !r.wrap {
		return nil
	}
	data, err := json.MarshalIndent(r.collected, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(r.w, "%s\n", data)
	return err
}

// section writes one table, under a "path:" header when header is set.
func (r *run) section(path string, list []*files.File, errs []files.EntryError, header bool) error {
	if r.wrap {
		var buf bytes.Buffer
		if err := r.render(&buf, list, errs, nil); err != nil {
			return err
		}
		r.collected = append(r.collected, jsonSection{Path: path, Entries: bytes.TrimSpace(buf.Bytes())})
		return nil
	}

	if header {
		if r.written > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintf(r.w, "%s:\n", path)
	}
	r.written++
	return r.render(r.w, list, errs, nil)
}

// directory lists d and, with recursion, its subdirectories after it.
func (r *run) directory(d *files.File, depth int, header bool) error {
	dir, err := r.cfg.Lister.List(d)
	if err != nil {
		r.fail(d.Path, err)
		return nil
	}
	if err := r.section(d.Path, dir.Files, dir.Errors, header); err != nil {
		return err
	}
	if !r.cfg.Recurse {
		return nil
	}

	children := append([]*files.File(nil), dir.Files...)
	r.cfg.Details.Sort.Files(r.cfg.Env.Locale, children)
	for _, child := range children {
		if !r.cfg.Recursion.Descends(child, depth+1) {
			continue
		}
		if err := r.directory(child, depth+1, true); err != nil {
			return err
		}
	}
	return nil
}
