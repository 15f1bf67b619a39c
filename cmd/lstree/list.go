package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/joshuapare/lstree/internal/colorscale"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/details"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/filename"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/listing"
	"github.com/joshuapare/lstree/internal/logger"
	"github.com/joshuapare/lstree/internal/theme"
)

var errConflictingFlags = errors.New("conflicting flags")

func runList(ctx context.Context, stdout, stderr io.Writer, f *listFlags, args []string) error {
	closer, err := logger.Init(logger.Options{Debug: f.debug, Stderr: stderr, LogFile: f.logFile})
	if err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	defer closer.Close()

	cfg, err := f.config(stdout)
	if err != nil {
		return err
	}
	cfg.Stderr = stderr

	logger.Info("starting lstree", "paths", args, "long", f.long, "tree", f.tree, "recurse", f.recurse)
	return listing.Run(ctx, stdout, cfg, args)
}

// config turns the flags into a listing configuration. Styles are rendered
// for out.
func (f *listFlags) config(out io.Writer) (listing.Config, error) {
	var cfg listing.Config

	if f.level < 0 {
		return cfg, fmt.Errorf("invalid --level %d", f.level)
	}
	if f.level > 0 && !f.recurse && !f.tree {
		return cfg, errors.New("option --level is useless without --recurse or --tree")
	}
	if f.workers < 0 {
		return cfg, fmt.Errorf("invalid --workers %d", f.workers)
	}

	filter, err := f.filter()
	if err != nil {
		return cfg, err
	}
	opts, err := f.details()
	if err != nil {
		return cfg, err
	}
	th, err := f.loadTheme(out)
	if err != nil {
		return cfg, err
	}

	cfg = listing.Config{
		Details: opts,
		Filter:  filter,
		Recurse: f.recurse || f.tree,
		Recursion: files.Recursion{
			Tree:        f.tree,
			MaxDepth:    f.level,
			FollowLinks: f.dereference,
		},
		Theme: th,
		Env:   env.Load(env.Options{}),
	}
	return cfg, nil
}

func (f *listFlags) filter() (files.Filter, error) {
	globs, err := files.ParseIgnoreGlobs(f.ignoreGlob)
	if err != nil {
		return files.Filter{}, err
	}
	filter := files.Filter{IgnoreGlobs: globs, OnlyDirs: f.onlyDirs}
	switch {
	case f.all >= 2:
		filter.Dots = files.DotsAndPseudo
	case f.all == 1:
		filter.Dots = files.ShowDots
	}
	return filter, nil
}

func (f *listFlags) details() (details.Options, error) {
	opts := details.DefaultOptions()
	opts.Long = f.long
	opts.Header = f.header
	opts.Xattr = f.extended
	opts.Workers = f.workers
	opts.Name = filename.Options{
		Classify:   f.classify,
		LinkTarget: f.long || f.tree,
	}
	if f.json {
		opts.Format = details.FormatJSON
	}

	sel, err := f.selection()
	if err != nil {
		return opts, err
	}
	opts.Columns = sel.Columns()

	if opts.Sort, err = f.sortPolicy(); err != nil {
		return opts, err
	}
	if opts.Cells, err = f.cells(); err != nil {
		return opts, err
	}
	return opts, nil
}

// selection starts from the default long columns. Any explicit timestamp
// flag replaces the default modification time.
func (f *listFlags) selection() (column.Selection, error) {
	sel := column.DefaultSelection()
	sel.Inode = f.inode
	sel.Octal = f.octal
	sel.Links = f.links
	sel.Blocksize = f.blocksize
	sel.Group = f.group
	sel.SecurityContext = f.context
	sel.Permissions = !f.noPermissions
	sel.Size = !f.noFilesize
	sel.User = !f.noUser
	sel.Git = f.git
	sel.Repos = f.gitRepos || f.gitReposNoStatus
	sel.RepoStatus = f.gitRepos

	mod, acc, cr, ch := f.modified, f.accessed, f.created, f.changed
	switch f.timeField {
	case "":
	case "modified", "mod":
		mod = true
	case "accessed", "acc":
		acc = true
	case "created", "cr":
		cr = true
	case "changed", "ch":
		ch = true
	default:
		return sel, fmt.Errorf("unknown --time field %q", f.timeField)
	}
	if mod || acc || cr || ch {
		sel.Modified, sel.Accessed, sel.Created, sel.Changed = mod, acc, cr, ch
	}
	if f.noTime {
		sel.Modified, sel.Accessed, sel.Created, sel.Changed = false, false, false, false
	}
	return sel, nil
}

func (f *listFlags) sortPolicy() (files.Sort, error) {
	field, err := files.ParseSortField(f.sort)
	if err != nil {
		return files.Sort{}, err
	}
	s := files.Sort{Field: field, Reverse: f.reverse}
	switch {
	case f.dirsFirst && f.dirsLast:
		return s, fmt.Errorf("%w: --group-directories-first and --group-directories-last", errConflictingFlags)
	case f.dirsFirst:
		s.Dirs = files.DirsFirst
	case f.dirsLast:
		s.Dirs = files.DirsLast
	}
	return s, nil
}

func (f *listFlags) cells() (column.Options, error) {
	var opts column.Options
	switch {
	case f.bytes && f.binary:
		return opts, fmt.Errorf("%w: --bytes and --binary", errConflictingFlags)
	case f.bytes:
		opts.Size = column.Bytes
	case f.binary:
		opts.Size = column.Binary
	}

	var err error
	if opts.Time, err = column.ParseTimeStyle(f.timeStyle); err != nil {
		return opts, err
	}
	opts.Scale, err = f.scale()
	return opts, err
}

func (f *listFlags) scale() (colorscale.Options, error) {
	opts := colorscale.Options{MinLuminance: f.minLuminance}
	if f.minLuminance < 0 || f.minLuminance > 100 {
		return opts, fmt.Errorf("--min-luminance must be between 0 and 100, got %d", f.minLuminance)
	}
	if f.colorScale == "" {
		return opts, nil
	}
	for _, part := range strings.Split(f.colorScale, ",") {
		switch strings.TrimSpace(part) {
		case "all":
			opts.Age, opts.Size = true, true
		case "age":
			opts.Age = true
		case "size":
			opts.Size = true
		default:
			return opts, fmt.Errorf("unknown --color-scale field %q", part)
		}
	}

	var err error
	if opts.Mode, err = colorscale.ParseMode(f.colorScaleMode); err != nil {
		return opts, err
	}
	opts.Curve, err = colorscale.ParseCurve(f.colorScaleCurve)
	return opts, err
}

// loadTheme builds the default theme for out and applies the user's theme
// file on top. A missing default file is not an error; a missing --theme
// file is.
func (f *listFlags) loadTheme(out io.Writer) (*theme.Theme, error) {
	r, err := newRenderer(out, f.color)
	if err != nil {
		return nil, err
	}
	th := theme.Default(r)

	path := f.theme
	if path == "" {
		path = theme.DefaultPath()
	}
	if path == "" {
		return th, nil
	}
	file, ok, err := theme.LoadFile(path)
	switch {
	case err != nil:
		return nil, err
	case !ok && f.theme != "":
		return nil, fmt.Errorf("theme file %s not found", path)
	case ok:
		logger.Debug("applying theme file", "path", path, "styles", len(file.Styles))
		th.Apply(file)
	}
	return th, nil
}

// newRenderer picks the color profile for out. In auto mode lipgloss
// detects it from the terminal, honoring NO_COLOR.
func newRenderer(out io.Writer, mode string) (*lipgloss.Renderer, error) {
	r := lipgloss.NewRenderer(out)
	switch strings.ToLower(mode) {
	case "auto", "automatic":
	case "always":
		profile := termenv.NewOutput(out, termenv.WithTTY(true)).ColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		r.SetColorProfile(profile)
	case "never":
		r.SetColorProfile(termenv.Ascii)
	default:
		return nil, fmt.Errorf("unknown --color mode %q", mode)
	}
	return r, nil
}
