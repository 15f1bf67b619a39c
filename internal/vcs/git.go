package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/joshuapare/lstree/internal/logger"
)

// Runner runs git with args in dir and returns its standard output.
type Runner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ExecRunner runs the git binary found on PATH.
func ExecRunner(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Repo is the status snapshot of one working tree.
type Repo struct {
	Root    string // absolute path of the working tree, as the listing spells it
	entries []entry
}

// Status returns the status of path, which must be inside the repository.
// Directories combine the status of everything below them; any path inside
// an untracked or ignored directory inherits that directory's status.
func (r *Repo) Status(path string, isDir bool) FileStatus {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return FileStatus{}
	}
	rel = filepath.ToSlash(rel)

	var st FileStatus
	for _, e := range r.entries {
		switch {
		case e.path == rel:
			st = st.merge(e.status)
		case e.dir && strings.HasPrefix(rel, e.path+"/"):
			st = st.merge(e.status)
		case isDir && (rel == "." || strings.HasPrefix(e.path, rel+"/")):
			st = st.merge(e.status)
		}
	}
	return st
}

// RepoInfo summarises a directory that is itself the root of a repository.
type RepoInfo struct {
	Branch string
	Dirty  bool
}

// Cache holds the repositories covering the paths being listed, plus the
// per-directory repository summaries computed on demand.
type Cache struct {
	run   Runner
	repos []*Repo

	infos  sync.Map // dir -> *RepoInfo (nil when not a repository)
	flight singleflight.Group
}

// NewCache returns an empty cache using run to invoke git. A nil run uses
// ExecRunner.
func NewCache(run Runner) *Cache {
	if run == nil {
		run = ExecRunner
	}
	return &Cache{run: run}
}

// Discover loads the status of every repository containing one of paths.
// Paths outside any repository are skipped.
func (c *Cache) Discover(ctx context.Context, paths []string) {
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if c.repoFor(abs) != nil {
			continue
		}
		repo, err := c.open(ctx, abs)
		if err != nil {
			logger.Debug("git status unavailable", "path", abs, "error", err)
			continue
		}
		c.repos = append(c.repos, repo)
	}
}

// Status returns the status of path, or false when no discovered
// repository contains it.
func (c *Cache) Status(path string, isDir bool) (FileStatus, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return FileStatus{}, false
	}
	repo := c.repoFor(abs)
	if repo == nil {
		return FileStatus{}, false
	}
	return repo.Status(abs, isDir), true
}

func (c *Cache) repoFor(abs string) *Repo {
	for _, r := range c.repos {
		if abs == r.Root || strings.HasPrefix(abs, r.Root+string(filepath.Separator)) {
			return r
		}
	}
	return nil
}

// open finds the working tree containing abs and reads its status.
func (c *Cache) open(ctx context.Context, abs string) (*Repo, error) {
	dir := abs
	if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
		dir = filepath.Dir(abs)
	}
	prefix, err := c.run(ctx, dir, "rev-parse", "--show-prefix")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotRepo)
	}
	root := dir
	for _, part := range strings.Split(strings.Trim(strings.TrimSpace(string(prefix)), "/"), "/") {
		if part != "" {
			root = filepath.Dir(root)
		}
	}

	out, err := c.run(ctx, root, "status", "--porcelain=v1", "-z", "--ignored", "--untracked-files=normal")
	if err != nil {
		return nil, err
	}
	entries, err := parsePorcelain(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	logger.Debug("git status loaded", "root", root, "entries", len(entries))
	return &Repo{Root: root, entries: entries}, nil
}

// Info returns the branch and cleanliness of dir when dir is the root of a
// repository. Safe for concurrent use; each directory is queried once.
func (c *Cache) Info(ctx context.Context, dir string) (RepoInfo, bool) {
	if v, ok := c.infos.Load(dir); ok {
		return deref(v.(*RepoInfo))
	}
	v, _, _ := c.flight.Do(dir, func() (any, error) {
		if v, ok := c.infos.Load(dir); ok {
			return v, nil
		}
		info := c.info(ctx, dir)
		c.infos.Store(dir, info)
		return info, nil
	})
	return deref(v.(*RepoInfo))
}

func (c *Cache) info(ctx context.Context, dir string) *RepoInfo {
	if _, err := os.Lstat(filepath.Join(dir, ".git")); err != nil {
		return nil
	}
	branch, err := c.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil
	}
	status, err := c.run(ctx, dir, "status", "--porcelain=v1", "-z")
	if err != nil {
		return nil
	}
	return &RepoInfo{
		Branch: strings.TrimSpace(string(branch)),
		Dirty:  len(bytes.TrimSpace(status)) > 0,
	}
}

func deref(info *RepoInfo) (RepoInfo, bool) {
	if info == nil {
		return RepoInfo{}, false
	}
	return *info, true
}
