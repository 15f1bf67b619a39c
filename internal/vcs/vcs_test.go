package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func porcelain(records ...string) []byte {
	return []byte(strings.Join(records, "\x00") + "\x00")
}

func TestParsePorcelain(t *testing.T) {
	entries, err := parsePorcelain(porcelain(
		" M src/main.go",
		"A  src/new.go",
		"R  docs/b.md", "docs/a.md",
		"UU conflict.txt",
		"?? scratch/",
		"!! build/",
		"MD gone.txt",
	))
	require.NoError(t, err)
	require.Equal(t, []entry{
		{path: "src/main.go", status: FileStatus{Staged: NotModified, Unstaged: Modified}},
		{path: "src/new.go", status: FileStatus{Staged: New, Unstaged: NotModified}},
		{path: "docs/b.md", status: FileStatus{Staged: Renamed, Unstaged: NotModified}},
		{path: "conflict.txt", status: FileStatus{Staged: Conflicted, Unstaged: Conflicted}},
		{path: "scratch", dir: true, status: FileStatus{Staged: NotModified, Unstaged: New}},
		{path: "build", dir: true, status: FileStatus{Staged: Ignored, Unstaged: Ignored}},
		{path: "gone.txt", status: FileStatus{Staged: Modified, Unstaged: Deleted}},
	}, entries)
}

func TestParsePorcelain_Malformed(t *testing.T) {
	_, err := parsePorcelain([]byte("bogus\x00"))
	require.Error(t, err)
}

func TestRepo_Status(t *testing.T) {
	entries, err := parsePorcelain(porcelain(
		" M src/main.go",
		"A  src/pkg/new.go",
		"?? scratch/",
		"!! build/",
	))
	require.NoError(t, err)
	root := filepath.FromSlash("/work/repo")
	r := &Repo{Root: root, entries: entries}
	at := func(rel string) string { return filepath.Join(root, filepath.FromSlash(rel)) }

	tests := []struct {
		name  string
		path  string
		isDir bool
		want  FileStatus
	}{
		{"modified file", at("src/main.go"), false, FileStatus{Unstaged: Modified}},
		{"clean file", at("README.md"), false, FileStatus{}},
		{"dir aggregates", at("src"), true, FileStatus{Staged: New, Unstaged: Modified}},
		{"nested dir", at("src/pkg"), true, FileStatus{Staged: New}},
		{"inside untracked dir", at("scratch/notes.txt"), false, FileStatus{Unstaged: New}},
		{"untracked dir itself", at("scratch"), true, FileStatus{Unstaged: New}},
		{"inside ignored dir", at("build/out/bin"), false, FileStatus{Staged: Ignored, Unstaged: Ignored}},
		{"root aggregates all", root, true, FileStatus{Staged: New, Unstaged: Modified}},
		{"outside repo", filepath.FromSlash("/elsewhere/x"), false, FileStatus{}},
		{"sibling with common prefix", at("srcx"), true, FileStatus{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, r.Status(tt.path, tt.isDir))
		})
	}
}

func TestRepo_Status_RootPrefersStrongest(t *testing.T) {
	entries, err := parsePorcelain(porcelain(" M a", "D  b", "?? c"))
	require.NoError(t, err)
	r := &Repo{Root: "/r", entries: entries}
	require.Equal(t, FileStatus{Staged: Deleted, Unstaged: Modified}, r.Status("/r", true))
}

func TestStatusChars(t *testing.T) {
	for s, want := range map[Status]string{
		NotModified: "-", New: "N", Modified: "M", Deleted: "D",
		Renamed: "R", TypeChange: "T", Ignored: "I", Conflicted: "U",
	} {
		assert.Equal(t, want, s.Char(), s.String())
	}
}

// fakeGit answers rev-parse and status for a repository rooted at root.
type fakeGit struct {
	root   string
	status []byte
	calls  atomic.Int32
}

func (g *fakeGit) run(_ context.Context, dir string, args ...string) ([]byte, error) {
	g.calls.Add(1)
	rel, err := filepath.Rel(g.root, dir)
	if err != nil || strings.HasPrefix(rel, "..") {
		return nil, errors.New("fatal: not a git repository")
	}
	switch args[0] {
	case "rev-parse":
		if args[1] == "--show-prefix" {
			if rel == "." {
				return []byte("\n"), nil
			}
			return []byte(filepath.ToSlash(rel) + "/\n"), nil
		}
		return []byte("main\n"), nil
	case "status":
		return g.status, nil
	}
	return nil, errors.New("unexpected git call")
}

func TestCache_Discover(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "pkg"), 0o755))
	git := &fakeGit{root: root, status: porcelain(" M src/pkg/a.go")}

	c := NewCache(git.run)
	c.Discover(context.Background(), []string{filepath.Join(root, "src", "pkg"), filepath.Join(root, "src")})
	require.Len(t, c.repos, 1)
	require.Equal(t, root, c.repos[0].Root)

	st, ok := c.Status(filepath.Join(root, "src", "pkg", "a.go"), false)
	require.True(t, ok)
	require.Equal(t, Modified, st.Unstaged)

	_, ok = c.Status(filepath.Join(os.TempDir(), "lstree-nowhere"), false)
	require.False(t, ok)
}

func TestCache_DiscoverOutsideRepo(t *testing.T) {
	git := &fakeGit{root: filepath.FromSlash("/no/such/root")}
	c := NewCache(git.run)
	c.Discover(context.Background(), []string{t.TempDir()})
	require.Empty(t, c.repos)
}

func TestCache_Info(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "repo")
	plain := filepath.Join(root, "plain")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(plain, 0o755))

	git := &fakeGit{root: root, status: porcelain("?? x")}
	c := NewCache(git.run)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			info, ok := c.Info(context.Background(), repo)
			assert.True(t, ok)
			assert.Equal(t, RepoInfo{Branch: "main", Dirty: true}, info)
		}()
	}
	wg.Wait()
	// One rev-parse and one status, however many workers asked.
	require.Equal(t, int32(2), git.calls.Load())

	_, ok := c.Info(context.Background(), plain)
	require.False(t, ok)
}

func TestExecRunner(t *testing.T) {
	if _, err := os.Stat("/usr/bin/git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := ExecRunner(context.Background(), t.TempDir(), "rev-parse", "--show-prefix")
	// A fresh temp dir is normally outside any repository.
	if err == nil {
		t.Skip("temp dir is inside a repository")
	}
	require.Contains(t, err.Error(), "git rev-parse")
}
