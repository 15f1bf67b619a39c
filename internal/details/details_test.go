package details

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/joshuapare/lstree/internal/colorscale"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/theme"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

// fakeLister serves listings from memory. Paths missing from dirs fail
// with a permission error.
type fakeLister struct {
	dirs map[string][]*files.File
}

func (l fakeLister) List(dir *files.File) (*files.Dir, error) {
	children, ok := l.dirs[dir.Path]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: dir.Path, Err: fs.ErrPermission}
	}
	return &files.Dir{Path: dir.Path, Files: append([]*files.File(nil), children...)}, nil
}

func file(path string, size int64) *files.File {
	return &files.File{
		Name: path[strings.LastIndexByte(path, '/')+1:], Path: path,
		Mode: 0o644, Size: size, ModTime: now.Add(-time.Hour),
	}
}

func dir(path string) *files.File {
	f := file(path, 0)
	f.Mode = fs.ModeDir | 0o755
	return f
}

func plainTheme(profile termenv.Profile) *theme.Theme {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(profile)
	return theme.Default(lr)
}

func newRender(roots []*files.File, lister files.Lister, opts Options) *Render {
	return &Render{
		Files:  roots,
		Theme:  plainTheme(termenv.Ascii),
		Env:    env.New(language.English, time.UTC, now, nil),
		Lister: lister,
		Opts:   opts,
	}
}

func render(t *testing.T, r *Render) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf))
	return buf.String()
}

func treeOpts(maxDepth int) Options {
	opts := DefaultOptions()
	opts.Recurse = &files.Recursion{Tree: true, MaxDepth: maxDepth}
	return opts
}

func sampleTree() fakeLister {
	return fakeLister{dirs: map[string][]*files.File{
		"d":     {file("d/y", 1), file("d/x", 1), dir("d/sub")},
		"d/sub": {file("d/sub/z", 1)},
	}}
}

func TestRender_FlatSizes(t *testing.T) {
	opts := DefaultOptions()
	opts.Long = true
	opts.Columns = []column.Column{{Kind: column.FileSize}}

	roots := []*files.File{file("d/c", 10000), file("d/a", 10), file("d/b", 100)}
	out := render(t, newRender(roots, nil, opts))

	require.Equal(t, " 10 a\n100 b\n10k c\n", out)
}

func TestRender_Header(t *testing.T) {
	opts := DefaultOptions()
	opts.Long = true
	opts.Header = true
	opts.Columns = []column.Column{{Kind: column.FileSize}}

	roots := []*files.File{file("d/a", 10), file("d/b", 100)}
	out := render(t, newRender(roots, nil, opts))

	require.Equal(t, "Size Name\n  10 a\n 100 b\n", out)
}

func TestRender_Tree(t *testing.T) {
	out := render(t, newRender([]*files.File{dir("d")}, sampleTree(), treeOpts(0)))
	require.Equal(t, strings.Join([]string{
		"d",
		"├── sub",
		"│   └── z",
		"├── x",
		"└── y",
		"",
	}, "\n"), out)
}

func TestRender_TreeDepthLimit(t *testing.T) {
	out := render(t, newRender([]*files.File{dir("d")}, sampleTree(), treeOpts(1)))
	require.Equal(t, "d\n├── sub\n├── x\n└── y\n", out)
}

func TestRender_TreeWithColumns(t *testing.T) {
	opts := treeOpts(0)
	opts.Long = true
	opts.Columns = []column.Column{{Kind: column.FileSize}}
	lister := fakeLister{dirs: map[string][]*files.File{
		"d":     {file("d/big", 12345), dir("d/sub")},
		"d/sub": {file("d/sub/z", 7)},
	}}

	out := render(t, newRender([]*files.File{dir("d")}, lister, opts))
	require.Equal(t, strings.Join([]string{
		"  - d",
		"12k ├── big",
		"  - └── sub",
		"  7     └── z",
		"",
	}, "\n"), out)
}

func TestRender_UnreadableDirectory(t *testing.T) {
	lister := fakeLister{dirs: map[string][]*files.File{
		"d": {file("d/z", 1), dir("d/locked"), file("d/a", 1)},
	}}

	out := render(t, newRender([]*files.File{dir("d")}, lister, treeOpts(0)))
	require.Equal(t, strings.Join([]string{
		"d",
		"├── a",
		"├── locked",
		"│   └── <permission denied>",
		"└── z",
		"",
	}, "\n"), out)
}

func TestRender_EntryErrors(t *testing.T) {
	r := newRender([]*files.File{file("ok", 1)}, nil, DefaultOptions())
	r.Errors = []files.EntryError{{Path: "gone", Err: &fs.PathError{Op: "lstat", Path: "gone", Err: fs.ErrNotExist}}}
	require.Equal(t, "<gone: file does not exist>\nok\n", render(t, r))
}

func TestRender_Xattrs(t *testing.T) {
	f := file("notes", 1)
	f.Xattrs = []files.Attribute{{Name: "user.a", Value: []byte("abc")}, {Name: "user.b"}}

	opts := DefaultOptions()
	opts.Xattr = true
	out := render(t, newRender([]*files.File{f, file("other", 1)}, nil, opts))
	require.Equal(t, strings.Join([]string{
		"notes",
		"├── user.a (len 3)",
		"└── user.b (len 0)",
		"other",
		"",
	}, "\n"), out)
}

func TestRender_XattrsBeforeChildren(t *testing.T) {
	d := dir("d")
	d.Xattrs = []files.Attribute{{Name: "user.tag", Value: []byte("x")}}
	opts := treeOpts(0)
	opts.Xattr = true
	lister := fakeLister{dirs: map[string][]*files.File{"d": {file("d/a", 1)}}}

	out := render(t, newRender([]*files.File{d}, lister, opts))
	require.Equal(t, "d\n├── user.tag (len 1)\n└── a\n", out)
}

func TestRender_PreservesBatchOrder(t *testing.T) {
	var roots []*files.File
	var want strings.Builder
	for i := range 200 {
		name := fmt.Sprintf("f%03d", 199-i)
		roots = append(roots, file(name, int64(i)))
		want.WriteString(name + "\n")
	}
	opts := DefaultOptions()
	opts.Sort = files.Sort{Field: files.SortNone}
	opts.Workers = 3

	require.Equal(t, want.String(), render(t, newRender(roots, nil, opts)))
}

func TestRender_WidthsSpanWholeTree(t *testing.T) {
	opts := treeOpts(0)
	opts.Long = true
	opts.Columns = []column.Column{{Kind: column.FileSize}}
	lister := fakeLister{dirs: map[string][]*files.File{
		"d":        {dir("d/a"), file("d/b", 1)},
		"d/a":      {dir("d/a/deep")},
		"d/a/deep": {file("d/a/deep/huge", 999_000)},
	}}

	out := render(t, newRender([]*files.File{dir("d")}, lister, opts))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	for _, line := range lines {
		// Every size is padded to the width of "999k" plus one space.
		require.Equal(t, ' ', rune(line[4]), line)
	}
}

var fgSequence = regexp.MustCompile(`38;2;(\d+);(\d+);(\d+)`)

func lightness(t *testing.T, s string) float64 {
	t.Helper()
	m := fgSequence.FindStringSubmatch(s)
	require.NotNil(t, m, "no truecolor foreground in %q", s)
	var rgb [3]float64
	for i := range rgb {
		n, err := strconv.Atoi(m[i+1])
		require.NoError(t, err)
		rgb[i] = float64(n) / 255
	}
	l, _, _ := colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}.OkLch()
	return l
}

func TestRender_GradientByAge(t *testing.T) {
	recent := file("d/recent", 1)
	recent.ModTime = now.Add(-24 * time.Hour)
	old := file("d/old", 1)
	old.ModTime = now.Add(-365 * 24 * time.Hour)

	th := plainTheme(termenv.TrueColor)
	override, err := theme.ParseFile([]byte("styles:\n  date: { fg: \"#808080\" }\n"))
	require.NoError(t, err)
	th.Apply(override)

	opts := DefaultOptions()
	opts.Long = true
	opts.Columns = []column.Column{{Kind: column.Timestamp, Time: files.Modified}}
	opts.Cells.Scale = colorscale.Options{Mode: colorscale.Gradient, Age: true, MinLuminance: 40}

	r := newRender([]*files.File{recent, old}, nil, opts)
	r.Theme = th
	out := render(t, r)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 2)
	// Name sort puts "old" first.
	require.InDelta(t, 0.4, lightness(t, lines[0]), 0.02)
	require.InDelta(t, 1.0, lightness(t, lines[1]), 0.02)
}

func TestRender_JSON(t *testing.T) {
	opts := treeOpts(0)
	opts.Long = true
	opts.Header = true
	opts.Format = FormatJSON
	opts.Columns = []column.Column{{Kind: column.FileSize}}
	lister := fakeLister{dirs: map[string][]*files.File{
		"d":     {file("d/x", 10), dir("d/sub"), dir("d/locked")},
		"d/sub": {file("d/sub/z", 2000)},
	}}

	out := render(t, newRender([]*files.File{dir("d")}, lister, opts))

	var got []*jsonEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []*jsonEntry{{
		Name:   "d",
		Fields: map[string]string{"Size": "-"},
		Children: []*jsonEntry{
			{
				Name:     "locked",
				Fields:   map[string]string{"Size": "-"},
				Children: []*jsonEntry{{Error: "permission denied"}},
			},
			{
				Name:     "sub",
				Fields:   map[string]string{"Size": "-"},
				Children: []*jsonEntry{{Name: "z", Fields: map[string]string{"Size": "2.0k"}}},
			},
			{Name: "x", Fields: map[string]string{"Size": "10"}},
		},
	}}, got)
}

func TestRender_JSONWithoutHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.Long = true
	opts.Format = FormatJSON
	opts.Columns = []column.Column{{Kind: column.FileSize}, {Kind: column.Octal}}

	out := render(t, newRender([]*files.File{file("a", 1)}, nil, opts))
	var got []*jsonEntry
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []*jsonEntry{{Name: "a", Cells: []string{"1", "0644"}}}, got)
}

func TestOptions_Workers(t *testing.T) {
	require.Equal(t, 1, Options{}.workers(1))
	require.Equal(t, 2, Options{Workers: 2}.workers(10))
	require.Equal(t, 5, Options{Workers: 8}.workers(5))
	w := Options{}.workers(1000)
	require.GreaterOrEqual(t, w, minWorkers)
	require.LessOrEqual(t, w, maxWorkers)
}
