package theme

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/lstree/internal/files"
)

func TestFileRole(t *testing.T) {
	tests := []struct {
		name string
		file files.File
		want Role
	}{
		{"directory", files.File{Name: "src", Mode: fs.ModeDir | 0o755}, Directory},
		{"executable", files.File{Name: "run", Mode: 0o755}, Executable},
		{"symlink", files.File{Name: "l", Mode: fs.ModeSymlink, Link: files.LinkOK}, Symlink},
		{"broken link", files.File{Name: "l", Mode: fs.ModeSymlink, Link: files.LinkBroken}, BrokenLink},
		{"pipe", files.File{Name: "p", Mode: fs.ModeNamedPipe}, Pipe},
		{"char device", files.File{Name: "tty", Mode: fs.ModeDevice | fs.ModeCharDevice}, CharDevice},
		{"block device", files.File{Name: "sda", Mode: fs.ModeDevice}, BlockDevice},
		{"source", files.File{Name: "main.go", Ext: "go", Mode: 0o644}, Source},
		{"image", files.File{Name: "a.png", Ext: "png", Mode: 0o644}, Image},
		{"backup", files.File{Name: "notes~", Mode: 0o644}, Temp},
		{"plain", files.File{Name: "LICENSE", Mode: 0o644}, Normal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FileRole(&tt.file))
		})
	}
}

func TestDefault_HasEveryRole(t *testing.T) {
	th := Default(nil)
	for role := range palette {
		_ = th.Style(role)
	}
	fg, ok := th.Style(Directory).GetForeground().(lipgloss.Color)
	require.True(t, ok)
	require.Equal(t, lipgloss.Color("#5f87d7"), fg)
	require.True(t, th.Style(Directory).GetBold())
}

func TestParseFile(t *testing.T) {
	f, err := ParseFile([]byte(`
styles:
  directory: { fg: "#ff8700", bold: false }
  date: { fg: "244" }
`))
	require.NoError(t, err)

	th := Default(nil)
	th.Apply(f)

	require.Equal(t, lipgloss.Color("#ff8700"), th.Style(Directory).GetForeground())
	require.False(t, th.Style(Directory).GetBold())
	require.Equal(t, lipgloss.Color("244"), th.Style(Date).GetForeground())
	// Untouched roles keep their defaults.
	require.Equal(t, lipgloss.Color("#ff5f5f"), th.Style(Error).GetForeground())
}

func TestParseFile_UnknownRole(t *testing.T) {
	_, err := ParseFile([]byte("styles:\n  nope: { fg: red }\n"))
	require.ErrorIs(t, err, ErrUnknownRole)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, ok, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	require.False(t, ok)

	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("styles:\n  header: { bold: true }\n"), 0o644))
	f, ok, err := LoadFile(path)
	require.NoError(t, err)
	require.True(t, ok)
	require.Contains(t, f.Styles, Header)

	require.NoError(t, os.WriteFile(path, []byte("styles: [unclosed"), 0o644))
	_, _, err = LoadFile(path)
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	require.Equal(t, filepath.Join("/tmp/cfg", "lstree", "theme.yaml"), DefaultPath())
}
