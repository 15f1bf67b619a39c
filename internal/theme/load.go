package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File is the on-disk theme format:
//
//	styles:
//	  directory: { fg: "#ff8700", bold: true }
//	  date: { fg: "244" }
type File struct {
	Styles map[Role]StyleSpec `yaml:"styles"`
}

// DefaultPath returns where a user theme is looked for when none is given:
// $XDG_CONFIG_HOME/lstree/theme.yaml, falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lstree", "theme.yaml")
}

// ParseFile decodes a theme file.
func ParseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse theme: %w", err)
	}
	for role := range f.Styles {
		if _, ok := palette[role]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
		}
	}
	return &f, nil
}

// LoadFile reads the theme at path. A missing file at the default location
// is not an error: ok is false and the built-in theme should be used.
func LoadFile(path string) (f *File, ok bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read theme %s: %w", path, err)
	}
	f, err = ParseFile(data)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", path, err)
	}
	return f, true, nil
}

// Apply layers the file's styles over t.
func (t *Theme) Apply(f *File) {
	if f == nil {
		return
	}
	for role, spec := range f.Styles {
		t.styles[role] = spec.apply(t.Style(role))
	}
}
