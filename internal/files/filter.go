package files

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DotFilter controls which dotfiles a listing includes.
type DotFilter int

const (
	// HideDots skips every name starting with a dot.
	HideDots DotFilter = iota
	// ShowDots includes dotfiles.
	ShowDots
	// DotsAndPseudo also includes the "." and ".." entries.
	DotsAndPseudo
)

// Filter decides which entries of a directory are listed.
type Filter struct {
	Dots        DotFilter
	IgnoreGlobs []string
	OnlyDirs    bool
}

// ShowName reports whether an entry called name passes the dot filter and
// the ignore globs.
func (f Filter) ShowName(name string) bool {
	if f.Dots == HideDots && strings.HasPrefix(name, ".") {
		return false
	}
	for _, glob := range f.IgnoreGlobs {
		if ok, _ := filepath.Match(glob, name); ok {
			return false
		}
	}
	return true
}

// ParseIgnoreGlobs splits a pipe-separated glob list and validates each
// pattern.
func ParseIgnoreGlobs(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var globs []string
	for _, g := range strings.Split(s, "|") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if _, err := filepath.Match(g, ""); err != nil {
			return nil, fmt.Errorf("invalid ignore glob %q: %w", g, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}
