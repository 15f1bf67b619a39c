package files

import (
	"fmt"
	"os"
	"path/filepath"
)

// EntryError is a failure tied to one entry of a listing.
type EntryError struct {
	Path string
	Err  error
}

func (e EntryError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e EntryError) Unwrap() error { return e.Err }

// Dir is the listing of one directory: its children, already filtered, in
// the order the directory returned them, plus any entries that could not be
// read.
type Dir struct {
	Path   string
	Files  []*File
	Errors []EntryError
}

// Lister opens directory listings. Implementations must be safe for
// concurrent use: listings are opened from worker goroutines.
type Lister interface {
	List(dir *File) (*Dir, error)
}

// FS lists the real filesystem.
type FS struct {
	Filter Filter
}

// List reads dir and snapshots every child that passes the filter.
func (l FS) List(dir *File) (*Dir, error) {
	if !dir.ResolvesToDir() {
		return nil, fmt.Errorf("%s: %w", dir.Path, ErrNotDir)
	}
	return ReadDir(dir.Path, l.Filter)
}

// ReadDir lists the directory at path. A failure to open the directory is
// returned as an error; failures on individual entries are collected into
// Dir.Errors.
func ReadDir(path string, filter Filter) (*Dir, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	d := &Dir{Path: path}

	if filter.Dots == DotsAndPseudo {
		for _, name := range []string{".", ".."} {
			f, err := Stat(filepath.Join(path, name), name)
			if err != nil {
				d.Errors = append(d.Errors, EntryError{Path: filepath.Join(path, name), Err: err})
				continue
			}
			f.Pseudo = true
			d.Files = append(d.Files, f)
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if !filter.ShowName(name) {
			continue
		}

		childPath := filepath.Join(path, name)
		f, err := Stat(childPath, name)
		if err != nil {
			d.Errors = append(d.Errors, EntryError{Path: childPath, Err: err})
			continue
		}
		if filter.OnlyDirs && !f.ResolvesToDir() {
			continue
		}
		d.Files = append(d.Files, f)
	}

	return d, nil
}
