// Package files provides read-only snapshots of filesystem entries and the
// directory listings the renderer walks.
//
// A File is resolved once, when it is listed, and never touched again: every
// accessor is a plain field read. Platform-specific metadata (inode numbers,
// link counts, birth times, extended attributes) is filled in by the stat
// implementation for the current OS.
package files

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrNotDir indicates a directory listing was requested for a non-directory.
	ErrNotDir = errors.New("files: not a directory")
)

// TimeKind selects one of a file's timestamps.
type TimeKind int

const (
	Modified TimeKind = iota
	Changed
	Accessed
	Created
)

// String returns the lower-case name of the timestamp.
func (k TimeKind) String() string {
	switch k {
	case Modified:
		return "modified"
	case Changed:
		return "changed"
	case Accessed:
		return "accessed"
	case Created:
		return "created"
	default:
		return "unknown"
	}
}

// LinkStatus describes the result of resolving a symbolic link.
type LinkStatus int

const (
	// NotLink is used for entries that are not symbolic links.
	NotLink LinkStatus = iota
	// LinkOK means the target exists.
	LinkOK
	// LinkBroken means the target does not exist.
	LinkBroken
	// LinkError means the link itself could not be read.
	LinkError
)

// Attribute is one extended attribute.
type Attribute struct {
	Name  string
	Value []byte
}

// File is a snapshot of one filesystem entry.
type File struct {
	Name string // name as it should be displayed
	Path string // path used to reach the entry
	Ext  string // lower-cased extension without the dot, or ""

	Mode   fs.FileMode
	Size   int64
	Major  uint32 // device major number, devices only
	Minor  uint32 // device minor number, devices only
	Inode  uint64
	Links  uint64
	Blocks int64 // 512-byte blocks allocated
	UID    uint32
	GID    uint32
	HasIDs bool // whether Inode/Links/Blocks/UID/GID were available

	ModTime    time.Time
	ChangeTime time.Time
	AccessTime time.Time
	BirthTime  time.Time

	LinkTarget string
	Link       LinkStatus
	TargetMode fs.FileMode // mode of the link target when Link == LinkOK

	Xattrs          []Attribute
	SecurityContext string

	// Pseudo marks the "." and ".." entries, which are shown but never
	// recursed into.
	Pseudo bool
}

// Time returns the requested timestamp and whether the platform supplied it.
func (f *File) Time(kind TimeKind) (time.Time, bool) {
	var t time.Time
	switch kind {
	case Modified:
		t = f.ModTime
	case Changed:
		t = f.ChangeTime
	case Accessed:
		t = f.AccessTime
	case Created:
		t = f.BirthTime
	}
	return t, !t.IsZero()
}

// IsDir reports whether the entry itself is a directory.
func (f *File) IsDir() bool { return f.Mode.IsDir() }

// IsLink reports whether the entry is a symbolic link.
func (f *File) IsLink() bool { return f.Mode&fs.ModeSymlink != 0 }

// IsRegular reports whether the entry is a regular file.
func (f *File) IsRegular() bool { return f.Mode.IsRegular() }

// IsDevice reports whether the entry is a block or character device.
func (f *File) IsDevice() bool { return f.Mode&fs.ModeDevice != 0 }

// IsCharDevice reports whether the entry is a character device.
func (f *File) IsCharDevice() bool { return f.Mode&fs.ModeCharDevice != 0 }

// IsPipe reports whether the entry is a named pipe.
func (f *File) IsPipe() bool { return f.Mode&fs.ModeNamedPipe != 0 }

// IsSocket reports whether the entry is a socket.
func (f *File) IsSocket() bool { return f.Mode&fs.ModeSocket != 0 }

// IsExecutable reports whether a regular file has any execute bit set.
func (f *File) IsExecutable() bool {
	return f.IsRegular() && f.Mode.Perm()&0o111 != 0
}

// ResolvesToDir reports whether the entry is a directory or a working link
// to one.
func (f *File) ResolvesToDir() bool {
	if f.IsDir() {
		return true
	}
	return f.IsLink() && f.Link == LinkOK && f.TargetMode.IsDir()
}

// IsDotfile reports whether the name starts with a dot.
func (f *File) IsDotfile() bool { return strings.HasPrefix(f.Name, ".") }

// extOf returns the lower-cased extension of name without the leading dot.
// Dotfiles without a second dot have no extension.
func extOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.ToLower(ext[1:])
}
