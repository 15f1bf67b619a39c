// Package vcs reads git working-tree status for the files of a listing.
//
// Status is gathered once per repository with a single
// `git status --porcelain=v1 -z` call and then only read, so lookups from
// render workers need no locking.
package vcs

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotRepo indicates a path is not inside a git working tree.
	ErrNotRepo = errors.New("vcs: not a git repository")
)

// Status is the state of one side (index or working tree) of a path.
type Status int

const (
	NotModified Status = iota
	Ignored
	New
	TypeChange
	Renamed
	Modified
	Deleted
	Conflicted
)

// Char returns the one-letter column form of s.
func (s Status) Char() string {
	switch s {
	case New:
		return "N"
	case Modified:
		return "M"
	case Deleted:
		return "D"
	case Renamed:
		return "R"
	case TypeChange:
		return "T"
	case Ignored:
		return "I"
	case Conflicted:
		return "U"
	default:
		return "-"
	}
}

// String returns the lower-case name of s.
func (s Status) String() string {
	switch s {
	case New:
		return "new"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Renamed:
		return "renamed"
	case TypeChange:
		return "typechange"
	case Ignored:
		return "ignored"
	case Conflicted:
		return "conflicted"
	default:
		return "unmodified"
	}
}

// FileStatus is the staged and unstaged status of a path.
type FileStatus struct {
	Staged   Status
	Unstaged Status
}

// merge keeps the more significant status on each side. The constant order
// of Status is its priority.
func (f FileStatus) merge(o FileStatus) FileStatus {
	return FileStatus{Staged: max(f.Staged, o.Staged), Unstaged: max(f.Unstaged, o.Unstaged)}
}

type entry struct {
	path   string // relative to the repository root, "/"-separated
	dir    bool   // untracked or ignored directory reported as a whole
	status FileStatus
}

// parsePorcelain parses `git status --porcelain=v1 -z` output.
func parsePorcelain(data []byte) ([]entry, error) {
	var entries []entry
	fields := bytes.Split(data, []byte{0})
	for i := 0; i < len(fields); i++ {
		rec := string(fields[i])
		if rec == "" {
			continue
		}
		if len(rec) < 4 || rec[2] != ' ' {
			return nil, fmt.Errorf("malformed status record %q", rec)
		}
		x, y, path := rec[0], rec[1], rec[3:]
		if x == 'R' || x == 'C' {
			// The source path of a rename or copy follows as its own field.
			i++
		}
		e := entry{path: strings.TrimSuffix(path, "/"), dir: strings.HasSuffix(path, "/")}
		e.status = codes(x, y)
		entries = append(entries, e)
	}
	return entries, nil
}

func codes(x, y byte) FileStatus {
	switch string([]byte{x, y}) {
	case "DD", "AU", "UD", "UA", "DU", "AA", "UU":
		return FileStatus{Staged: Conflicted, Unstaged: Conflicted}
	case "??":
		return FileStatus{Staged: NotModified, Unstaged: New}
	case "!!":
		return FileStatus{Staged: Ignored, Unstaged: Ignored}
	}
	return FileStatus{Staged: code(x), Unstaged: code(y)}
}

func code(c byte) Status {
	switch c {
	case 'M':
		return Modified
	case 'A', 'C':
		return New
	case 'D':
		return Deleted
	case 'R':
		return Renamed
	case 'T':
		return TypeChange
	case 'U':
		return Conflicted
	default:
		return NotModified
	}
}
