// Package column defines the closed set of table columns a long listing can
// show and renders one cell for a given column and file.
package column

import (
	"github.com/joshuapare/lstree/internal/files"
)

// Kind identifies a column.
type Kind int

const (
	Inode Kind = iota
	Octal
	Permissions
	HardLinks
	FileSize
	Blocksize
	User
	Group
	SecurityContext
	Timestamp
	GitStatus
	SubdirGitRepo
)

// Alignment is the side of its column a cell hugs.
type Alignment int

const (
	Left Alignment = iota
	Right
)

// Column is one active column. Time is only meaningful for Timestamp and
// WithStatus only for SubdirGitRepo.
type Column struct {
	Kind       Kind
	Time       files.TimeKind
	WithStatus bool
}

// Header returns the column's label.
func (c Column) Header() string {
	switch c.Kind {
	case Inode:
		return "inode"
	case Octal:
		return "Octal"
	case Permissions:
		return "Permissions"
	case HardLinks:
		return "Links"
	case FileSize:
		return "Size"
	case Blocksize:
		return "Blocksize"
	case User:
		return "User"
	case Group:
		return "Group"
	case SecurityContext:
		return "Security Context"
	case Timestamp:
		switch c.Time {
		case files.Changed:
			return "Date Changed"
		case files.Accessed:
			return "Date Accessed"
		case files.Created:
			return "Date Created"
		default:
			return "Date Modified"
		}
	case GitStatus:
		return "Git"
	case SubdirGitRepo:
		return "Repo"
	}
	return ""
}

// Alignment returns how cells of the column are padded. Numeric columns
// are right-aligned.
func (c Column) Alignment() Alignment {
	switch c.Kind {
	case FileSize, Blocksize, HardLinks, Inode, GitStatus:
		return Right
	default:
		return Left
	}
}

// Selection is the set of columns requested on the command line.
type Selection struct {
	Inode           bool
	Octal           bool
	Permissions     bool
	Links           bool
	Size            bool
	Blocksize       bool
	User            bool
	Group           bool
	SecurityContext bool
	Modified        bool
	Changed         bool
	Created         bool
	Accessed        bool
	Git             bool
	Repos           bool
	RepoStatus      bool
}

// DefaultSelection is what a long listing shows without column flags.
func DefaultSelection() Selection {
	return Selection{Permissions: true, Size: true, User: true, Modified: true}
}

// Columns returns the selected columns in display order.
func (s Selection) Columns() []Column {
	var cols []Column
	add := func(on bool, c Column) {
		if on {
			cols = append(cols, c)
		}
	}
	add(s.Inode, Column{Kind: Inode})
	add(s.Octal, Column{Kind: Octal})
	add(s.Permissions, Column{Kind: Permissions})
	add(s.Links, Column{Kind: HardLinks})
	add(s.Size, Column{Kind: FileSize})
	add(s.Blocksize, Column{Kind: Blocksize})
	add(s.User, Column{Kind: User})
	add(s.Group, Column{Kind: Group})
	add(s.SecurityContext, Column{Kind: SecurityContext})
	add(s.Modified, Column{Kind: Timestamp, Time: files.Modified})
	add(s.Changed, Column{Kind: Timestamp, Time: files.Changed})
	add(s.Created, Column{Kind: Timestamp, Time: files.Created})
	add(s.Accessed, Column{Kind: Timestamp, Time: files.Accessed})
	add(s.Git, Column{Kind: GitStatus})
	add(s.Repos, Column{Kind: SubdirGitRepo, WithStatus: s.RepoStatus})
	return cols
}
