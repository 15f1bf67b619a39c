package column

import (
	"context"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/lstree/internal/cell"
	"github.com/joshuapare/lstree/internal/colorscale"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/theme"
	"github.com/joshuapare/lstree/internal/vcs"
)

// Options controls how column values are formatted.
type Options struct {
	Size  SizeFormat
	Time  TimeStyle
	Scale colorscale.Options
}

// Renderer turns a file's metadata into cells. Every field is read-only
// during a render, so one Renderer is shared by all workers.
type Renderer struct {
	Theme    *theme.Theme
	Env      *env.Environment
	Git      *vcs.Cache          // nil when no git column is shown
	Extremes *colorscale.Extremes // nil unless the color scale is on
	Opts     Options
}

// Render returns the cell of column c for f.
func (r *Renderer) Render(c Column, f *files.File) cell.Cell {
	switch c.Kind {
	case Inode:
		if !f.HasIDs {
			return r.blank()
		}
		return cell.Paint(r.style(theme.Inode), strconv.FormatUint(f.Inode, 10))
	case Octal:
		return cell.Paint(r.style(theme.Octal), octal(f.Mode))
	case Permissions:
		return r.permissions(f)
	case HardLinks:
		if !f.HasIDs {
			return r.blank()
		}
		role := theme.Links
		if f.IsRegular() && f.Links > 1 {
			role = theme.LinksMulti
		}
		return cell.Paint(r.style(role), r.Env.FormatInt(int64(f.Links)))
	case FileSize:
		return r.size(f)
	case Blocksize:
		if !f.HasIDs || f.IsDir() {
			return r.blank()
		}
		return r.bytes(f.Blocks*512, false)
	case User:
		return r.user(f)
	case Group:
		return r.group(f)
	case SecurityContext:
		if f.SecurityContext == "" {
			return cell.Paint(r.style(theme.SecurityContext), "?")
		}
		return cell.Paint(r.style(theme.SecurityContext), f.SecurityContext)
	case Timestamp:
		return r.timestamp(f, c.Time)
	case GitStatus:
		return r.git(f)
	case SubdirGitRepo:
		return r.repo(f, c.WithStatus)
	}
	return cell.Cell{}
}

// Header returns the header cell for c.
func (r *Renderer) Header(c Column) cell.Cell {
	return cell.Paint(r.style(theme.Header), c.Header())
}

func (r *Renderer) style(role theme.Role) lipgloss.Style { return r.Theme.Style(role) }

func (r *Renderer) blank() cell.Cell { return cell.Blank(r.style(theme.Punctuation)) }

func (r *Renderer) gradient() bool { return r.Extremes != nil && r.Opts.Scale.Enabled() }

func octal(m fs.FileMode) string {
	bits := uint32(m.Perm())
	if m&fs.ModeSetuid != 0 {
		bits |= 0o4000
	}
	if m&fs.ModeSetgid != 0 {
		bits |= 0o2000
	}
	if m&fs.ModeSticky != 0 {
		bits |= 0o1000
	}
	return fmt.Sprintf("%04o", bits)
}

func (r *Renderer) permissions(f *files.File) cell.Cell {
	m := f.Mode
	var out cell.Cell
	add := func(role theme.Role, s string) { out.Append(cell.Paint(r.style(role), s)) }

	add(typeRole(f), typeChar(f))

	bit := func(set bool, role theme.Role, ch string) {
		if set {
			add(role, ch)
		} else {
			add(theme.PermNone, "-")
		}
	}
	// exec writes the execute slot, which also carries setuid, setgid and
	// sticky.
	exec := func(x, special bool, role theme.Role, set, unset string) {
		switch {
		case special && x:
			add(theme.PermSpecial, set)
		case special:
			add(theme.PermSpecial, unset)
		default:
			bit(x, role, "x")
		}
	}

	userExec := theme.PermExecOther
	if f.IsRegular() {
		userExec = theme.PermExec
	}
	bit(m&0o400 != 0, theme.PermRead, "r")
	bit(m&0o200 != 0, theme.PermWrite, "w")
	exec(m&0o100 != 0, m&fs.ModeSetuid != 0, userExec, "s", "S")
	bit(m&0o040 != 0, theme.PermRead, "r")
	bit(m&0o020 != 0, theme.PermWrite, "w")
	exec(m&0o010 != 0, m&fs.ModeSetgid != 0, theme.PermExecOther, "s", "S")
	bit(m&0o004 != 0, theme.PermRead, "r")
	bit(m&0o002 != 0, theme.PermWrite, "w")
	exec(m&0o001 != 0, m&fs.ModeSticky != 0, theme.PermExecOther, "t", "T")

	if len(f.Xattrs) > 0 {
		add(theme.PermAttribute, "@")
	}
	return out
}

func typeChar(f *files.File) string {
	switch {
	case f.IsDir():
		return "d"
	case f.IsLink():
		return "l"
	case f.IsCharDevice():
		return "c"
	case f.IsDevice():
		return "b"
	case f.IsPipe():
		return "|"
	case f.IsSocket():
		return "s"
	default:
		return "."
	}
}

func typeRole(f *files.File) theme.Role {
	if f.IsRegular() {
		return theme.PermNone
	}
	return theme.FileRole(f)
}

func (r *Renderer) size(f *files.File) cell.Cell {
	switch {
	case f.IsDir():
		return r.blank()
	case f.IsDevice():
		return cell.Concat(
			cell.Paint(r.style(theme.SizeMajor), strconv.FormatUint(uint64(f.Major), 10)),
			cell.Paint(r.style(theme.Punctuation), ","),
			cell.Paint(r.style(theme.SizeMinor), strconv.FormatUint(uint64(f.Minor), 10)),
		)
	}
	return r.bytes(f.Size, r.Opts.Scale.Size)
}

// bytes renders n in the configured size format. scaled applies the color
// gradient over the size extremes.
func (r *Renderer) bytes(n int64, scaled bool) cell.Cell {
	number, prefix, magnitude := sizeParts(r.Env, n, r.Opts.Size)
	style := r.style(magnitudeRole(magnitude))
	unit := r.style(theme.SizeUnit)
	if scaled && r.gradient() {
		style = r.Opts.Scale.Adjust(style, float64(n), r.Extremes.Size)
		unit = r.Opts.Scale.Adjust(unit, float64(n), r.Extremes.Size)
	}
	out := cell.Paint(style, number)
	if prefix != "" {
		out.Append(cell.Paint(unit, prefix))
	}
	return out
}

func magnitudeRole(m int) theme.Role {
	switch m {
	case 0:
		return theme.SizeByte
	case 1:
		return theme.SizeKilo
	case 2:
		return theme.SizeMega
	case 3:
		return theme.SizeGiga
	default:
		return theme.SizeHuge
	}
}

func (r *Renderer) user(f *files.File) cell.Cell {
	if !f.HasIDs {
		return r.blank()
	}
	role := theme.UserOther
	if f.UID == r.Env.UID {
		role = theme.UserYou
	}
	name, ok := r.Env.Names.User(f.UID)
	if !ok {
		name = strconv.FormatUint(uint64(f.UID), 10)
	}
	return cell.Paint(r.style(role), name)
}

func (r *Renderer) group(f *files.File) cell.Cell {
	if !f.HasIDs {
		return r.blank()
	}
	role := theme.GroupOther
	if r.Env.InGroup(f.GID) {
		role = theme.GroupYours
	}
	name, ok := r.Env.Names.Group(f.GID)
	if !ok {
		name = strconv.FormatUint(uint64(f.GID), 10)
	}
	return cell.Paint(r.style(role), name)
}

func (r *Renderer) timestamp(f *files.File, kind files.TimeKind) cell.Cell {
	t, ok := f.Time(kind)
	if !ok {
		return r.blank()
	}
	style := r.style(theme.Date)
	if r.Opts.Scale.Age && r.gradient() {
		style = r.Opts.Scale.Adjust(style, colorscale.TimeValue(t), r.Extremes.Time(kind))
	}
	return cell.Paint(style, formatTime(r.Env, t, r.Opts.Time))
}

func (r *Renderer) git(f *files.File) cell.Cell {
	if r.Git == nil {
		return r.gitPair(vcs.FileStatus{})
	}
	st, ok := r.Git.Status(f.Path, f.IsDir())
	if !ok {
		return r.gitPair(vcs.FileStatus{})
	}
	return r.gitPair(st)
}

func (r *Renderer) gitPair(st vcs.FileStatus) cell.Cell {
	return cell.Concat(r.gitChar(st.Staged), r.gitChar(st.Unstaged))
}

func (r *Renderer) gitChar(s vcs.Status) cell.Cell {
	var role theme.Role
	switch s {
	case vcs.New:
		role = theme.GitNew
	case vcs.Modified:
		role = theme.GitModified
	case vcs.Deleted:
		role = theme.GitDeleted
	case vcs.Renamed:
		role = theme.GitRenamed
	case vcs.TypeChange:
		role = theme.GitTypeChange
	case vcs.Ignored:
		role = theme.GitIgnored
	case vcs.Conflicted:
		role = theme.GitConflicted
	default:
		role = theme.Punctuation
	}
	return cell.Paint(r.style(role), s.Char())
}

func (r *Renderer) repo(f *files.File, withStatus bool) cell.Cell {
	if r.Git == nil || !f.ResolvesToDir() {
		return r.blank()
	}
	info, ok := r.Git.Info(context.Background(), f.Path)
	if !ok {
		return r.blank()
	}
	branch := cell.Paint(r.style(theme.RepoBranch), info.Branch)
	if !withStatus {
		return branch
	}
	marker := cell.Paint(r.style(theme.RepoClean), "|")
	if info.Dirty {
		marker = cell.Paint(r.style(theme.RepoDirty), "+")
	}
	return cell.Concat(marker, cell.Plain(" "), branch)
}
