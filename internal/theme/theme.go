// Package theme maps the semantic roles of a listing (directories, dates,
// git statuses, ...) to lipgloss styles.
//
// The renderer only ever asks for a style by role; it never picks colors
// itself apart from the gradient adjustment in package colorscale.
package theme

import (
	"errors"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/lstree/internal/files"
)

var (
	// ErrUnknownRole indicates a theme file named a role that does not exist.
	ErrUnknownRole = errors.New("theme: unknown role")
)

// Role is a semantic thing the listing can paint.
type Role string

const (
	Normal      Role = "normal"
	Directory   Role = "directory"
	Executable  Role = "executable"
	Symlink     Role = "symlink"
	BrokenLink  Role = "broken-link"
	LinkPath    Role = "link-path"
	Pipe        Role = "pipe"
	Socket      Role = "socket"
	BlockDevice Role = "block-device"
	CharDevice  Role = "char-device"
	Special     Role = "special"

	Image    Role = "image"
	Video    Role = "video"
	Music    Role = "music"
	Archive  Role = "archive"
	Document Role = "document"
	Source   Role = "source"
	Config   Role = "config"
	Temp     Role = "temp"
	Crypto   Role = "crypto"

	Punctuation Role = "punctuation"
	Header      Role = "header"
	Error       Role = "error"
	Attribute   Role = "attribute"

	PermType      Role = "perm-type"
	PermRead      Role = "perm-read"
	PermWrite     Role = "perm-write"
	PermExec      Role = "perm-exec"
	PermExecOther Role = "perm-exec-other"
	PermSpecial   Role = "perm-special"
	PermNone      Role = "perm-none"
	PermAttribute Role = "perm-attribute"
	Octal         Role = "octal"

	SizeByte  Role = "size-byte"
	SizeKilo  Role = "size-kilo"
	SizeMega  Role = "size-mega"
	SizeGiga  Role = "size-giga"
	SizeHuge  Role = "size-huge"
	SizeUnit  Role = "size-unit"
	SizeMajor Role = "size-major"
	SizeMinor Role = "size-minor"

	UserYou    Role = "user-you"
	UserOther  Role = "user-other"
	GroupYours Role = "group-yours"
	GroupOther Role = "group-other"

	Links      Role = "links"
	LinksMulti Role = "links-multi"
	Inode      Role = "inode"
	Blocks     Role = "blocks"
	Date       Role = "date"

	GitNew        Role = "git-new"
	GitModified   Role = "git-modified"
	GitDeleted    Role = "git-deleted"
	GitRenamed    Role = "git-renamed"
	GitTypeChange Role = "git-typechange"
	GitIgnored    Role = "git-ignored"
	GitConflicted Role = "git-conflicted"
	RepoClean     Role = "repo-clean"
	RepoDirty     Role = "repo-dirty"
	RepoBranch    Role = "repo-branch"

	SecurityContext Role = "security-context"
)

// Theme holds one style per role.
type Theme struct {
	r      *lipgloss.Renderer
	styles map[Role]lipgloss.Style
}

// Default returns the built-in palette bound to r. A nil renderer uses the
// lipgloss default renderer.
func Default(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := &Theme{r: r, styles: make(map[Role]lipgloss.Style, len(palette))}
	for role, spec := range palette {
		t.styles[role] = spec.style(r)
	}
	return t
}

// Renderer returns the lipgloss renderer the theme's styles are bound to.
func (t *Theme) Renderer() *lipgloss.Renderer { return t.r }

// Style returns the style for role. Unknown roles are unstyled.
func (t *Theme) Style(role Role) lipgloss.Style {
	if s, ok := t.styles[role]; ok {
		return s
	}
	return t.r.NewStyle()
}

// FileStyle picks the style a file's name is painted in: by kind first,
// then by extension category.
func (t *Theme) FileStyle(f *files.File) lipgloss.Style {
	return t.Style(FileRole(f))
}

// FileRole returns the role FileStyle uses for f.
func FileRole(f *files.File) Role {
	switch {
	case f.IsDir():
		return Directory
	case f.IsLink():
		if f.Link != files.LinkOK {
			return BrokenLink
		}
		return Symlink
	case f.IsPipe():
		return Pipe
	case f.IsSocket():
		return Socket
	case f.IsCharDevice():
		return CharDevice
	case f.IsDevice():
		return BlockDevice
	case !f.IsRegular():
		return Special
	case f.IsExecutable():
		return Executable
	}
	if role, ok := extensionRoles[f.Ext]; ok {
		return role
	}
	if n := len(f.Name); n > 0 && f.Name[n-1] == '~' {
		return Temp
	}
	return Normal
}
