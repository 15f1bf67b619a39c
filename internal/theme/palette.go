package theme

import "github.com/charmbracelet/lipgloss"

// StyleSpec describes a style in terms a theme file can express. Colors
// are hex strings ("#5f87d7") or ANSI 256 indexes ("75").
type StyleSpec struct {
	Fg        string `yaml:"fg,omitempty"`
	Bg        string `yaml:"bg,omitempty"`
	Bold      *bool  `yaml:"bold,omitempty"`
	Italic    *bool  `yaml:"italic,omitempty"`
	Underline *bool  `yaml:"underline,omitempty"`
	Faint     *bool  `yaml:"faint,omitempty"`
}

func (s StyleSpec) style(r *lipgloss.Renderer) lipgloss.Style {
	return s.apply(r.NewStyle())
}

// apply layers s over base. Unset fields keep base's values.
func (s StyleSpec) apply(base lipgloss.Style) lipgloss.Style {
	if s.Fg != "" {
		base = base.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Bg != "" {
		base = base.Background(lipgloss.Color(s.Bg))
	}
	if s.Bold != nil {
		base = base.Bold(*s.Bold)
	}
	if s.Italic != nil {
		base = base.Italic(*s.Italic)
	}
	if s.Underline != nil {
		base = base.Underline(*s.Underline)
	}
	if s.Faint != nil {
		base = base.Faint(*s.Faint)
	}
	return base
}

var yes = func() *bool { b := true; return &b }()

func fg(hex string) StyleSpec     { return StyleSpec{Fg: hex} }
func bold(hex string) StyleSpec   { return StyleSpec{Fg: hex, Bold: yes} }
func italic(hex string) StyleSpec { return StyleSpec{Fg: hex, Italic: yes} }

// palette is the built-in dark-terminal theme.
var palette = map[Role]StyleSpec{
	Normal:      {},
	Directory:   bold("#5f87d7"),
	Executable:  bold("#87d75f"),
	Symlink:     fg("#5fd7d7"),
	BrokenLink:  bold("#ff5f5f"),
	LinkPath:    fg("#87afaf"),
	Pipe:        fg("#d7af5f"),
	Socket:      bold("#d75fd7"),
	BlockDevice: bold("#d7d75f"),
	CharDevice:  bold("#d7d75f"),
	Special:     fg("#d7d75f"),

	Image:    fg("#d787af"),
	Video:    bold("#d787af"),
	Music:    fg("#87d7af"),
	Archive:  fg("#ff8787"),
	Document: fg("#d7d7ff"),
	Source:   fg("#ffd787"),
	Config:   fg("#ffd7af"),
	Temp:     fg("#6c6c6c"),
	Crypto:   bold("#87af87"),

	Punctuation: fg("#6c6c6c"),
	Header:      {Underline: yes},
	Error:       bold("#ff5f5f"),
	Attribute:   italic("#8a8a8a"),

	PermType:      bold("#5f87d7"),
	PermRead:      bold("#d7d75f"),
	PermWrite:     bold("#ff5f5f"),
	PermExec:      {Fg: "#87d75f", Bold: yes, Underline: yes},
	PermExecOther: fg("#87d75f"),
	PermSpecial:   fg("#d787d7"),
	PermNone:      fg("#6c6c6c"),
	PermAttribute: fg("#d7d7d7"),
	Octal:         fg("#d787d7"),

	SizeByte:  fg("#87d75f"),
	SizeKilo:  bold("#87d75f"),
	SizeMega:  bold("#5fd75f"),
	SizeGiga:  bold("#d7d75f"),
	SizeHuge:  bold("#ff875f"),
	SizeUnit:  fg("#87af5f"),
	SizeMajor: bold("#87d75f"),
	SizeMinor: fg("#87d75f"),

	UserYou:    bold("#d7d75f"),
	UserOther:  fg("#d7d7d7"),
	GroupYours: bold("#d7d75f"),
	GroupOther: fg("#d7d7d7"),

	Links:      bold("#ff5f5f"),
	LinksMulti: {Fg: "#ff5f5f", Bg: "#ffd75f"},
	Inode:      fg("#d787d7"),
	Blocks:     fg("#5fafd7"),
	Date:       fg("#5f87d7"),

	GitNew:        fg("#87d75f"),
	GitModified:   fg("#5f87d7"),
	GitDeleted:    fg("#ff5f5f"),
	GitRenamed:    fg("#d7d75f"),
	GitTypeChange: fg("#d787d7"),
	GitIgnored:    fg("#6c6c6c"),
	GitConflicted: fg("#ff5f5f"),
	RepoClean:     fg("#87d75f"),
	RepoDirty:     bold("#ffd75f"),
	RepoBranch:    fg("#5fd7d7"),

	SecurityContext: fg("#8a8a8a"),
}

// extensionRoles sorts common extensions into broad categories.
var extensionRoles = map[string]Role{
	"png": Image, "jpg": Image, "jpeg": Image, "gif": Image, "webp": Image,
	"bmp": Image, "tiff": Image, "svg": Image, "ico": Image, "heic": Image,

	"mp4": Video, "mkv": Video, "mov": Video, "avi": Video, "webm": Video,

	"mp3": Music, "flac": Music, "ogg": Music, "wav": Music, "m4a": Music,

	"zip": Archive, "tar": Archive, "gz": Archive, "tgz": Archive, "bz2": Archive,
	"xz": Archive, "zst": Archive, "7z": Archive, "rar": Archive, "deb": Archive,
	"rpm": Archive, "jar": Archive,

	"md": Document, "markdown": Document, "txt": Document, "rst": Document,
	"pdf": Document, "doc": Document, "docx": Document, "odt": Document,

	"go": Source, "rs": Source, "c": Source, "h": Source, "cpp": Source,
	"py": Source, "rb": Source, "js": Source, "ts": Source, "java": Source,
	"sh": Source, "lua": Source, "swift": Source, "kt": Source,

	"json": Config, "yaml": Config, "yml": Config, "toml": Config, "ini": Config,
	"conf": Config, "xml": Config, "mod": Config, "sum": Config,

	"tmp": Temp, "swp": Temp, "bak": Temp, "orig": Temp,

	"asc": Crypto, "gpg": Crypto, "sig": Crypto, "pem": Crypto, "key": Crypto,
	"crt": Crypto, "pub": Crypto,
}
