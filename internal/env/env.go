// Package env captures everything about the process environment that
// affects how a listing is rendered: the number locale, the timezone, the
// current time and the identity of the user running the listing.
//
// An Environment is built once per invocation and then only read, so a
// render is a pure function of its inputs. Tests construct one directly with
// fixed values.
package env

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Environment is the read-only context of a render.
type Environment struct {
	Locale   language.Tag
	Location *time.Location
	Now      time.Time

	UID  uint32
	GIDs map[uint32]bool // groups the current user belongs to

	Names *Names

	numbers *message.Printer
}

// Options overrides parts of the environment. Zero fields fall back to the
// process environment.
type Options struct {
	Locale   string
	Timezone string
	Now      time.Time
}

// Load builds the environment of the running process.
func Load(opts Options) *Environment {
	e := &Environment{
		Locale:   detectLocale(opts.Locale),
		Location: detectLocation(opts.Timezone),
		Now:      opts.Now,
		UID:      uint32(os.Getuid()),
		GIDs:     map[uint32]bool{uint32(os.Getgid()): true},
		Names:    NewNames(nil, nil),
	}
	if e.Now.IsZero() {
		e.Now = time.Now()
	}
	if groups, err := os.Getgroups(); err == nil {
		for _, g := range groups {
			e.GIDs[uint32(g)] = true
		}
	}
	e.numbers = message.NewPrinter(e.Locale)
	return e
}

// New builds an environment from explicit values, for tests and callers
// that do not want to consult the process.
func New(locale language.Tag, loc *time.Location, now time.Time, names *Names) *Environment {
	if loc == nil {
		loc = time.UTC
	}
	if names == nil {
		names = NewNames(nil, nil)
	}
	return &Environment{
		Locale:   locale,
		Location: loc,
		Now:      now,
		GIDs:     map[uint32]bool{},
		Names:    names,
		numbers:  message.NewPrinter(locale),
	}
}

// FormatInt renders n with the locale's digit grouping.
func (e *Environment) FormatInt(n int64) string {
	return e.numbers.Sprintf("%d", n)
}

// FormatFloat renders f with the given number of decimals using the
// locale's decimal separator.
func (e *Environment) FormatFloat(f float64, decimals int) string {
	return e.numbers.Sprintf(fmt.Sprintf("%%.%df", decimals), f)
}

// InGroup reports whether the current user is a member of gid.
func (e *Environment) InGroup(gid uint32) bool { return e.GIDs[gid] }

// detectLocale picks the number locale from an explicit value or the
// LC_ALL, LC_NUMERIC and LANG variables, in that order. POSIX style names
// such as "de_DE.UTF-8" are accepted; anything unparseable is English.
func detectLocale(explicit string) language.Tag {
	candidates := []string{explicit, os.Getenv("LC_ALL"), os.Getenv("LC_NUMERIC"), os.Getenv("LANG")}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if tag, ok := ParseLocale(c); ok {
			return tag
		}
		// A set but unusable variable still takes precedence over the
		// ones after it.
		return language.English
	}
	return language.English
}

// ParseLocale converts a POSIX locale name to a language tag.
func ParseLocale(s string) (language.Tag, bool) {
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Tag{}, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Tag{}, false
	}
	return tag, true
}

func detectLocation(explicit string) *time.Location {
	name := explicit
	if name == "" {
		name = os.Getenv("TZ")
	}
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(strings.TrimPrefix(name, ":"))
	if err != nil {
		return time.Local
	}
	return loc
}
