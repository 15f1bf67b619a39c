package files

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField is the key a directory's entries are ordered by.
type SortField int

const (
	// SortName orders names naturally, ignoring case.
	SortName SortField = iota
	// SortNameCase orders names naturally, upper case before lower case.
	SortNameCase
	SortExtension
	SortExtensionCase
	SortSize
	SortModified
	SortChanged
	SortAccessed
	SortCreated
	SortType
	SortInode
	// SortNone keeps the order the directory returned.
	SortNone
)

var sortFieldNames = map[string]SortField{
	"name":      SortName,
	"filename":  SortName,
	"Name":      SortNameCase,
	"Filename":  SortNameCase,
	"extension": SortExtension,
	"ext":       SortExtension,
	"Extension": SortExtensionCase,
	"Ext":       SortExtensionCase,
	"size":      SortSize,
	"filesize":  SortSize,
	"modified":  SortModified,
	"date":      SortModified,
	"time":      SortModified,
	"mod":       SortModified,
	"changed":   SortChanged,
	"ch":        SortChanged,
	"accessed":  SortAccessed,
	"acc":       SortAccessed,
	"created":   SortCreated,
	"cr":        SortCreated,
	"type":      SortType,
	"inode":     SortInode,
	"none":      SortNone,
}

// ParseSortField maps a user-facing field name to a SortField. Field names
// are case-sensitive: "Name" sorts case-sensitively, "name" does not.
func ParseSortField(s string) (SortField, error) {
	if f, ok := sortFieldNames[s]; ok {
		return f, nil
	}
	return SortName, fmt.Errorf("unknown sort field %q", s)
}

// DirGrouping moves directories to one end of a listing.
type DirGrouping int

const (
	DirsMixed DirGrouping = iota
	DirsFirst
	DirsLast
)

// Sort is the ordering policy applied to each directory batch.
type Sort struct {
	Field   SortField
	Reverse bool
	Dirs    DirGrouping
}

// SortFunc orders items in place. file extracts the entry each item
// describes; loc selects the collation used for case-insensitive names.
//
// Reversal applies to the field order only: directory grouping and the
// position of "." and ".." are not affected by it.
func SortFunc[T any](s Sort, loc language.Tag, items []T, file func(T) *File) {
	if s.Field != SortNone {
		compare := s.comparator(loc)
		slices.SortStableFunc(items, func(a, b T) int {
			return compare(file(a), file(b))
		})
	}
	if s.Reverse {
		slices.Reverse(items)
	}

	switch s.Dirs {
	case DirsFirst:
		slices.SortStableFunc(items, func(a, b T) int {
			return boolCmp(!file(a).ResolvesToDir(), !file(b).ResolvesToDir())
		})
	case DirsLast:
		slices.SortStableFunc(items, func(a, b T) int {
			return boolCmp(file(a).ResolvesToDir(), file(b).ResolvesToDir())
		})
	}

	slices.SortStableFunc(items, func(a, b T) int {
		return boolCmp(!file(a).Pseudo, !file(b).Pseudo)
	})
}

// Files sorts a plain slice of files.
func (s Sort) Files(loc language.Tag, list []*File) {
	SortFunc(s, loc, list, func(f *File) *File { return f })
}

func (s Sort) comparator(loc language.Tag) func(a, b *File) int {
	col := collate.New(loc, collate.IgnoreCase, collate.Numeric)
	byName := func(a, b *File) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return NaturalCompare(a.Name, b.Name)
	}

	switch s.Field {
	case SortNameCase:
		return func(a, b *File) int { return NaturalCompare(a.Name, b.Name) }
	case SortExtension:
		return func(a, b *File) int {
			return cmp.Or(col.CompareString(a.Ext, b.Ext), byName(a, b))
		}
	case SortExtensionCase:
		return func(a, b *File) int {
			return cmp.Or(NaturalCompare(rawExt(a.Name), rawExt(b.Name)), NaturalCompare(a.Name, b.Name))
		}
	case SortSize:
		return func(a, b *File) int { return cmp.Or(cmp.Compare(a.Size, b.Size), byName(a, b)) }
	case SortModified, SortChanged, SortAccessed, SortCreated:
		kind := timeKindFor(s.Field)
		return func(a, b *File) int {
			ta, _ := a.Time(kind)
			tb, _ := b.Time(kind)
			return cmp.Or(ta.Compare(tb), byName(a, b))
		}
	case SortType:
		return func(a, b *File) int { return cmp.Or(cmp.Compare(typeRank(a), typeRank(b)), byName(a, b)) }
	case SortInode:
		return func(a, b *File) int { return cmp.Or(cmp.Compare(a.Inode, b.Inode), byName(a, b)) }
	default:
		return byName
	}
}

// rawExt is extOf without the case folding.
func rawExt(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return ext[1:]
}

func timeKindFor(f SortField) TimeKind {
	switch f {
	case SortChanged:
		return Changed
	case SortAccessed:
		return Accessed
	case SortCreated:
		return Created
	default:
		return Modified
	}
}

func typeRank(f *File) int {
	switch {
	case f.IsDir():
		return 0
	case f.IsRegular():
		return 1
	case f.IsLink():
		return 2
	case f.IsPipe():
		return 3
	case f.IsSocket():
		return 4
	case f.IsCharDevice():
		return 5
	case f.IsDevice():
		return 6
	default:
		return 7
	}
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// NaturalCompare orders strings byte-wise except that runs of ASCII digits
// compare by numeric value, so "file2" sorts before "file10".
func NaturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := splitDigits(a)
			nb, rb := splitDigits(b)
			if c := compareDigitRuns(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return cmp.Compare(a[0], b[0])
		}
		a, b = a[1:], b[1:]
	}
	return cmp.Compare(len(a), len(b))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func splitDigits(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

// compareDigitRuns compares two digit strings numerically; on equal value
// the run with fewer leading zeros sorts first.
func compareDigitRuns(a, b string) int {
	ta := strings.TrimLeft(a, "0")
	tb := strings.TrimLeft(b, "0")
	if c := cmp.Compare(len(ta), len(tb)); c != 0 {
		return c
	}
	if c := strings.Compare(ta, tb); c != 0 {
		return c
	}
	return cmp.Compare(len(a), len(b))
}
