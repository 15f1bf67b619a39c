// Package filename renders the name cell that ends every row.
package filename

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/joshuapare/lstree/internal/cell"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/theme"
)

// Options controls the decorations around a name.
type Options struct {
	Classify   bool // append a type indicator: / * @ | =
	LinkTarget bool // show " -> target" after symbolic links
}

// Cell renders f's name.
func Cell(th *theme.Theme, f *files.File, opts Options) cell.Cell {
	out := cell.Paint(th.FileStyle(f), display(f.Name))

	if f.IsLink() && opts.LinkTarget {
		out.Append(cell.Paint(th.Style(theme.Punctuation), " -> "))
		out.Append(target(th, f))
		return out
	}
	if opts.Classify {
		if s := indicator(f); s != "" {
			out.Append(cell.Paint(th.Style(theme.Punctuation), s))
		}
	}
	return out
}

func target(th *theme.Theme, f *files.File) cell.Cell {
	switch f.Link {
	case files.LinkOK:
		// Paint the target the way it would be painted if listed itself.
		t := files.File{Name: f.LinkTarget, Mode: f.TargetMode, Ext: ext(f.LinkTarget)}
		return cell.Paint(th.FileStyle(&t), display(f.LinkTarget))
	case files.LinkError:
		return cell.Paint(th.Style(theme.Error), "[Error reading link]")
	default:
		return cell.Paint(th.Style(theme.BrokenLink).Underline(true), display(f.LinkTarget))
	}
}

func indicator(f *files.File) string {
	switch {
	case f.IsDir():
		return "/"
	case f.IsLink():
		return "@"
	case f.IsPipe():
		return "|"
	case f.IsSocket():
		return "="
	case f.IsExecutable():
		return "*"
	}
	return ""
}

func ext(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 || strings.ContainsRune(name[i:], '/') {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// display escapes characters that would corrupt the terminal.
func display(name string) string {
	if strings.IndexFunc(name, func(r rune) bool { return !unicode.IsPrint(r) }) < 0 {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsPrint(r) {
			b.WriteRune(r)
			continue
		}
		q := strconv.QuoteRune(r)
		b.WriteString(q[1 : len(q)-1])
	}
	return b.String()
}
