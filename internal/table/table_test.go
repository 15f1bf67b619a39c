package table

import (
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/joshuapare/lstree/internal/cell"
	"github.com/joshuapare/lstree/internal/column"
	"github.com/joshuapare/lstree/internal/env"
	"github.com/joshuapare/lstree/internal/files"
	"github.com/joshuapare/lstree/internal/theme"
)

func testTable(cols ...column.Column) *Table {
	lr := lipgloss.NewRenderer(io.Discard)
	lr.SetColorProfile(termenv.Ascii)
	r := &column.Renderer{
		Theme: theme.Default(lr),
		Env:   env.New(language.English, time.UTC, time.Now(), nil),
	}
	return New(cols, r)
}

func TestWidths_Total(t *testing.T) {
	require.Equal(t, 0, Widths{}.Total())
	require.Equal(t, 3+5+2, Widths{3, 5}.Total())
}

func TestWidths_OrderIndependent(t *testing.T) {
	rows := [][]cell.Cell{
		{cell.Plain("a"), cell.Plain("12345")},
		{cell.Plain("abcdef"), cell.Plain("1")},
		nil,
		{cell.Plain("漢字"), cell.Plain("")},
		{cell.Plain("ab"), cell.Plain("123")},
	}

	want := Widths{6, 5}
	rng := rand.New(rand.NewSource(1))
	for range 20 {
		w := make(Widths, 2)
		for _, i := range rng.Perm(len(rows)) {
			w.Add(rows[i])
		}
		require.Equal(t, want, w)
	}
}

func TestWidths_Monotonic(t *testing.T) {
	w := make(Widths, 1)
	prev := 0
	for _, s := range []string{"abc", "a", "abcdef", "", "ab"} {
		w.Add([]cell.Cell{cell.Plain(s)})
		require.GreaterOrEqual(t, w[0], prev)
		prev = w[0]
	}
	require.Equal(t, 6, w[0])
}

func TestTable_Render(t *testing.T) {
	tbl := testTable(column.Column{Kind: column.FileSize}, column.Column{Kind: column.User})

	list := []*files.File{
		{Mode: 0o644, Size: 10},
		{Mode: 0o644, Size: 100},
		{Mode: 0o644, Size: 10000},
	}
	var rows [][]cell.Cell
	for _, f := range list {
		row := tbl.Row(f)
		tbl.AddWidths(row)
		rows = append(rows, row)
	}
	header := tbl.HeaderRow()
	tbl.AddWidths(header)

	require.Equal(t, Widths{4, 4}, tbl.widths)
	require.Equal(t, "Size User ", tbl.Render(header))
	require.Equal(t, "  10 -    ", tbl.Render(rows[0]))
	require.Equal(t, " 100 -    ", tbl.Render(rows[1]))
	require.Equal(t, " 10k -    ", tbl.Render(rows[2]))

	for _, row := range rows {
		require.Len(t, tbl.Render(row), tbl.widths.Total())
	}
	require.Equal(t, strings.Repeat(" ", 10), tbl.Render(nil))
}

func TestTable_RenderWideRunes(t *testing.T) {
	tbl := testTable(column.Column{Kind: column.User})
	rows := [][]cell.Cell{{cell.Plain("日本")}, {cell.Plain("ab")}}
	for _, r := range rows {
		tbl.AddWidths(r)
	}
	require.Equal(t, "日本 ", tbl.Render(rows[0]))
	require.Equal(t, "ab   ", tbl.Render(rows[1]))
}
