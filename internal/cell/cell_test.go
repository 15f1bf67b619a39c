package cell

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestPaint_WidthIgnoresStyling(t *testing.T) {
	style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff0000"))
	c := Paint(style, "hello")
	require.Equal(t, 5, c.Width)
	require.Equal(t, "hello", c.Plain)
	require.Equal(t, c.Width, lipgloss.Width(c.Contents))
}

func TestPaint_WideRunes(t *testing.T) {
	c := Plain("日本")
	require.Equal(t, 4, c.Width)
}

func TestAppendAndSpaces(t *testing.T) {
	c := Plain("ab")
	c.AddSpaces(3)
	c.Append(Plain("c"))
	require.Equal(t, "ab   c", c.Plain)
	require.Equal(t, 6, c.Width)

	c.AddSpaces(0)
	c.AddSpaces(-2)
	require.Equal(t, 6, c.Width)
}

func TestConcat(t *testing.T) {
	c := Concat(Plain("1.2"), Plain("k"))
	require.Equal(t, "1.2k", c.Plain)
	require.Equal(t, 4, c.Width)
	require.True(t, Cell{}.IsEmpty())
	require.False(t, c.IsEmpty())
}

func TestBlank(t *testing.T) {
	b := Blank(lipgloss.NewStyle())
	require.Equal(t, "-", b.Plain)
	require.Equal(t, 1, b.Width)
}
