// Package colorscale shades timestamp and size cells by where their value
// falls between the smallest and largest value of the whole listing.
//
// The extremes are gathered by a full pre-pass before any row is rendered
// and are read-only afterwards. Adjust is a pure function of a style, a value
// and a range.
package colorscale

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Mode selects whether cell colors depend on the data.
type Mode int

const (
	// Fixed uses the theme's static styles only.
	Fixed Mode = iota
	// Gradient adjusts the lightness of the theme's styles per value.
	Gradient
)

// Curve maps a ratio in [0,1] to a lightness.
type Curve int

const (
	// Linear interpolates between the floor and full lightness.
	Linear Curve = iota
	// Decay keeps recent values bright and lets old ones fall off quickly.
	Decay
)

// DefaultMinLuminance is the lightness floor, in percent, used when none is
// configured.
const DefaultMinLuminance = 40

// Options configures the color scale.
type Options struct {
	Mode         Mode
	Age          bool // shade timestamp columns
	Size         bool // shade the size column
	Curve        Curve
	MinLuminance int // floor in percent, 0-100
}

// Enabled reports whether any cell is shaded.
func (o Options) Enabled() bool {
	return o.Mode == Gradient && (o.Age || o.Size)
}

// Floor returns the configured minimum lightness as a fraction.
func (o Options) Floor() float64 {
	return clamp(float64(o.MinLuminance)/100, 0, 1)
}

// ParseMode parses "fixed" or "gradient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "fixed":
		return Fixed, nil
	case "gradient":
		return Gradient, nil
	}
	return Fixed, fmt.Errorf("unknown color scale mode %q", s)
}

// ParseCurve parses "linear" or "decay".
func ParseCurve(s string) (Curve, error) {
	switch strings.ToLower(s) {
	case "linear":
		return Linear, nil
	case "decay":
		return Decay, nil
	}
	return Linear, fmt.Errorf("unknown color scale curve %q", s)
}

// Lightness returns the OkLch lightness for ratio under curve.
func Lightness(ratio, floor float64, curve Curve) float64 {
	switch curve {
	case Decay:
		return clamp(1-0.4+0.6*math.Exp(-7*(1-ratio)), 0, 1)
	default:
		return floor + (1-floor)*ratio
	}
}

// Adjust returns style with its foreground lightness replaced according to
// where value falls in r. A nil range, or a style whose foreground is not an
// RGB or 256-color value, is returned unchanged. Background and text
// attributes are never touched.
func (o Options) Adjust(style lipgloss.Style, value float64, r *Range) lipgloss.Style {
	if r == nil {
		return style
	}
	col, ok := foreground(style)
	if !ok {
		return style
	}
	_, c, h := col.OkLch()
	l := Lightness(r.Ratio(value), o.Floor(), o.Curve)
	adjusted := colorful.OkLch(l, c, h).Clamped()
	return style.Foreground(lipgloss.Color(adjusted.Hex()))
}

// foreground extracts the style's foreground as an RGB color.
func foreground(style lipgloss.Style) (colorful.Color, bool) {
	c, ok := style.GetForeground().(lipgloss.Color)
	if !ok || c == "" {
		return colorful.Color{}, false
	}
	s := string(c)
	if strings.HasPrefix(s, "#") {
		col, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return col, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 255 {
		return colorful.Color{}, false
	}
	return ansi256(n), true
}

// ansi256 converts an xterm 256-color index to RGB.
func ansi256(n int) colorful.Color {
	switch {
	case n < 16:
		v := ansi16[n]
		return colorful.Color{R: float64(v[0]) / 255, G: float64(v[1]) / 255, B: float64(v[2]) / 255}
	case n < 232:
		n -= 16
		level := func(i int) float64 {
			if i == 0 {
				return 0
			}
			return float64(55+i*40) / 255
		}
		return colorful.Color{R: level(n / 36), G: level(n / 6 % 6), B: level(n % 6)}
	default:
		v := float64(8+(n-232)*10) / 255
		return colorful.Color{R: v, G: v, B: v}
	}
}

var ansi16 = [16][3]uint8{
	{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0},
	{0, 0, 128}, {128, 0, 128}, {0, 128, 128}, {192, 192, 192},
	{128, 128, 128}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{0, 0, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
