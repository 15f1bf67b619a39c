package column

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/lstree/internal/env"
)

// SizeFormat selects how byte counts are written.
type SizeFormat int

const (
	// Decimal uses SI prefixes: 1.5k, 23M.
	Decimal SizeFormat = iota
	// Binary uses IEC prefixes: 1.5Ki, 23Mi.
	Binary
	// Bytes writes the raw count with the locale's digit grouping.
	Bytes
)

var (
	decimalPrefixes = []string{"k", "M", "G", "T", "P", "E"}
	binaryPrefixes  = []string{"Ki", "Mi", "Gi", "Ti", "Pi", "Ei"}
)

// sizeParts splits n into a number and a unit prefix. Byte counts below
// one kilo have no prefix. Numbers below ten keep one decimal.
func sizeParts(e *env.Environment, n int64, format SizeFormat) (number, prefix string, magnitude int) {
	if format == Bytes {
		return e.FormatInt(n), "", bytesMagnitude(n)
	}
	base, prefixes := 1000.0, decimalPrefixes
	if format == Binary {
		base, prefixes = 1024.0, binaryPrefixes
	}
	v := float64(n)
	if v < base {
		return e.FormatInt(n), "", 0
	}
	// A value that rounds up to base moves to the next prefix.
	for {
		v /= base
		magnitude++
		if math.Round(v) < base || magnitude == len(prefixes) {
			break
		}
	}
	if math.Round(v*10)/10 < 10 {
		number = e.FormatFloat(v, 1)
	} else {
		number = e.FormatFloat(v, 0)
	}
	return number, prefixes[magnitude-1], magnitude
}

func bytesMagnitude(n int64) int {
	m := 0
	for n >= 1000 && m < 6 {
		n /= 1000
		m++
	}
	return m
}

// TimeStyle selects how timestamps are written.
type TimeStyle int

const (
	// DefaultTime is "_2 Jan 15:04" for the current year and
	// "_2 Jan  2006" otherwise.
	DefaultTime TimeStyle = iota
	ISO
	LongISO
	FullISO
	Relative
)

// ParseTimeStyle parses a --time-style value.
func ParseTimeStyle(s string) (TimeStyle, error) {
	switch strings.ToLower(s) {
	case "default":
		return DefaultTime, nil
	case "iso":
		return ISO, nil
	case "long-iso":
		return LongISO, nil
	case "full-iso":
		return FullISO, nil
	case "relative":
		return Relative, nil
	}
	return DefaultTime, fmt.Errorf("unknown time style %q", s)
}

// formatTime writes t in the environment's timezone.
func formatTime(e *env.Environment, t time.Time, style TimeStyle) string {
	local := t.In(e.Location)
	now := e.Now.In(e.Location)
	switch style {
	case ISO:
		if local.Year() == now.Year() {
			return local.Format("01-02 15:04")
		}
		return local.Format("2006-01-02")
	case LongISO:
		return local.Format("2006-01-02 15:04")
	case FullISO:
		return local.Format("2006-01-02 15:04:05.000000000 -0700")
	case Relative:
		return humanize.RelTime(t, e.Now, "ago", "from now")
	default:
		if local.Year() == now.Year() {
			return local.Format("_2 Jan 15:04")
		}
		return local.Format("_2 Jan  2006")
	}
}
