package colorscale

import (
	"math"
	"time"

	"github.com/joshuapare/lstree/internal/files"
)

// Range is the smallest and largest value seen for one metric.
type Range struct {
	Min, Max float64
}

// Ratio returns where v falls in the range, clamped to [0,1]. A degenerate
// range or a NaN result is 1.
func (r *Range) Ratio(v float64) float64 {
	span := r.Max - r.Min
	if span == 0 {
		return 1
	}
	ratio := (v - r.Min) / span
	if math.IsNaN(ratio) {
		return 1
	}
	return clamp(ratio, 0, 1)
}

func (r *Range) update(v float64) *Range {
	if r == nil {
		return &Range{Min: v, Max: v}
	}
	r.Min = math.Min(r.Min, v)
	r.Max = math.Max(r.Max, v)
	return r
}

// Extremes holds one optional range per shaded metric. A nil range means no
// file supplied a value for that metric.
type Extremes struct {
	Size  *Range
	times [4]*Range // indexed by files.TimeKind
}

// Time returns the range for a timestamp kind.
func (e *Extremes) Time(kind files.TimeKind) *Range {
	if e == nil || int(kind) >= len(e.times) {
		return nil
	}
	return e.times[kind]
}

// Update folds f's metrics into the ranges. Directories have no meaningful
// size and are skipped for it.
func (e *Extremes) Update(f *files.File) {
	if f.IsRegular() || (f.IsLink() && !f.ResolvesToDir()) {
		e.Size = e.Size.update(float64(f.Size))
	}
	for kind := range e.times {
		if t, ok := f.Time(files.TimeKind(kind)); ok {
			e.times[kind] = e.times[kind].update(TimeValue(t))
		}
	}
}

// TimeValue converts a timestamp to the value its range is measured in.
func TimeValue(t time.Time) float64 { return float64(t.UnixMilli()) }

// Gather walks roots, and every directory the recursion policy descends
// into, folding every file into a fresh Extremes. Roots are at depth 0. A
// nil recursion visits only the roots. Directories that cannot be listed
// are skipped; the render reports them.
func Gather(roots []*files.File, lister files.Lister, rec *files.Recursion) *Extremes {
	e := &Extremes{}
	e.Walk(roots, lister, rec, 0)
	return e
}

// Walk folds list, which sits at depth, into e and descends like Gather.
func (e *Extremes) Walk(list []*files.File, lister files.Lister, rec *files.Recursion, depth int) {
	for _, f := range list {
		e.Update(f)
		if rec == nil || !rec.Descends(f, depth) {
			continue
		}
		dir, err := lister.List(f)
		if err != nil {
			continue
		}
		e.Walk(dir.Files, lister, rec, depth+1)
	}
}
