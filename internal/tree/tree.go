// Package tree tracks the nesting state needed to draw tree connectors
// in front of each row of a listing.
//
// Rows are emitted depth-first: a directory's row comes before the rows of
// its children. A row's connector depends only on its own position among its
// siblings, so it can be drawn before the subtree beneath it is known.
package tree

// Depth is the recursion level of a row. The root level is 0.
type Depth int

// Root returns the depth of top-level rows.
func Root() Depth { return 0 }

// Deeper returns the depth one level below d.
func (d Depth) Deeper() Depth { return d + 1 }

// IsRoot reports whether d is the root level.
func (d Depth) IsRoot() bool { return d == 0 }

// Params is the tree position attached to every row.
type Params struct {
	Depth Depth // nesting level of the row
	Last  bool  // whether the row is the last of its siblings
}

// NewParams returns the params for a row at depth d.
func NewParams(d Depth, last bool) Params {
	return Params{Depth: d, Last: last}
}

// Part is one column of tree art.
type Part int

const (
	// Edge is drawn for a row that has more siblings after it.
	Edge Part = iota
	// Line continues an ancestor branch that still has pending siblings.
	Line
	// Corner is drawn for the last row among its siblings.
	Corner
	// Blank fills an ancestor level whose branch has closed.
	Blank
)

// Art returns the four-cell drawing for the part.
func (p Part) Art() string {
	switch p {
	case Edge:
		return "├── "
	case Line:
		return "│   "
	case Corner:
		return "└── "
	default:
		return "    "
	}
}

// Width is the display width of every part's art.
const Width = 4

// Trunk is the per-depth state machine deciding which part each level of a
// row draws. Levels are addressed by depth index; the slice grows when a
// deeper row arrives and is truncated when emission returns to a shallower
// depth.
type Trunk struct {
	stack []Part
	last  *Params
}

// NewRow advances the trunk to the given row and returns the parts to draw
// for it, outermost first. The returned slice aliases the trunk's storage and
// is only valid until the next call.
//
// The zeroth level is never drawn, so root rows get no parts.
func (t *Trunk) NewRow(p Params) []Part {
	// The previous row now has a row after it: its own level either keeps a
	// vertical line going or closes.
	if t.last != nil && int(t.last.Depth) < len(t.stack) {
		if t.last.Last {
			t.stack[t.last.Depth] = Blank
		} else {
			t.stack[t.last.Depth] = Line
		}
	}

	depth := int(p.Depth)
	for len(t.stack) <= depth {
		t.stack = append(t.stack, Edge)
	}
	t.stack = t.stack[:depth+1]

	if p.Last {
		t.stack[depth] = Corner
	} else {
		t.stack[depth] = Edge
	}

	last := p
	t.last = &last

	return t.stack[1:]
}
