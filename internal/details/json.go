package details

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// jsonEntry is one row in JSON format. Synthetic rows become children of
// the file they belong to.
type jsonEntry struct {
	Name     string            `json:"name,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
	Cells    []string          `json:"cells,omitempty"`
	Error    string            `json:"error,omitempty"`
	Xattr    string            `json:"xattr,omitempty"`
	Children []*jsonEntry      `json:"children,omitempty"`
}

// writeJSON re-projects the rows as a nested array. With a header, cells
// are keyed by their column label; otherwise they are a plain list.
func (rr *renderer) writeJSON(w io.Writer) error {
	var labels []string
	if rr.table != nil && rr.Opts.Header {
		for _, c := range rr.table.Columns() {
			labels = append(labels, c.Header())
		}
	}

	roots := []*jsonEntry{}
	var parents []*jsonEntry // parents[d] is the latest entry at depth d
	for _, rw := range rr.rows {
		var e *jsonEntry
		switch rw.kind {
		case headerRow:
			continue
		case errorRow:
			e = &jsonEntry{Error: strings.Trim(rw.name.Plain, "<>")}
		case xattrRow:
			e = &jsonEntry{Xattr: rw.name.Plain}
		default:
			e = &jsonEntry{Name: rw.name.Plain}
			for i, c := range rw.cells {
				if labels != nil {
					if e.Fields == nil {
						e.Fields = make(map[string]string, len(labels))
					}
					e.Fields[labels[i]] = c.Plain
				} else {
					e.Cells = append(e.Cells, c.Plain)
				}
			}
		}

		d := int(rw.tree.Depth)
		if rw.tree.Depth.IsRoot() || d > len(parents) {
			roots = append(roots, e)
			d = 0
		} else {
			parent := parents[d-1]
			parent.Children = append(parent.Children, e)
		}
		parents = append(parents[:d], e)
	}

	data, err := json.MarshalIndent(roots, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
