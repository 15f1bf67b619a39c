package files

// Recursion says which directories a listing descends into.
type Recursion struct {
	Tree        bool // render children under their parent instead of as separate listings
	MaxDepth    int  // 0 means unlimited
	FollowLinks bool // descend through links to directories
}

// TooDeep reports whether rows at depth may not be expanded further.
func (r Recursion) TooDeep(depth int) bool {
	return r.MaxDepth != 0 && r.MaxDepth <= depth
}

// Descends reports whether f, shown at depth, has its children listed.
// Pseudo entries are never descended into.
func (r Recursion) Descends(f *File, depth int) bool {
	if f.Pseudo || r.TooDeep(depth) {
		return false
	}
	if f.IsDir() {
		return true
	}
	return r.FollowLinks && f.ResolvesToDir()
}
