package flatten

// visited is the set of named schemas entered along the current recursion
// path. It is persistent: With returns an extended set and leaves the
// receiver untouched, so sibling branches never observe each other's names.
type visited struct {
	name   string
	parent *visited
}

func newVisited(names ...string) *visited {
	var set *visited
	for _, name := range names {
		set = set.With(name)
	}
	return set
}

// With returns a set containing the receiver's names plus name.
func (v *visited) With(name string) *visited {
	return &visited{name: name, parent: v}
}

// Contains reports whether name is on the ancestor chain.
func (v *visited) Contains(name string) bool {
	for node := v; node != nil; node = node.parent {
		if node.name == name {
			return true
		}
	}
	return false
}
