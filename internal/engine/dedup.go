package engine

// Some filesystems list the same subdirectory twice while the directory is
// being modified underneath the listing. Walking it twice would release its
// parent early, so each (parent, name) pair is visited once per run.

type dirKey struct {
	parent string
	name   string
}

// dirVisitSet is the set of directories already entered. It is used only by
// the walking goroutine.
type dirVisitSet map[dirKey]struct{}

// visit records the pair and reports whether it was new.
func (s dirVisitSet) visit(parent, name string) bool {
	k := dirKey{parent: parent, name: name}
	if _, ok := s[k]; ok {
		return false
	}
	s[k] = struct{}{}
	return true
}
