// Package selection owns the interactive browsing session: the ordered
// selection set and the picker-driven directory browser.
package selection

// Set is an ordered set of file paths. Paths come back out in the
// order they were first added.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet creates an empty selection set.
func NewSet() *Set {
	return &Set{index: make(map[string]struct{})}
}

// Add inserts path, reporting whether it was newly added.
func (s *Set) Add(path string) bool {
	if _, ok := s.index[path]; ok {
		return false
	}
	s.index[path] = struct{}{}
	s.order = append(s.order, path)
	return true
}

// Remove deletes path, reporting whether it was present. The order of
// the remaining paths is preserved.
func (s *Set) Remove(path string) bool {
	if _, ok := s.index[path]; !ok {
		return false
	}
	delete(s.index, path)
	for i, p := range s.order {
		if p == path {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Toggle flips path's membership, reporting whether it is now selected.
func (s *Set) Toggle(path string) bool {
	if s.Remove(path) {
		return false
	}
	s.Add(path)
	return true
}

// Clear empties the set, returning how many paths were dropped.
func (s *Set) Clear() int {
	n := len(s.order)
	s.order = nil
	s.index = make(map[string]struct{})
	return n
}

// SelectAll adds every path, returning how many were newly added.
func (s *Set) SelectAll(paths []string) int {
	added := 0
	for _, p := range paths {
		if s.Add(p) {
			added++
		}
	}
	return added
}

// Has reports whether path is selected.
func (s *Set) Has(path string) bool {
	_, ok := s.index[path]
	return ok
}

// Len returns the number of selected paths.
func (s *Set) Len() int {
	return len(s.order)
}

// Paths returns the selected paths in insertion order.
func (s *Set) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
