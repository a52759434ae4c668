// internal/nodeid/set.go
package nodeid

import "sort"

// Set is an unordered collection of fact identifiers.
type Set map[string]struct{}

// NewSet returns a set holding the given identifiers.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Add inserts id and reports whether it was absent before the call.
func (s Set) Add(id string) bool {
	if _, ok := s[id]; ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

// Contains reports whether id is a member of the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Intersect returns the number of identifiers present in both sets.
func (s Set) Intersect(other Set) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	n := 0
	for id := range small {
		if large.Contains(id) {
			n++
		}
	}
	return n
}

// Union returns the number of distinct identifiers present in either set.
func (s Set) Union(other Set) int {
	return len(s) + len(other) - s.Intersect(other)
}
