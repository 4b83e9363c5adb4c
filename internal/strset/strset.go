// Package strset implements the small string-set algebra the selection
// tables are built from.
package strset

import "sort"

// Set is a mutable set of strings. The zero value is not usable; construct
// with New.
type Set map[string]struct{}

// New returns a set containing the given members.
func New(members ...string) Set {
	s := make(Set, len(members))
	for _, member := range members {
		s[member] = struct{}{}
	}
	return s
}

// Add inserts member into the set.
func (s Set) Add(member string) {
	s[member] = struct{}{}
}

// Discard removes member from the set if present.
func (s Set) Discard(member string) {
	delete(s, member)
}

// Has reports whether member is in the set.
func (s Set) Has(member string) bool {
	_, ok := s[member]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s)
}

// Update inserts every member of other into the set.
func (s Set) Update(other Set) {
	for member := range other {
		s[member] = struct{}{}
	}
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for member := range s {
		out[member] = struct{}{}
	}
	return out
}

// Union returns a new set with the members of both sets.
func (s Set) Union(other Set) Set {
	out := s.Clone()
	out.Update(other)
	return out
}

// Subtract returns a new set with other's members removed.
func (s Set) Subtract(other Set) Set {
	out := make(Set, len(s))
	for member := range s {
		if !other.Has(member) {
			out[member] = struct{}{}
		}
	}
	return out
}

// Sorted returns the members in ascending order. The result is never nil so
// callers can join it directly.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for member := range s {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}
