package catalog

import "sort"

// CourseSet is a set of course identifiers
type CourseSet map[string]struct{}

func NewCourseSet(ids ...string) CourseSet {
	s := make(CourseSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s CourseSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id if present
func (s CourseSet) Remove(id string) {
	delete(s, id)
}

func (s CourseSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s CourseSet) Len() int {
	return len(s)
}

// Union adds every member of other to s
func (s CourseSet) Union(other CourseSet) {
	for id := range other {
		s[id] = struct{}{}
	}
}

// Intersect returns a new set holding members present in both sets
func (s CourseSet) Intersect(other CourseSet) CourseSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	out := make(CourseSet, len(small))
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Subset reports whether every member of s is in other
func (s CourseSet) Subset(other CourseSet) bool {
	for id := range s {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

func (s CourseSet) Clone() CourseSet {
	out := make(CourseSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Sorted returns the members in ascending order
func (s CourseSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (s CourseSet) Equal(other CourseSet) bool {
	return len(s) == len(other) && s.Subset(other)
}
