package requirement

import (
	"sort"
)

// Set holds requirements keyed by fingerprint.
type Set struct {
	reqs map[string]Requirement
}

func NewSet(reqs ...Requirement) *Set {
	s := &Set{reqs: make(map[string]Requirement)}
	s.Add(reqs...)
	return s
}

func (s *Set) Add(reqs ...Requirement) {
	if s.reqs == nil {
		s.reqs = make(map[string]Requirement)
	}
	for _, r := range reqs {
		s.reqs[r.Fingerprint()] = r
	}
}

// Merge adds every requirement of the other set.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, r := range other.reqs {
		s.Add(r)
	}
}

func (s *Set) Contains(r Requirement) bool {
	if s == nil || s.reqs == nil {
		return false
	}
	_, ok := s.reqs[r.Fingerprint()]
	return ok
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.reqs)
}

// List returns the requirements ordered by their rendered form.
func (s *Set) List() []Requirement {
	if s == nil {
		return nil
	}
	out := make([]Requirement, 0, len(s.reqs))
	for _, r := range s.reqs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Strings returns the rendered requirements, sorted.
func (s *Set) Strings() []string {
	list := s.List()
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.String())
	}
	return out
}

// Difference returns the requirements in this set that are not in the other set.
func (s *Set) Difference(other *Set) *Set {
	out := NewSet()
	if s == nil {
		return out
	}
	for key, r := range s.reqs {
		if other == nil || other.reqs == nil {
			out.reqs[key] = r
			continue
		}
		if _, ok := other.reqs[key]; !ok {
			out.reqs[key] = r
		}
	}
	return out
}

// SymmetricDifference returns the requirements found in exactly one of the two sets.
func (s *Set) SymmetricDifference(other *Set) *Set {
	out := s.Difference(other)
	out.Merge(other.Difference(s))
	return out
}

func (s *Set) Equal(other *Set) bool {
	return s.SymmetricDifference(other).Len() == 0
}
