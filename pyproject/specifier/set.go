package specifier

import (
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"
)

// Set is an unordered collection of predicates. Two sets are equal when they hold the same predicates,
// regardless of the order or spacing they were written with.
type Set struct {
	specs map[string]Specifier
}

func NewSet(specs ...Specifier) Set {
	s := Set{specs: make(map[string]Specifier)}
	for _, spec := range specs {
		s.specs[spec.key()] = spec
	}
	return s
}

// Parse reads a comma separated list of standardized predicates. An empty string yields an empty set.
func Parse(raw string) (Set, error) {
	var specs []Specifier
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		spec, err := ParseSpecifier(part)
		if err != nil {
			return Set{}, err
		}
		specs = append(specs, spec)
	}
	return NewSet(specs...), nil
}

func (s Set) Len() int {
	return len(s.specs)
}

// Specifiers returns the predicates ordered by their rendered form.
func (s Set) Specifiers() []Specifier {
	out := make([]Specifier, 0, len(s.specs))
	for _, spec := range s.specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	return out
}

// Keys returns the canonical form of every predicate, sorted.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s.specs))
	for k := range s.specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s Set) Equal(other Set) bool {
	return strset.New(s.Keys()...).IsEqual(strset.New(other.Keys()...))
}

func (s Set) String() string {
	parts := make([]string, 0, len(s.specs))
	for _, spec := range s.Specifiers() {
		parts = append(parts, spec.String())
	}
	return strings.Join(parts, ",")
}
