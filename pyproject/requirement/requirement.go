package requirement

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/anchore/check-pyproject/pyproject/specifier"
)

// Requirement is the canonical form of a single dependency: a package name with either a set of version
// predicates or a direct URL, optional extras and an optional environment marker.
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers specifier.Set
	URL        string
	Marker     string
}

// New builds a canonical requirement, normalizing the name, extras and marker.
func New(name string, extras []string, specs specifier.Set, url, marker string) (Requirement, error) {
	if strings.TrimSpace(name) == "" {
		return Requirement{}, fmt.Errorf("%w: missing package name", ErrInvalidRequirement)
	}

	r := Requirement{
		Name:       CanonicalName(name),
		Extras:     canonicalExtras(extras),
		Specifiers: specs,
		URL:        strings.TrimSpace(url),
	}

	if strings.TrimSpace(marker) != "" {
		canonical, err := CanonicalMarker(marker)
		if err != nil {
			return Requirement{}, fmt.Errorf("%w: %s: %v", ErrInvalidRequirement, name, err)
		}
		r.Marker = canonical
	}

	return r, nil
}

func canonicalExtras(extras []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, extra := range extras {
		extra = CanonicalName(extra)
		if extra == "" {
			continue
		}
		if _, ok := seen[extra]; ok {
			continue
		}
		seen[extra] = struct{}{}
		out = append(out, extra)
	}
	sort.Strings(out)
	return out
}

// String renders the requirement in standardized form, e.g. `name[extra]>=1.0,<2.0; python_version >= "3.8"`.
func (r Requirement) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if len(r.Extras) > 0 {
		sb.WriteString("[" + strings.Join(r.Extras, ",") + "]")
	}
	if r.URL != "" {
		sb.WriteString("@ " + r.URL)
		if r.Marker != "" {
			sb.WriteString(" ")
		}
	} else if r.Specifiers.Len() > 0 {
		sb.WriteString(r.Specifiers.String())
	}
	if r.Marker != "" {
		sb.WriteString("; " + r.Marker)
	}
	return sb.String()
}

type fingerprint struct {
	Name       string
	Extras     []string
	Specifiers []string
	URL        string
	Marker     string
}

// Fingerprint identifies the requirement for equality and set membership. Extras and specifiers are hashed as
// sets, and specifiers by their canonical form, so "a[y,x]>=1.0,<2" and "a[x,y]<2.0,>=1" share a fingerprint.
func (r Requirement) Fingerprint() string {
	fp := fingerprint{
		Name:       r.Name,
		Extras:     r.Extras,
		Specifiers: r.Specifiers.Keys(),
		URL:        r.URL,
		Marker:     r.Marker,
	}
	f, err := hashstructure.Hash(&fp, hashstructure.FormatV2, &hashstructure.HashOptions{
		ZeroNil:      true,
		SlicesAsSets: true,
	})
	if err != nil {
		return r.String()
	}
	return fmt.Sprintf("%x", f)
}

func (r Requirement) Equal(other Requirement) bool {
	return r.Fingerprint() == other.Fingerprint()
}
