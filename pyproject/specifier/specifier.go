package specifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anchore/check-pyproject/pyproject/version"
)

var ErrInvalidSpecifier = errors.New("invalid specifier")

// Specifier is a single standardized version predicate, e.g. ">=1.2.0".
type Specifier struct {
	Operator Operator
	Version  string
}

// ParseSpecifier reads one standardized predicate. Whitespace between the operator and version is ignored.
func ParseSpecifier(raw string) (Specifier, error) {
	trimmed := strings.TrimSpace(raw)
	for _, op := range operators {
		if !strings.HasPrefix(trimmed, string(op)) {
			continue
		}
		ver := strings.TrimSpace(strings.TrimPrefix(trimmed, string(op)))
		if ver == "" || strings.ContainsAny(ver, " \t") {
			return Specifier{}, fmt.Errorf("%w: %q", ErrInvalidSpecifier, raw)
		}
		if err := validateVersion(op, ver); err != nil {
			return Specifier{}, fmt.Errorf("%w: %q: %v", ErrInvalidSpecifier, raw, err)
		}
		return Specifier{Operator: op, Version: ver}, nil
	}
	return Specifier{}, fmt.Errorf("%w: %q: missing operator", ErrInvalidSpecifier, raw)
}

func validateVersion(op Operator, ver string) error {
	switch op {
	case Arbitrary:
		// any string is allowed for arbitrary equality
		return nil
	case EQ, NE:
		ver = strings.TrimSuffix(ver, ".*")
	}
	_, err := version.Parse(ver)
	return err
}

func (s Specifier) String() string {
	return string(s.Operator) + s.Version
}

// key is the form used for equality: versions differing only by trailing zero release components
// compare equal (">=1.2" and ">=1.2.0"), except for the compatible release operator where the number of
// components is significant.
func (s Specifier) key() string {
	if s.Operator == Arbitrary || strings.HasSuffix(s.Version, ".*") {
		return s.String()
	}
	v, err := version.Parse(s.Version)
	if err != nil {
		return s.String()
	}
	if s.Operator != Compatible {
		for len(v.Release) > 1 && v.Release[len(v.Release)-1] == 0 {
			v.Release = v.Release[:len(v.Release)-1]
		}
	}
	return string(s.Operator) + v.String()
}
